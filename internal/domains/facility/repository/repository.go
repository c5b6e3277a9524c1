package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fixmycondo/infras/otel"
	"fixmycondo/infras/postgres"
	"fixmycondo/internal/domains/facility/model"
	gDto "fixmycondo/shared/dto"
	gRepo "fixmycondo/shared/repository"
)

type Facility interface {
	Insert(ctx context.Context, model model.Facility) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Facility, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Facility, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Facility]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Facility {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Facility](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
