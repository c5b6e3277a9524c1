package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fixmycondo/infras/otel"
	"fixmycondo/infras/postgres"
	"fixmycondo/internal/domains/user/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/logger"
	gRepo "fixmycondo/shared/repository"
	"fmt"
	"time"
)

// recordLoginQuery keeps the stored hash unless a rehashed one is passed in $2.
const recordLoginQuery = `UPDATE users
SET last_login = $1, password = COALESCE(NULLIF($2, ''), password), modified_at = $1, modified_by = $3
WHERE id = $3 AND active`

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	RecordLogin(ctx context.Context, id string, at time.Time, rehashed string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RecordLogin stamps a successful sign-in. A non-empty rehashed replaces the stored password hash.
func (r *repositoryImpl) RecordLogin(ctx context.Context, id string, at time.Time, rehashed string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.RecordLogin")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, recordLoginQuery)

	if _, err = r.db.Write.ExecContext(ctx, recordLoginQuery, at, rehashed, id); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to record login of user %s: %w", id, err)
	}

	return nil
}
