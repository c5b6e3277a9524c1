package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fixmycondo/infras/otel"
	"fixmycondo/infras/postgres"
	"fixmycondo/internal/domains/booking/conflict"
	"fixmycondo/internal/domains/booking/model"
	facilityModel "fixmycondo/internal/domains/facility/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/logger"
	gRepo "fixmycondo/shared/repository"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrStorageRace is returned when the database aborted the booking transaction because of
	// a concurrent writer. The request may be retried with fresh conflict data.
	ErrStorageRace = errors.New("booking transaction lost a race with a concurrent writer")
	// ErrFacilityNotFound is returned by CreateExclusive when the facility row does not exist.
	ErrFacilityNotFound = errors.New("facility not found")
)

const (
	lockFacilityQuery = `SELECT id, name, description, location, capacity, booking_fee, deposit_required,
	min_booking_hours, max_booking_hours, advance_booking_days, is_active,
	created_at, modified_at, created_by, modified_by
FROM facilities WHERE id = $1 FOR UPDATE`

	overlappingBookingsQuery = `SELECT id, facility_id, user_id, booking_date, start_time, end_time, number_of_guests,
	purpose, status, total_fee, deposit_paid, is_paid, created_at, modified_at, created_by, modified_by
FROM facility_bookings
WHERE facility_id = $1 AND status IN ($2, $3) AND start_time < $5 AND end_time > $4
ORDER BY start_time`
)

// BuildFunc turns the locked facility and the bookings that overlap the requested window
// into the row to insert. Returning an error aborts the transaction.
type BuildFunc func(facility facilityModel.Facility, overlapping []model.Booking) (model.Booking, error)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	CreateExclusive(ctx context.Context, facilityID string, start, end time.Time, build BuildFunc) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateExclusive locks the facility, reads the blocking bookings that overlap [start, end),
// lets build decide and inserts the result, all in one serializable transaction.
func (r *repositoryImpl) CreateExclusive(ctx context.Context, facilityID string, start, end time.Time, build BuildFunc) (res model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateExclusive")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = r.WithTx(ctx, sql.LevelSerializable, func(tx *sqlx.Tx) error {
		var facility facilityModel.Facility

		scope.SetAttribute(constant.OtelQueryAttributeKey, lockFacilityQuery)

		if err := tx.GetContext(ctx, &facility, lockFacilityQuery, facilityID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFacilityNotFound
			}

			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock facility: %w", err)
		}

		overlapping := []model.Booking{}

		err := tx.SelectContext(ctx, &overlapping, overlappingBookingsQuery,
			facilityID, model.StatusPending, model.StatusConfirmed, start, end)
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to get overlapping bookings: %w", err)
		}

		booking, err := build(facility, overlapping)
		if err != nil {
			return err
		}

		if err := r.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		res = booking

		return nil
	})

	return res, translateError(err)
}

func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeSerialization, constant.PqErrorCodeDeadlock:
		return fmt.Errorf("%w: %s", ErrStorageRace, pqErr.Message)
	case constant.PqErrorCodeExclusionViolation:
		return &conflict.SlotUnavailableError{}
	default:
		return err
	}
}
