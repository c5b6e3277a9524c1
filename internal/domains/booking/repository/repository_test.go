package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmycondo/infras/otel/mocks"
	"fixmycondo/infras/postgres"
	"fixmycondo/internal/domains/booking/conflict"
	"fixmycondo/internal/domains/booking/model"
	"fixmycondo/internal/domains/booking/repository"
	facilityModel "fixmycondo/internal/domains/facility/model"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
)

var (
	lockFacility = regexp.QuoteMeta("FROM facilities WHERE id = $1 FOR UPDATE")
	overlapping  = regexp.QuoteMeta("WHERE facility_id = $1 AND status IN ($2, $3)")
	insert       = regexp.QuoteMeta("INSERT INTO facility_bookings")
)

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "postgres")

	return repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), mock
}

func facilityRows() *sqlmock.Rows {
	now := time.Now()

	return sqlmock.NewRows([]string{
		"id", "name", "description", "location", "capacity", "booking_fee", "deposit_required",
		"min_booking_hours", "max_booking_hours", "advance_booking_days", "is_active",
		"created_at", "modified_at", "created_by", "modified_by",
	}).AddRow("facility-1", "Clubhouse", "", "Level 1", 40, "25.50", "100", 1, 4, 30, true, now, now, "admin", "admin")
}

func bookingColumns() []string {
	return []string{"id", "facility_id", "user_id", "start_time", "end_time", "status"}
}

func TestBookingRepository_CreateExclusive(t *testing.T) {
	start := time.Date(2030, 1, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	booking := model.Booking{
		ID:          "booking-1",
		FacilityID:  "facility-1",
		UserID:      "resident-1",
		BookingDate: start.Truncate(24 * time.Hour),
		StartTime:   start,
		EndTime:     end,
		Status:      model.StatusPending,
		TotalFee:    decimal.RequireFromString("51"),
		DepositPaid: decimal.Zero,
	}

	accept := func(t *testing.T) repository.BuildFunc {
		return func(facility facilityModel.Facility, overlapping []model.Booking) (model.Booking, error) {
			assert.Equal(t, "Clubhouse", facility.Name)
			assert.True(t, facility.BookingFee.Equal(decimal.RequireFromString("25.50")))
			assert.Empty(t, overlapping)

			return booking, nil
		}
	}

	tests := []struct {
		name      string
		build     func(t *testing.T) repository.BuildFunc
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   func(t *testing.T, err error)
	}{
		{
			name:  "inserts when the window is free",
			build: accept,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockFacility).WithArgs("facility-1").WillReturnRows(facilityRows())
				mock.ExpectQuery(overlapping).
					WithArgs("facility-1", "pending", "confirmed", start, end).
					WillReturnRows(sqlmock.NewRows(bookingColumns()))
				mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "hands overlapping bookings to the builder",
			build: func(t *testing.T) repository.BuildFunc {
				return func(_ facilityModel.Facility, overlapping []model.Booking) (model.Booking, error) {
					require.Len(t, overlapping, 1)
					assert.Equal(t, "booking-0", overlapping[0].ID)

					return model.Booking{}, &conflict.SlotUnavailableError{BookingID: overlapping[0].ID}
				}
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockFacility).WillReturnRows(facilityRows())
				mock.ExpectQuery(overlapping).WillReturnRows(
					sqlmock.NewRows(bookingColumns()).
						AddRow("booking-0", "facility-1", "resident-2", start.Add(-time.Hour), start.Add(time.Hour), "confirmed"),
				)
				mock.ExpectRollback()
			},
			wantErr: func(t *testing.T, err error) {
				var slot *conflict.SlotUnavailableError
				require.ErrorAs(t, err, &slot)
				assert.Equal(t, "booking-0", slot.BookingID)
			},
		},
		{
			name:  "unknown facility",
			build: accept,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockFacility).WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectRollback()
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, repository.ErrFacilityNotFound)
			},
		},
		{
			name:  "serialization failure becomes a storage race",
			build: accept,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockFacility).WillReturnRows(facilityRows())
				mock.ExpectQuery(overlapping).WillReturnRows(sqlmock.NewRows(bookingColumns()))
				mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: constant.PqErrorCodeSerialization, Message: "could not serialize access"})
				mock.ExpectRollback()
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, repository.ErrStorageRace)
			},
		},
		{
			name:  "exclusion constraint becomes a slot conflict",
			build: accept,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockFacility).WillReturnRows(facilityRows())
				mock.ExpectQuery(overlapping).WillReturnRows(sqlmock.NewRows(bookingColumns()))
				mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: constant.PqErrorCodeExclusionViolation})
				mock.ExpectRollback()
			},
			wantErr: func(t *testing.T, err error) {
				var slot *conflict.SlotUnavailableError
				assert.ErrorAs(t, err, &slot)
			},
		},
		{
			name:  "other database errors pass through",
			build: accept,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockFacility).WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, repository.ErrStorageRace)
				assert.Contains(t, err.Error(), "failed to lock facility")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			res, err := repo.CreateExclusive(context.Background(), "facility-1", start, end, tt.build(t))

			if tt.wantErr != nil {
				tt.wantErr(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "booking-1", res.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Count(t *testing.T) {
	repo, mock := newRepository(t)

	query := regexp.QuoteMeta("SELECT COUNT(facility_bookings.id) FROM facility_bookings LEFT JOIN facilities ON facilities.id = facility_bookings.facility_id")

	mock.ExpectPrepare(query)
	mock.ExpectQuery(query).WithArgs("resident-1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: "resident-1", Table: model.TableName},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
