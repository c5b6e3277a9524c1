package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	kafkaMocks "fixmycondo/infras/kafka/mocks"
	"fixmycondo/infras/metrics"
	"fixmycondo/infras/otel/mocks"
	bookingMocks "fixmycondo/internal/domains/booking/mocks"
	"fixmycondo/internal/domains/booking/model"
	"fixmycondo/internal/domains/booking/model/dto"
	"fixmycondo/internal/domains/booking/repository"
	"fixmycondo/internal/domains/booking/service"
	facilityModel "fixmycondo/internal/domains/facility/model"
	cacheMocks "fixmycondo/shared/cache/mocks"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/timezone"
)

type fixture struct {
	repo    *bookingMocks.MockBooking
	cache   *cacheMocks.MockRedisCache
	kafka   *kafkaMocks.MockClient
	metrics *metrics.Metrics
	cfg     *config.Config
	svc     service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.RaceRetries = 1
	cfg.Kafka.Topics.Booking = "booking.events"

	f := &fixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		kafka:   kafkaMocks.NewMockClient(ctrl),
		metrics: metrics.New(cfg),
		cfg:     cfg,
	}
	f.svc = service.New(f.repo, f.kafka, f.metrics, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func actor(user, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, user)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func clubhouse() facilityModel.Facility {
	return facilityModel.Facility{
		ID:                 "facility-1",
		Name:               "Clubhouse",
		BookingFee:         decimal.RequireFromString("25.50"),
		DepositRequired:    decimal.RequireFromString("100"),
		MinBookingHours:    1,
		MaxBookingHours:    4,
		AdvanceBookingDays: 30,
		IsActive:           true,
	}
}

func window(offset, length time.Duration) (time.Time, time.Time) {
	start := timezone.Now().Add(offset).Truncate(time.Hour)

	return start, start.Add(length)
}

func request(start, end time.Time) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		FacilityID:     "facility-1",
		StartTime:      start.Format(constant.DateFormat),
		EndTime:        end.Format(constant.DateFormat),
		NumberOfGuests: 10,
	}
}

func runBuild(facility facilityModel.Facility, overlapping []model.Booking) func(context.Context, string, time.Time, time.Time, repository.BuildFunc) (model.Booking, error) {
	return func(_ context.Context, _ string, _, _ time.Time, build repository.BuildFunc) (model.Booking, error) {
		return build(facility, overlapping)
	}
}

func TestBookingService_Create(t *testing.T) {
	start, end := window(48*time.Hour, 150*time.Minute)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
		outcome   string
	}{
		{
			name: "accepted with quote",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), "facility-1", gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(clubhouse(), nil))
			},
			outcome: metrics.OutcomeAccepted,
		},
		{
			name: "back to back booking is accepted",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				held := model.Booking{ID: "held", FacilityID: "facility-1", Status: model.StatusConfirmed, StartTime: start.Add(-2 * time.Hour), EndTime: start}

				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(clubhouse(), []model.Booking{held}))
			},
			outcome: metrics.OutcomeAccepted,
		},
		{
			name: "overlapping booking is a conflict",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				held := model.Booking{ID: "held", FacilityID: "facility-1", Status: model.StatusPending, StartTime: start.Add(time.Hour), EndTime: end.Add(time.Hour)}

				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(clubhouse(), []model.Booking{held}))
			},
			wantCode: http.StatusConflict,
			outcome:  metrics.OutcomeRejected,
		},
		{
			name: "duration above the facility maximum",
			req: func() dto.CreateBookingRequest {
				s, e := window(48*time.Hour, 5*time.Hour)

				return request(s, e)
			}(),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(clubhouse(), nil))
			},
			wantCode: http.StatusUnprocessableEntity,
			outcome:  metrics.OutcomeRejected,
		},
		{
			name: "start in the past",
			req: func() dto.CreateBookingRequest {
				s, e := window(-3*time.Hour, time.Hour)

				return request(s, e)
			}(),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(clubhouse(), nil))
			},
			wantCode: http.StatusUnprocessableEntity,
			outcome:  metrics.OutcomeRejected,
		},
		{
			name: "beyond the advance booking window",
			req: func() dto.CreateBookingRequest {
				s, e := window(40*24*time.Hour, time.Hour)

				return request(s, e)
			}(),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(clubhouse(), nil))
			},
			wantCode: http.StatusUnprocessableEntity,
			outcome:  metrics.OutcomeRejected,
		},
		{
			name: "inactive facility",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				facility := clubhouse()
				facility.IsActive = false

				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(runBuild(facility, nil))
			},
			wantCode: http.StatusBadRequest,
			outcome:  metrics.OutcomeRejected,
		},
		{
			name: "unknown facility",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, repository.ErrFacilityNotFound)
			},
			wantCode: http.StatusNotFound,
			outcome:  metrics.OutcomeRejected,
		},
		{
			name: "storage race is retried once",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				gomock.InOrder(
					f.repo.EXPECT().
						CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						Return(model.Booking{}, repository.ErrStorageRace),
					f.repo.EXPECT().
						CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(runBuild(clubhouse(), nil)),
				)
			},
			outcome: metrics.OutcomeAccepted,
		},
		{
			name: "repeated storage race gives up",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, repository.ErrStorageRace).
					Times(2)
			},
			wantCode: http.StatusConflict,
			outcome:  metrics.OutcomeStorageRace,
		},
		{
			name: "malformed start time",
			req: dto.CreateBookingRequest{
				FacilityID: "facility-1",
				StartTime:  "tomorrow",
				EndTime:    end.Format(constant.DateFormat),
			},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "database error",
			req:  request(start, end),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(actor("resident-1", constant.RoleResident), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "resident-1", res.UserID)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Equal(t, "Clubhouse", res.FacilityName)
			}

			if tt.outcome != "" {
				assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.BookingRequests.WithLabelValues(tt.outcome)))
			}
		})
	}
}

func TestBookingService_CreateQuote(t *testing.T) {
	f := newFixture(t)
	start, end := window(48*time.Hour, 150*time.Minute)

	f.repo.EXPECT().
		CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(runBuild(clubhouse(), nil))

	res, err := f.svc.Create(actor("resident-1", constant.RoleResident), request(start, end))
	require.NoError(t, err)

	assert.Equal(t, "63.75", res.TotalFee.String())
	assert.Equal(t, "2.5", res.DurationHours.String())
	require.NotNil(t, res.DepositDue)
	assert.Equal(t, "100", res.DepositDue.String())
	assert.Equal(t, timezone.Format(start, constant.DateOnlyFormat), res.BookingDate)
}

func TestBookingService_CreatePublishesEvent(t *testing.T) {
	f := newFixture(t)
	f.cfg.Kafka.Enable = true

	start, end := window(48*time.Hour, time.Hour)
	sent := make(chan dto.BookingEvent, 1)

	f.repo.EXPECT().
		CreateExclusive(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(runBuild(clubhouse(), nil))
	f.kafka.EXPECT().
		SendMessages(gomock.Any(), "booking.events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			event, _ := messages[0].Value.(dto.BookingEvent)
			sent <- event

			return nil
		})

	_, err := f.svc.Create(actor("resident-1", constant.RoleResident), request(start, end))
	require.NoError(t, err)

	select {
	case event := <-sent:
		assert.Equal(t, constant.EventBookingCreated, event.Type)
		assert.Equal(t, "resident-1", event.ActorID)
		assert.Equal(t, model.StatusPending, event.Status)
	case <-time.After(time.Second):
		t.Fatal("booking event was not published")
	}
}

func TestBookingService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		query     dto.BookingQuery
		wantWhere []string
		skipWhere []string
	}{
		{
			name:      "resident only sees own bookings",
			ctx:       actor("resident-1", constant.RoleResident),
			wantWhere: []string{"facility_bookings.user_id = :user_id"},
		},
		{
			name:      "management sees every booking",
			ctx:       actor("admin-1", constant.RoleBuildingAdmin),
			skipWhere: []string{"user_id"},
		},
		{
			name:      "management asking for own bookings",
			ctx:       actor("admin-1", constant.RoleCommittee),
			query:     dto.BookingQuery{MyBookings: true},
			wantWhere: []string{"facility_bookings.user_id = :user_id"},
		},
		{
			name:  "upcoming on a facility with status",
			ctx:   actor("admin-1", constant.RoleSuperAdmin),
			query: dto.BookingQuery{Upcoming: true, FacilityID: "facility-1", Status: model.StatusConfirmed},
			wantWhere: []string{
				"facility_bookings.booking_date >= :booking_date",
				"facility_bookings.facility_id = :facility_id",
				"facility_bookings.status = :status",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
			f.repo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
					where, _ := filter.GetWhereClause()
					for _, want := range tt.wantWhere {
						assert.Contains(t, where, want)
					}

					for _, skip := range tt.skipWhere {
						assert.NotContains(t, where, skip)
					}

					return 1, nil
				})
			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
					assert.True(t, strings.HasSuffix(params.SortBy, model.FieldBookingDate))
					assert.Equal(t, gDto.SortDirDesc, params.SortDir)

					return []model.Booking{{ID: "booking-1"}}, nil
				})

			res, err := f.svc.GetAll(tt.ctx, gDto.QueryParams{Page: 1, Limit: 10}, tt.query)
			require.NoError(t, err)
			assert.Equal(t, 1, res.TotalData)
			assert.Len(t, res.Bookings, 1)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusPending}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "owner",
			ctx:  actor("resident-1", constant.RoleResident),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name: "another resident",
			ctx:  actor("resident-2", constant.RoleResident),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "committee member",
			ctx:  actor("committee-1", constant.RoleCommittee),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name: "not found",
			ctx:  actor("resident-1", constant.RoleResident),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tt.ctx, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "booking-1", res.ID)
			}
		})
	}
}

func statusGuard(status model.Status) gDto.Filter {
	return gDto.Filter{
		ArgName:  "current_status",
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    model.TableName,
	}
}

func TestBookingService_Update(t *testing.T) {
	paid := true
	deposit := decimal.NewFromInt(100)

	pending := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusPending, EndTime: timezone.Now().Add(-time.Hour)}
	confirmedLater := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusConfirmed, EndTime: timezone.Now().Add(time.Hour)}
	confirmedEnded := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusConfirmed, EndTime: timezone.Now().Add(-time.Hour)}
	cancelled := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusCancelled}

	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.UpdateBookingRequest
		current    model.Booking
		wantUpdate bool
		wantCode   int
		wantStatus model.Status
	}{
		{
			name:       "owner cancels",
			ctx:        actor("resident-1", constant.RoleResident),
			req:        dto.UpdateBookingRequest{Status: model.StatusCancelled},
			current:    pending,
			wantUpdate: true,
			wantStatus: model.StatusCancelled,
		},
		{
			name:     "owner marks as paid",
			ctx:      actor("resident-1", constant.RoleResident),
			req:      dto.UpdateBookingRequest{IsPaid: &paid},
			current:  pending,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "another resident",
			ctx:      actor("resident-2", constant.RoleResident),
			req:      dto.UpdateBookingRequest{Status: model.StatusCancelled},
			current:  pending,
			wantCode: http.StatusForbidden,
		},
		{
			name:       "staff confirms and records deposit",
			ctx:        actor("admin-1", constant.RoleBuildingAdmin),
			req:        dto.UpdateBookingRequest{Status: model.StatusConfirmed, DepositPaid: &deposit},
			current:    pending,
			wantUpdate: true,
			wantStatus: model.StatusConfirmed,
		},
		{
			name:     "completed before the booking ends",
			ctx:      actor("admin-1", constant.RoleBuildingAdmin),
			req:      dto.UpdateBookingRequest{Status: model.StatusCompleted},
			current:  confirmedLater,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:       "completed after the booking ends",
			ctx:        actor("admin-1", constant.RoleSuperAdmin),
			req:        dto.UpdateBookingRequest{Status: model.StatusCompleted},
			current:    confirmedEnded,
			wantUpdate: true,
			wantStatus: model.StatusCompleted,
		},
		{
			name:     "confirming a cancelled booking",
			ctx:      actor("admin-1", constant.RoleCommittee),
			req:      dto.UpdateBookingRequest{Status: model.StatusConfirmed},
			current:  cancelled,
			wantCode: http.StatusConflict,
		},
		{
			name:     "completing a pending booking",
			ctx:      actor("admin-1", constant.RoleCommittee),
			req:      dto.UpdateBookingRequest{Status: model.StatusCompleted},
			current:  pending,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantUpdate {
				f.repo.EXPECT().
					UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
						assert.Equal(t, tt.wantStatus, fields[model.FieldStatus])
						assert.Contains(t, filter.Filters, statusGuard(tt.current.Status))

						return 1, nil
					})
			}

			res, err := f.svc.Update(tt.ctx, tt.req, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(actor("admin-1", constant.RoleSuperAdmin), dto.UpdateBookingRequest{}, "booking-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	confirmed := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusConfirmed}
	completed := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusCompleted}

	tests := []struct {
		name       string
		ctx        context.Context
		current    model.Booking
		wantUpdate bool
		wantCode   int
	}{
		{name: "owner", ctx: actor("resident-1", constant.RoleResident), current: confirmed, wantUpdate: true},
		{name: "building admin", ctx: actor("admin-1", constant.RoleBuildingAdmin), current: confirmed, wantUpdate: true},
		{name: "committee cannot cancel for others", ctx: actor("committee-1", constant.RoleCommittee), current: confirmed, wantCode: http.StatusForbidden},
		{name: "already completed", ctx: actor("resident-1", constant.RoleResident), current: completed, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantUpdate {
				f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			}

			err := f.svc.Cancel(tt.ctx, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_WritesIgnoreCachedStatus(t *testing.T) {
	cancelled := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusCancelled}

	f := newFixture(t)

	// A stale pending copy may still sit in the cache; writes never consult it.
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) error {
			*(dest.(*model.Booking)) = model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusPending}

			return nil
		}).AnyTimes()
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil).Times(2)

	_, err := f.svc.Update(actor("admin-1", constant.RoleBuildingAdmin), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "booking-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	err = f.svc.Cancel(actor("resident-1", constant.RoleResident), "booking-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBookingService_StatusChangedConcurrently(t *testing.T) {
	pending := model.Booking{ID: "booking-1", UserID: "resident-1", Status: model.StatusPending}

	tests := []struct {
		name string
		call func(svc service.Booking) error
	}{
		{
			name: "update",
			call: func(svc service.Booking) error {
				_, err := svc.Update(actor("admin-1", constant.RoleBuildingAdmin), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "booking-1")

				return err
			},
		},
		{
			name: "cancel",
			call: func(svc service.Booking) error {
				return svc.Cancel(actor("resident-1", constant.RoleResident), "booking-1")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

			err := tt.call(f.svc)
			require.Error(t, err)
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		})
	}
}

func TestBookingService_UpdateDatabaseError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "booking-1", Status: model.StatusPending}, nil)
	f.repo.EXPECT().UpdateAffected(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

	_, err := f.svc.Update(actor("admin-1", constant.RoleSuperAdmin), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "booking-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
