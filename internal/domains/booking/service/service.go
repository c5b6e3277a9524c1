package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fixmycondo/config"
	"fixmycondo/infras/kafka"
	"fixmycondo/infras/metrics"
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/booking/conflict"
	"fixmycondo/internal/domains/booking/model"
	"fixmycondo/internal/domains/booking/model/dto"
	"fixmycondo/internal/domains/booking/repository"
	facilityModel "fixmycondo/internal/domains/facility/model"
	"fixmycondo/shared"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/timezone"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Booking
	kafka   kafka.Client
	metrics *metrics.Metrics
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Booking, kafka kafka.Client, metrics *metrics.Metrics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:    repo,
		kafka:   kafka,
		metrics: metrics,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := shared.Actor(ctx)

	date, start, end, err := req.Window()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	var quote conflict.Quote

	build := func(facility facilityModel.Facility, overlapping []model.Booking) (model.Booking, error) {
		q, err := conflict.Validate(rulesOf(facility), start, end, overlapping, timezone.Now())
		if err != nil {
			return model.Booking{}, err
		}

		quote = q
		booking := req.ToModel(user, date, start, end, q)
		booking.FacilityName = facility.Name

		return booking, nil
	}

	var booking model.Booking

	for attempt := 0; ; attempt++ {
		booking, err = s.repo.CreateExclusive(ctx, req.FacilityID, start, end, build)
		if !errors.Is(err, repository.ErrStorageRace) || attempt >= s.cfg.Booking.RaceRetries {
			break
		}

		s.observe(metrics.OutcomeStorageRace)
		log.Warn().Err(err).Str("facilityID", req.FacilityID).Int("attempt", attempt+1).Msg("retrying booking after storage race")
	}

	if err != nil {
		return res, s.rejectBooking(err)
	}

	s.observe(metrics.OutcomeAccepted)
	res.FromModel(booking)
	res.DepositDue = &quote.Deposit

	s.publish(ctx, constant.EventBookingCreated, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

// rejectBooking maps a failed booking attempt onto the HTTP failure returned to the caller.
func (s *serviceImpl) rejectBooking(err error) error {
	var (
		unavailable *conflict.FacilityUnavailableError
		duration    *conflict.DurationOutOfRangeError
		past        *conflict.PastDateError
		advance     *conflict.AdvanceWindowError
		slot        *conflict.SlotUnavailableError
	)

	switch {
	case errors.Is(err, repository.ErrFacilityNotFound):
		s.observe(metrics.OutcomeRejected)

		return failure.NotFound("facility not found") // nolint:wrapcheck
	case errors.As(err, &unavailable):
		s.observe(metrics.OutcomeRejected)

		return failure.BadRequest(err) // nolint:wrapcheck
	case errors.As(err, &duration), errors.As(err, &past), errors.As(err, &advance):
		s.observe(metrics.OutcomeRejected)

		return failure.UnprocessableEntity(err.Error()) // nolint:wrapcheck
	case errors.As(err, &slot):
		s.observe(metrics.OutcomeRejected)

		return failure.WithDetail(failure.Conflict(err.Error()), "conflicting_booking_id", slot.BookingID) // nolint:wrapcheck
	case errors.Is(err, repository.ErrStorageRace):
		log.Error().Err(err).Msg("booking kept losing storage races")

		return failure.Conflict("the facility is being booked by someone else, please try again") // nolint:wrapcheck
	default:
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.BookingQuery) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(model.TableName+"."+model.FieldBookingDate, gDto.SortDirDesc)

	filter := s.listFilter(ctx, query)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// listFilter scopes residents to their own bookings and applies the listing query.
func (s *serviceImpl) listFilter(ctx context.Context, query dto.BookingQuery) gDto.FilterGroup {
	user, role := shared.Actor(ctx)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if query.MyBookings || !shared.IsManagement(role) {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    user,
			Table:    model.TableName,
		})
	}

	if query.Upcoming {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    timezone.Format(timezone.Now(), constant.DateOnlyFormat),
			Table:    model.TableName,
		})
	}

	if query.FacilityID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldFacilityID,
			Operator: gDto.FilterOperatorEq,
			Value:    query.FacilityID,
			Table:    model.TableName,
		})
	}

	if query.Status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    query.Status,
			Table:    model.TableName,
		})
	}

	return filter
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	user, role := shared.Actor(ctx)
	if !shared.IsManagement(role) && booking.UserID != user {
		return res, failure.Forbidden("you can only view your own bookings") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// load reads a booking through the cache. Writes use fetch instead.
func (s *serviceImpl) load(ctx context.Context, id string) (res model.Booking, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	res, err = s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// fetch reads a booking from the database. A missing booking is a 404 failure.
func (s *serviceImpl) fetch(ctx context.Context, id string) (res model.Booking, err error) {
	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

// write applies fields only while the booking still has status from. Losing that race is a 409.
func (s *serviceImpl) write(ctx context.Context, id string, from model.Status, fields map[string]any) error {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "current_status",
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    from,
		Table:    model.TableName,
	})

	affected, err := s.repo.UpdateAffected(ctx, fields, filter)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		s.invalidate(ctx, id)

		return failure.Conflict("booking was changed by another request, reload and try again") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, role := shared.Actor(ctx)

	booking, err := s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	staff := shared.IsManagement(role)
	if !staff {
		if booking.UserID != user {
			return res, failure.Forbidden("you can only modify your own bookings") // nolint:wrapcheck
		}

		if req != (dto.UpdateBookingRequest{Status: model.StatusCancelled}) {
			return res, failure.Forbidden("residents can only cancel their bookings") // nolint:wrapcheck
		}
	}

	from := booking.Status
	if req.Status != constant.Empty && req.Status != from {
		if !from.CanTransition(req.Status) {
			return res, failure.Conflict(fmt.Sprintf("booking cannot change from %s to %s", from, req.Status)) // nolint:wrapcheck
		}

		if req.Status == model.StatusCompleted && timezone.Now().Before(booking.EndTime) {
			return res, failure.UnprocessableEntity("booking cannot be completed before it ends") // nolint:wrapcheck
		}

		booking.Status = req.Status
	}

	if req.DepositPaid != nil {
		booking.DepositPaid = *req.DepositPaid
	}

	if req.IsPaid != nil {
		booking.IsPaid = *req.IsPaid
	}

	fields := shared.TransformFields(req, user)
	if err = s.write(ctx, id, from, fields); err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking")

		return res, err
	}

	booking.ModifiedAt, _ = fields[constant.FieldModifiedAt].(time.Time)
	booking.ModifiedBy = user

	if booking.Status != from {
		s.publish(ctx, constant.EventBookingStatusChanged, booking)
	}

	s.invalidate(ctx, id)
	res.FromModel(booking)

	return res, nil
}

// Cancel releases the slot held by a booking. The row is kept with status cancelled.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, role := shared.Actor(ctx)

	booking, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != user && role != constant.RoleSuperAdmin && role != constant.RoleBuildingAdmin {
		return failure.Forbidden("you can only cancel your own bookings") // nolint:wrapcheck
	}

	if !booking.Status.CanTransition(model.StatusCancelled) {
		return failure.Conflict(fmt.Sprintf("booking cannot be cancelled from %s", booking.Status)) // nolint:wrapcheck
	}

	req := dto.UpdateBookingRequest{Status: model.StatusCancelled}
	if err = s.write(ctx, id, booking.Status, shared.TransformFields(req, user)); err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to cancel booking")

		return err
	}

	booking.Status = model.StatusCancelled
	s.publish(ctx, constant.EventBookingStatusChanged, booking)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	actor, _ := shared.Actor(ctx)
	event := dto.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		FacilityID: booking.FacilityID,
		UserID:     booking.UserID,
		Status:     booking.Status,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		ActorID:    actor,
		OccurredAt: timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Booking, kafka.Message{Key: booking.FacilityID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) observe(outcome string) {
	if s.metrics == nil {
		return
	}

	s.metrics.BookingRequests.WithLabelValues(outcome).Inc()
}

func rulesOf(facility facilityModel.Facility) conflict.Rules {
	return conflict.Rules{
		FacilityID:  facility.ID,
		Active:      facility.IsActive,
		MinHours:    facility.MinBookingHours,
		MaxHours:    facility.MaxBookingHours,
		AdvanceDays: facility.AdvanceBookingDays,
		HourlyFee:   facility.BookingFee,
		Deposit:     facility.DepositRequired,
	}
}
