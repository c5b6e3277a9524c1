package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Facility=MockFacilityService

import (
	"context"
	"fmt"

	"fixmycondo/config"
	"fixmycondo/infras/otel"
	bookingModel "fixmycondo/internal/domains/booking/model"
	bookingRepo "fixmycondo/internal/domains/booking/repository"
	"fixmycondo/internal/domains/facility/model"
	"fixmycondo/internal/domains/facility/model/dto"
	"fixmycondo/internal/domains/facility/repository"
	"fixmycondo/shared"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetFacility    = "facility:get"
	cacheGetAllFacility = "facility:gets"
	cacheCountFacility  = "facility:count"
)

type Facility interface {
	Create(ctx context.Context, req dto.CreateFacilityRequest) (dto.FacilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFacilitiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FacilityResponse, error)
	Update(ctx context.Context, req dto.UpdateFacilityRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Facility
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Facility, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Facility {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFacilityRequest) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	facility := req.ToModel(user)
	if err = s.repo.Insert(ctx, facility); err != nil {
		log.Error().Err(err).Msg("failed to create facility")

		return res, fmt.Errorf("failed to create facility: %w", err)
	}

	res.FromModel(facility)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFacilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(model.TableName+"."+model.FieldName, gDto.SortDirAsc)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFacility, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facilities")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facilities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFacility, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facility count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetFacility, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facility")

		return res, nil
	}

	facility, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res.FromModel(facility)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFacilityRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateFacilityRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility existence")

		return fmt.Errorf("failed to check facility existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	minHours, maxHours := current.MinBookingHours, current.MaxBookingHours
	if req.MinBookingHours != nil {
		minHours = *req.MinBookingHours
	}

	if req.MaxBookingHours != nil {
		maxHours = *req.MaxBookingHours
	}

	if minHours > maxHours {
		return failure.BadRequestFromString("min_booking_hours must not exceed max_booking_hours") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update facility")

		return fmt.Errorf("failed to update facility: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFacility, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete facility cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if facility exists")

		return fmt.Errorf("failed to check if facility exists: %w", err)
	}

	if !exist {
		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	held, err := s.bookingRepo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldFacilityID, Operator: gDto.FilterOperatorEq, Value: id, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorIn, Value: bookingModel.BlockingStatuses, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check facility bookings")

		return fmt.Errorf("failed to check facility bookings: %w", err)
	}

	if held {
		return failure.Conflict("facility still has pending or confirmed bookings") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete facility")

		return fmt.Errorf("failed to delete facility: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFacility, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete facility from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFacility)
		shared.InvalidateCaches(c, s.cache, cacheCountFacility)
	}()

	return nil
}
