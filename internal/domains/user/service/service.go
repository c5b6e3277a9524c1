package service

import (
	"context"
	"fixmycondo/config"
	"fixmycondo/infras/otel"
	"fixmycondo/internal/domains/user/model"
	"fixmycondo/internal/domains/user/model/dto"
	"fixmycondo/internal/domains/user/repository"
	"fixmycondo/shared"
	"fixmycondo/shared/cache"
	"fixmycondo/shared/constant"
	gDto "fixmycondo/shared/dto"
	"fixmycondo/shared/failure"
	"fixmycondo/shared/password"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.UserQuery) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// canGrant reports whether actorRole may hand out or manage accounts of level.
// Only a super admin manages other super admins.
func canGrant(actorRole, level string) bool {
	return level != constant.RoleSuperAdmin || actorRole == constant.RoleSuperAdmin
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor, role := shared.Actor(ctx)

	if !canGrant(role, req.Level) {
		return res, failure.Forbidden("only a super admin can create super admins") // nolint:wrapcheck
	}

	if err = password.CheckStrength(req.Password); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	req.Email = model.NormalizeEmail(req.Email)

	exists, err := s.repo.Exist(ctx, model.ByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(actor, hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.UserQuery) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	req = req.OrDefault(model.TableName+"."+constant.FieldCreatedAt, gDto.SortDirDesc)
	filter := listFilter(query)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func listFilter(query dto.UserQuery) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if query.Level != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldLevel, Operator: gDto.FilterOperatorEq, Value: query.Level, Table: model.TableName})
	}

	if query.BuildingID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldBuildingID, Operator: gDto.FilterOperatorEq, Value: query.BuildingID, Table: model.TableName})
	}

	if query.Active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: *query.Active, Table: model.TableName})
	}

	if query.Search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: constant.QueryParamSearch, Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: query.Search, Table: model.TableName},
				gDto.Filter{ArgName: constant.QueryParamSearch, Field: model.FieldFullName, Operator: gDto.FilterOperatorLike, Value: query.Search, Table: model.TableName},
			},
		})
	}

	return filter
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res model.User, err error) {
	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, role := shared.Actor(ctx)

	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if !canGrant(role, user.Level) || (req.Level != nil && !canGrant(role, *req.Level)) {
		return failure.Forbidden("only a super admin can manage super admins") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, actor)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor, role := shared.Actor(ctx)

	if actor == id {
		return failure.BadRequestFromString("you cannot delete your own account") // nolint:wrapcheck
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if !canGrant(role, user.Level) {
		return failure.Forbidden("only a super admin can manage super admins") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
