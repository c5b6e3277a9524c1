//go:build wireinject
// +build wireinject

package di

import (
	"fixmycondo/config"
	"fixmycondo/infras/jwt"
	"fixmycondo/infras/kafka"
	"fixmycondo/infras/metrics"
	"fixmycondo/infras/otel"
	"fixmycondo/infras/postgres"
	"fixmycondo/infras/redis"
	"fixmycondo/internal/jobs"
	"fixmycondo/internal/jobs/cachesync"
	"fixmycondo/internal/jobs/slasweeper"
	"fixmycondo/permissions"
	"fixmycondo/shared/cache"
	"fixmycondo/transport/http"
	"fixmycondo/transport/http/middleware"
	"fixmycondo/transport/http/router"

	"github.com/google/wire"

	authService "fixmycondo/internal/domains/auth/service"
	bookingRepository "fixmycondo/internal/domains/booking/repository"
	bookingService "fixmycondo/internal/domains/booking/service"
	complaintRepository "fixmycondo/internal/domains/complaint/repository"
	complaintService "fixmycondo/internal/domains/complaint/service"
	facilityRepository "fixmycondo/internal/domains/facility/repository"
	facilityService "fixmycondo/internal/domains/facility/service"
	userRepository "fixmycondo/internal/domains/user/repository"
	userService "fixmycondo/internal/domains/user/service"
	authHandler "fixmycondo/internal/handlers/auth"
	bookingHandler "fixmycondo/internal/handlers/booking"
	complaintHandler "fixmycondo/internal/handlers/complaint"
	facilityHandler "fixmycondo/internal/handlers/facility"
	userHandler "fixmycondo/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var complaintDomain = wire.NewSet(
	complaintRepository.New,
	complaintService.NewEngine,
	complaintService.New,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	complaintDomain,
	facilityDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	complaintHandler.New,
	facilityHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *jobs.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		metrics.New,
		cache.NewRedisCache,
		complaintRepository.New,
		slasweeper.New,
		cachesync.New,
		jobs.New,
	)

	return &jobs.Worker{}
}
