//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"cadence/config"
	"cadence/infras/geocoder"
	"cadence/infras/jwt"
	"cadence/infras/kafka"
	"cadence/infras/otel"
	"cadence/infras/postgres"
	"cadence/infras/redis"
	"cadence/permissions"
	"cadence/shared/cache"
	"cadence/transport/http"
	"cadence/transport/http/middleware"
	"cadence/transport/http/router"

	activityRepository "cadence/internal/domains/activity/repository"
	authService "cadence/internal/domains/auth/service"
	bookingRepository "cadence/internal/domains/booking/repository"
	bookingService "cadence/internal/domains/booking/service"
	leadRepository "cadence/internal/domains/lead/repository"
	meetingTypeRepository "cadence/internal/domains/meetingtype/repository"
	meetingTypeService "cadence/internal/domains/meetingtype/service"
	userRepository "cadence/internal/domains/user/repository"

	authHandler "cadence/internal/handlers/auth"
	bookingHandler "cadence/internal/handlers/booking"
	meetingTypeHandler "cadence/internal/handlers/meetingtype"
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
	geocoder.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	leadRepository.New,
	meetingTypeRepository.New,
	activityRepository.New,
	bookingService.New,
	meetingTypeService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	meetingTypeHandler.New,
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
