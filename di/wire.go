//go:build wireinject
// +build wireinject

package di

import (
	"pomade/config"
	"pomade/infras/jwt"
	"pomade/infras/kafka"
	"pomade/infras/metrics"
	"pomade/infras/otel"
	"pomade/infras/postgres"
	"pomade/infras/redis"
	"pomade/infras/s3"
	"pomade/permissions"
	"pomade/shared/cache"
	"pomade/transport/http"
	"pomade/transport/http/middleware"
	"pomade/transport/http/router"

	appointmentRepository "pomade/internal/domains/appointment/repository"
	appointmentService "pomade/internal/domains/appointment/service"
	authService "pomade/internal/domains/auth/service"
	messageRepository "pomade/internal/domains/message/repository"
	messageService "pomade/internal/domains/message/service"
	scheduleRepository "pomade/internal/domains/schedule/repository"
	scheduleService "pomade/internal/domains/schedule/service"
	userRepository "pomade/internal/domains/user/repository"
	userService "pomade/internal/domains/user/service"

	appointmentHandler "pomade/internal/handlers/appointment"
	authHandler "pomade/internal/handlers/auth"
	healthHandler "pomade/internal/handlers/health"
	messageHandler "pomade/internal/handlers/message"
	scheduleHandler "pomade/internal/handlers/schedule"
	userHandler "pomade/internal/handlers/user"

	"github.com/google/wire"
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
	s3.New,
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

var scheduleDomain = wire.NewSet(
	scheduleRepository.NewTemplate,
	scheduleRepository.NewOverride,
	scheduleService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var messageDomain = wire.NewSet(
	messageRepository.New,
	messageService.New,
)

var domains = wire.NewSet(
	scheduleDomain,
	appointmentDomain,
	userDomain,
	authDomain,
	messageDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	scheduleHandler.New,
	appointmentHandler.New,
	messageHandler.New,
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
