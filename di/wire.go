//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Suya678/Surf/config"
	"github.com/Suya678/Surf/infras/geocode"
	"github.com/Suya678/Surf/infras/jwt"
	"github.com/Suya678/Surf/infras/otel"
	"github.com/Suya678/Surf/infras/postgres"
	"github.com/Suya678/Surf/infras/redis"
	"github.com/Suya678/Surf/infras/s3"
	"github.com/Suya678/Surf/permissions"
	"github.com/Suya678/Surf/shared/cache"
	"github.com/Suya678/Surf/transport/http"
	"github.com/Suya678/Surf/transport/http/middleware"
	"github.com/Suya678/Surf/transport/http/router"

	authService "github.com/Suya678/Surf/internal/domains/auth/service"
	bookingRepository "github.com/Suya678/Surf/internal/domains/booking/repository"
	bookingService "github.com/Suya678/Surf/internal/domains/booking/service"
	listingRepository "github.com/Suya678/Surf/internal/domains/listing/repository"
	listingService "github.com/Suya678/Surf/internal/domains/listing/service"
	userRepository "github.com/Suya678/Surf/internal/domains/user/repository"
	userService "github.com/Suya678/Surf/internal/domains/user/service"
	authHandler "github.com/Suya678/Surf/internal/handlers/auth"
	bookingHandler "github.com/Suya678/Surf/internal/handlers/booking"
	listingHandler "github.com/Suya678/Surf/internal/handlers/listing"
	userHandler "github.com/Suya678/Surf/internal/handlers/user"

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
	geocode.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userRepository.NewInfo,
	userService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	listingDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	listingHandler.New,
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
