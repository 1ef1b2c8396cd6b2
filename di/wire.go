//go:build wireinject
// +build wireinject

package di

import (
	"github.com/ymjo140/rendezvous-merchant-sub000/config"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/jwt"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/kafka"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/metrics"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/otel"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/postgres"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/redis"
	"github.com/ymjo140/rendezvous-merchant-sub000/infras/s3"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/events"
	"github.com/ymjo140/rendezvous-merchant-sub000/permissions"
	"github.com/ymjo140/rendezvous-merchant-sub000/shared/cache"
	gRepo "github.com/ymjo140/rendezvous-merchant-sub000/shared/repository"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/consumer"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http/middleware"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http/router"

	authService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/auth/service"
	checkinService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/checkin/service"
	reservationRepository "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/repository"
	reservationService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/reservation/service"
	seatingRepository "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/repository"
	seatingService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/seating/service"
	storeRepository "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/store/repository"
	userRepository "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/repository"
	userService "github.com/ymjo140/rendezvous-merchant-sub000/internal/domains/user/service"

	authHandler "github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/auth"
	checkinHandler "github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/checkin"
	reservationHandler "github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/reservation"
	seatingHandler "github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/seating"
	userHandler "github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/user"

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
	gRepo.NewTransactor,
)

var authDomain = wire.NewSet(
	userRepository.New,
	storeRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var seatingDomain = wire.NewSet(
	seatingRepository.New,
	seatingService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var checkinDomain = wire.NewSet(
	checkinService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	seatingDomain,
	reservationDomain,
	checkinDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	seatingHandler.New,
	reservationHandler.New,
	checkinHandler.New,
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

func InitializeConsumer() *consumer.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		events.NewReservation,
		consumer.New,
	)

	return &consumer.Consumer{}
}
