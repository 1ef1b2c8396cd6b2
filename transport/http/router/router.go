package router

import (
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/auth"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/checkin"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/reservation"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/seating"
	"github.com/ymjo140/rendezvous-merchant-sub000/internal/handlers/user"
	"github.com/ymjo140/rendezvous-merchant-sub000/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Seating     seating.Handler
	Reservation reservation.Handler
	Checkin     checkin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts /v1. Auth skips the public routes listed in permissions.json.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Seating.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Reservation.PublicRouter(routerGroup)
		r.DomainHandlers.Checkin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
