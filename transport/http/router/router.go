package router

import (
	"pomade/internal/handlers/appointment"
	"pomade/internal/handlers/auth"
	"pomade/internal/handlers/health"
	"pomade/internal/handlers/message"
	"pomade/internal/handlers/schedule"
	"pomade/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	User        user.Handler
	Schedule    schedule.Handler
	Appointment appointment.Handler
	Message     message.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Message.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
