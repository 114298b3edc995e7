package router

import (
	"github.com/go-chi/chi/v5"

	"cadence/internal/handlers/auth"
	"cadence/internal/handlers/booking"
	"cadence/internal/handlers/meetingtype"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Booking     booking.Handler
	MeetingType meetingtype.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.MeetingType.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
