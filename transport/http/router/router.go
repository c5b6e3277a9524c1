package router

import (
	"fixmycondo/internal/handlers/auth"
	"fixmycondo/internal/handlers/booking"
	"fixmycondo/internal/handlers/complaint"
	"fixmycondo/internal/handlers/facility"
	"fixmycondo/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Complaint complaint.Handler
	Facility  facility.Handler
	Booking   booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Complaint.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Facility.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
