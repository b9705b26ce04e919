package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawsuite/grooming-booking/internal/booking"
	"github.com/pawsuite/grooming-booking/internal/storage"
)

type RouterConfig struct {
	Workflow *booking.Workflow
	Catalog  *booking.Catalog
	Sessions *booking.Sessions
	Store    storage.Store
	Env      string
	Version  string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.Store, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Get("/services", listServicesHandler(cfg.Catalog))

	r.Post("/session", loginHandler(cfg.Sessions))
	r.Get("/session", currentSessionHandler(cfg.Sessions))
	r.Delete("/session", logoutHandler(cfg.Sessions))

	// Booking routes require a login, like the guarded booking page.
	r.Group(func(r chi.Router) {
		r.Use(RequireSession(cfg.Sessions))
		r.Post("/bookings", prepareBookingHandler(cfg.Workflow))
		r.Post("/bookings/confirm", confirmBookingHandler(cfg.Workflow))
		r.Get("/bookings", listBookingsHandler(cfg.Workflow))
		r.Get("/bookings/last", lastBookingHandler(cfg.Workflow))
	})

	return r
}
