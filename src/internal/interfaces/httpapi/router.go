package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter 組裝路由
func NewRouter(h *Handler, auth *Authenticator, logger *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.With(auth.OptionalAuth).Post("/donations", h.RecordDonation)
		r.Get("/associations/{associationID}/goal", h.GetGoal)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Get("/users/me/badges", h.ListBadges)
			r.Get("/users/me/donations", h.ListDonations)
			r.Patch("/donations/{donationID}/status", h.UpdateDonationStatus)
		})

		r.With(auth.RequireAdmin).Post("/admin/associations/{associationID}/goal", h.CreateGoal)
	})

	return r
}
