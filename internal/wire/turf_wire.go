package wire

import (
	"turf-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTurf(r chi.Router, turfHandler *adaptor.TurfHandler, rt routes) {
	r.Route("/api/turfs", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", turfHandler.GetTurfs)
		r.Get("/{id}", turfHandler.GetTurf)
		r.Get("/{id}/bookings", turfHandler.GetTurfBookings) // ?date=YYYY-MM-DD

		// ==================== PROTECTED ROUTES (require auth) ====================
		r.Group(func(r chi.Router) {
			r.Use(rt.auth)

			r.Post("/", turfHandler.CreateTurf)
			r.Put("/{id}", turfHandler.UpdateTurf)    // owner only
			r.Delete("/{id}", turfHandler.DeleteTurf) // owner only
		})
	})
}
