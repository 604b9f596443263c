package wire

import (
	"turf-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, handler *adaptor.Handler, rt routes) {
	// ==================== ADMIN ROUTES ====================
	// Require both authentication AND admin role
	r.With(rt.auth, rt.admin).Route("/api/admin", func(r chi.Router) {
		r.Get("/users", handler.User.GetAllUsers)
		r.Put("/users/{id}/role", handler.User.UpdateRole)
		r.Get("/turfs", handler.Turf.GetTurfs)
		r.Get("/bookings", handler.Booking.GetAllBookings)
	})
}
