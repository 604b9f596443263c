package wire

import (
	"turf-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, rt routes) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(rt.auth)

		// POST /api/bookings - Request a time slot
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - Caller's own bookings
		r.Get("/", bookingHandler.GetMyBookings)

		// PUT /api/bookings/{id}/status - Turf owner confirms or cancels
		r.Put("/{id}/status", bookingHandler.UpdateStatus)

		// PUT /api/bookings/{id}/cancel - Requester withdraws
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
