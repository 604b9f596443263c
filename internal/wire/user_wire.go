package wire

import (
	"turf-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, rt routes) {
	// ==================== PROTECTED USER ROUTES ====================
	// Profile of the bearer token's user
	r.With(rt.auth).Get("/api/auth/me", userHandler.GetProfile)
}
