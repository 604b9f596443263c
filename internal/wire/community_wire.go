package wire

import (
	"turf-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCommunity(r chi.Router, h *adaptor.CommunityHandler, rt routes) {
	r.Route("/api/community", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/players", h.GetPlayers)
		r.Get("/players/search", h.SearchPlayers)
		r.Get("/players/{id}", h.GetPlayer)
		r.Get("/posts", h.GetPosts)
		r.Get("/posts/{id}", h.GetPost)

		// ==================== PROTECTED ROUTES (require auth) ====================
		r.Group(func(r chi.Router) {
			r.Use(rt.auth)

			r.Post("/players", h.CreatePlayer)
			r.Put("/players/{id}", h.UpdatePlayer)
			r.Put("/players/{id}/update-status", h.UpdateAvailability)
			r.Post("/players/{id}/rate", h.RatePlayer)

			r.Post("/posts", h.CreatePost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost) // author or admin
			r.Post("/posts/{id}/comments", h.AddComment)

			r.Delete("/comments/{id}", h.DeleteComment)
		})
	})
}
