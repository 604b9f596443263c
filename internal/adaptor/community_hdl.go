package adaptor

import (
	"net/http"

	"turf-booking/internal/dto/request"
	"turf-booking/internal/usecase"
	"turf-booking/pkg/utils"

	"go.uber.org/zap"
)

type CommunityHandler struct {
	players usecase.PlayerService
	posts   usecase.CommunityService
	log     *zap.Logger
}

func NewCommunityHandler(players usecase.PlayerService, posts usecase.CommunityService, log *zap.Logger) *CommunityHandler {
	return &CommunityHandler{
		players: players,
		posts:   posts,
		log:     log.With(zap.String("handler", "community")),
	}
}

// ==================== PLAYERS ====================

// CreatePlayer handles POST /api/community/players
func (h *CommunityHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreatePlayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	player, err := h.players.CreatePlayer(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create player profile")
		return
	}

	utils.ResponseCreated(w, "Player profile created", player)
}

// GetPlayers handles GET /api/community/players
func (h *CommunityHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.GetPlayers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get players")
		return
	}

	utils.ResponseSuccess(w, "success", players)
}

// SearchPlayers handles GET /api/community/players/search
func (h *CommunityHandler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchPlayersRequest{
		Location:     query.Get("location"),
		Position:     query.Get("position"),
		Availability: query.Get("availability"),
	}

	players, err := h.players.SearchPlayers(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "search players")
		return
	}

	utils.ResponseSuccess(w, "success", players)
}

// GetPlayer handles GET /api/community/players/{id}
func (h *CommunityHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "id", "player")
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(r.Context(), playerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get player")
		return
	}

	utils.ResponseSuccess(w, "success", player)
}

// UpdatePlayer handles PUT /api/community/players/{id}
func (h *CommunityHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	playerID, ok := pathID(w, r, "id", "player")
	if !ok {
		return
	}

	var req request.UpdatePlayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	player, err := h.players.UpdatePlayer(r.Context(), playerID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update player")
		return
	}

	utils.ResponseSuccess(w, "Player profile updated", player)
}

// UpdateAvailability handles PUT /api/community/players/{id}/update-status
func (h *CommunityHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	playerID, ok := pathID(w, r, "id", "player")
	if !ok {
		return
	}

	var req request.UpdateAvailabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	player, err := h.players.UpdateAvailability(r.Context(), playerID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update availability")
		return
	}

	utils.ResponseSuccess(w, "Availability updated", player)
}

// RatePlayer handles POST /api/community/players/{id}/rate
func (h *CommunityHandler) RatePlayer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	playerID, ok := pathID(w, r, "id", "player")
	if !ok {
		return
	}

	var req request.RatePlayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.players.SubmitRating(r.Context(), userID, playerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate player")
		return
	}

	utils.ResponseCreated(w, "Rating submitted", rating)
}

// ==================== POSTS ====================

// CreatePost handles POST /api/community/posts
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.posts.CreatePost(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create post")
		return
	}

	utils.ResponseCreated(w, "Post created", post)
}

// GetPosts handles GET /api/community/posts
func (h *CommunityHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPosts(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get posts")
		return
	}

	utils.ResponseSuccess(w, "success", posts)
}

// GetPost handles GET /api/community/posts/{id}
func (h *CommunityHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, h.log, err, "get post")
		return
	}

	utils.ResponseSuccess(w, "success", post)
}

// UpdatePost handles PUT /api/community/posts/{id}
func (h *CommunityHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}

	var req request.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), postID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update post")
		return
	}

	utils.ResponseSuccess(w, "Post updated", post)
}

// DeletePost handles DELETE /api/community/posts/{id}
func (h *CommunityHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	if err := h.posts.DeletePost(r.Context(), postID, userID, role); err != nil {
		handleServiceError(w, h.log, err, "delete post")
		return
	}

	utils.ResponseSuccess(w, "Post deleted", nil)
}

// ==================== COMMENTS ====================

// AddComment handles POST /api/community/posts/{id}/comments
func (h *CommunityHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID, ok := pathID(w, r, "id", "post")
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.posts.AddComment(r.Context(), postID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add comment")
		return
	}

	utils.ResponseCreated(w, "Comment added", comment)
}

// DeleteComment handles DELETE /api/community/comments/{id}
func (h *CommunityHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	commentID, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}

	if err := h.posts.DeleteComment(r.Context(), commentID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "Comment deleted", nil)
}
