package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"turf-booking/internal/usecase"
	"turf-booking/pkg/apperror"
	"turf-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	User      *UserHandler
	Turf      *TurfHandler
	Booking   *BookingHandler
	Community *CommunityHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:      NewUserHandler(service.User, log),
		Turf:      NewTurfHandler(service.Turf, service.Booking, log),
		Booking:   NewBookingHandler(service.Booking, log),
		Community: NewCommunityHandler(service.Player, service.Community, log),
	}
}

// currentUser reads the caller set by the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid URL parameter and answers 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, param, label string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(chi.URLParam(r, param))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError writes the status for an apperror kind. Anything
// untyped is treated as an internal failure.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed",
		zap.String("operation", operation),
		zap.Stringer("kind", appErr.Kind),
		zap.String("reason", appErr.Message))

	var fields any
	if len(appErr.Fields) > 0 {
		fields = appErr.Fields
	}
	utils.ResponseJSON(w, appErr.Kind.HTTPStatus(), false, appErr.Message, nil, fields)
}
