package adaptor

import (
	"net/http"

	"turf-booking/internal/dto/request"
	"turf-booking/internal/usecase"
	"turf-booking/pkg/utils"

	"go.uber.org/zap"
)

type TurfHandler struct {
	service  usecase.TurfService
	bookings usecase.BookingService
	log      *zap.Logger
}

func NewTurfHandler(service usecase.TurfService, bookings usecase.BookingService, log *zap.Logger) *TurfHandler {
	return &TurfHandler{
		service:  service,
		bookings: bookings,
		log:      log.With(zap.String("handler", "turf")),
	}
}

// CreateTurf handles POST /api/turfs (protected)
func (h *TurfHandler) CreateTurf(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateTurfRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	turf, err := h.service.CreateTurf(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create turf")
		return
	}

	utils.ResponseCreated(w, "Turf created successfully", turf)
}

// GetTurfs handles GET /api/turfs (public) and GET /api/admin/turfs
func (h *TurfHandler) GetTurfs(w http.ResponseWriter, r *http.Request) {
	turfs, err := h.service.GetTurfs(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get turfs")
		return
	}

	utils.ResponseSuccess(w, "success", turfs)
}

// GetTurf handles GET /api/turfs/{id} (public)
func (h *TurfHandler) GetTurf(w http.ResponseWriter, r *http.Request) {
	turfID, ok := pathID(w, r, "id", "turf")
	if !ok {
		return
	}

	turf, err := h.service.GetTurf(r.Context(), turfID)
	if err != nil {
		handleServiceError(w, h.log, err, "get turf")
		return
	}

	utils.ResponseSuccess(w, "success", turf)
}

// UpdateTurf handles PUT /api/turfs/{id} (owner)
func (h *TurfHandler) UpdateTurf(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	turfID, ok := pathID(w, r, "id", "turf")
	if !ok {
		return
	}

	var req request.UpdateTurfRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	turf, err := h.service.UpdateTurf(r.Context(), turfID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update turf")
		return
	}

	utils.ResponseSuccess(w, "Turf updated successfully", turf)
}

// DeleteTurf handles DELETE /api/turfs/{id} (owner)
func (h *TurfHandler) DeleteTurf(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	turfID, ok := pathID(w, r, "id", "turf")
	if !ok {
		return
	}

	if err := h.service.DeleteTurf(r.Context(), turfID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete turf")
		return
	}

	utils.ResponseSuccess(w, "Turf deleted successfully", nil)
}

// GetTurfBookings handles GET /api/turfs/{id}/bookings?date=YYYY-MM-DD (public)
func (h *TurfHandler) GetTurfBookings(w http.ResponseWriter, r *http.Request) {
	turfID, ok := pathID(w, r, "id", "turf")
	if !ok {
		return
	}

	date, ok := utils.ParseDate(r.URL.Query().Get("date"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid date format. Use YYYY-MM-DD", nil)
		return
	}

	bookings, err := h.bookings.GetTurfBookings(r.Context(), turfID, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get turf bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
