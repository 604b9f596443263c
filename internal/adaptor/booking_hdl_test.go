package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"turf-booking/internal/dto/request"
	"turf-booking/internal/dto/response"
	"turf-booking/pkg/apperror"
	"turf-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, bookingID, ownerID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetTurfBookings(ctx context.Context, turfID uuid.UUID, date *time.Time) ([]response.BookingResponse, error) {
	args := m.Called(ctx, turfID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.BookingResponse), args.Error(1)
}

// newBookingRouter mounts the handler the way the wire package does, with a
// fake auth step that trusts the X-User header.
func newBookingRouter(svc *MockBookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := uuid.Parse(r.Header.Get("X-User")); err == nil {
				r = r.WithContext(utils.SetUserContext(r.Context(), id, "USER"))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/api/bookings", h.CreateBooking)
	r.Get("/api/bookings", h.GetMyBookings)
	r.Put("/api/bookings/{id}/status", h.UpdateStatus)
	r.Put("/api/bookings/{id}/cancel", h.CancelBooking)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, user, body string) (int, utils.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestCreateBooking_Handler(t *testing.T) {
	user := uuid.New()
	turfID := uuid.NewString()
	body := `{"turf_id":"` + turfID + `","date":"2025-06-01","start_time":"10:00","end_time":"12:00"}`
	matchReq := mock.MatchedBy(func(req *request.CreateBookingRequest) bool {
		return req.TurfID == turfID && req.Date == "2025-06-01" && req.StartTime == "10:00" && req.EndTime == "12:00"
	})

	tests := []struct {
		name    string
		user    string
		body    string
		result  *response.BookingResponse
		err     error
		status  int
		message string
	}{
		{"created", user.String(), body, &response.BookingResponse{ID: "b1", Status: "PENDING"}, nil, http.StatusCreated, "Booking created successfully"},
		{"conflict", user.String(), body, nil, apperror.Conflict("time slot already booked"), http.StatusConflict, "time slot already booked"},
		{"turf missing", user.String(), body, nil, apperror.NotFound("turf not found"), http.StatusNotFound, "turf not found"},
		{"bad window", user.String(), body, nil, apperror.Validation("start time must be before end time", nil), http.StatusBadRequest, "start time must be before end time"},
		{"infrastructure", user.String(), body, nil, apperror.Internal("failed to create booking", assert.AnError), http.StatusInternalServerError, "Internal server error"},
		{"unauthenticated", "", body, nil, nil, http.StatusUnauthorized, "Authentication required"},
		{"malformed body", user.String(), `{"turf_id":`, nil, nil, http.StatusBadRequest, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			if tt.result != nil || tt.err != nil {
				svc.On("CreateBooking", mock.Anything, user, matchReq).Return(tt.result, tt.err)
			}

			status, resp := doRequest(t, newBookingRouter(svc), http.MethodPost, "/api/bookings", tt.user, tt.body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.status == http.StatusCreated, resp.Status)
			svc.AssertExpectations(t)
		})
	}
}

func TestCreateBooking_ValidationFields(t *testing.T) {
	svc := new(MockBookingService)
	user := uuid.New()
	svc.On("CreateBooking", mock.Anything, user, mock.Anything).
		Return(nil, apperror.Validation("validation failed", map[string]string{"start_time": "Must be a time in HH:MM format"}))

	status, resp := doRequest(t, newBookingRouter(svc), http.MethodPost, "/api/bookings", user.String(), `{}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"start_time": "Must be a time in HH:MM format"}, resp.Errors)
}

func TestUpdateStatus_Handler(t *testing.T) {
	owner := uuid.New()
	bookingID := uuid.New()

	t.Run("forbidden", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("UpdateBookingStatus", mock.Anything, bookingID, owner, &request.UpdateBookingStatusRequest{Status: "CONFIRMED"}).
			Return(nil, apperror.Forbidden("not authorized"))

		status, resp := doRequest(t, newBookingRouter(svc), http.MethodPut,
			"/api/bookings/"+bookingID.String()+"/status", owner.String(), `{"status":"CONFIRMED"}`)

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "not authorized", resp.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := new(MockBookingService)

		status, resp := doRequest(t, newBookingRouter(svc), http.MethodPut,
			"/api/bookings/not-a-uuid/status", owner.String(), `{"status":"CONFIRMED"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid booking ID", resp.Message)
		svc.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelBooking_Handler(t *testing.T) {
	user := uuid.New()
	bookingID := uuid.New()
	svc := new(MockBookingService)
	svc.On("CancelBooking", mock.Anything, bookingID, user).
		Return(&response.BookingResponse{ID: bookingID.String(), Status: "CANCELLED"}, nil)

	status, resp := doRequest(t, newBookingRouter(svc), http.MethodPut,
		"/api/bookings/"+bookingID.String()+"/cancel", user.String(), "")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CANCELLED", data["status"])
	svc.AssertExpectations(t)
}
