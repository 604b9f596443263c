package response

import (
	"time"

	"turf-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	TurfID     string               `json:"turf_id"`
	TurfName   string               `json:"turf_name,omitempty"`
	UserID     string               `json:"user_id"`
	UserName   string               `json:"user_name,omitempty"`
	Date       string               `json:"date"`
	StartTime  string               `json:"start_time"`
	EndTime    string               `json:"end_time"`
	Status     entity.BookingStatus `json:"status"`
	TotalPrice float64              `json:"total_price"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID.String(),
		TurfID:     b.TurfID.String(),
		TurfName:   b.TurfName,
		UserID:     b.UserID.String(),
		UserName:   b.UserName,
		Date:       b.Date.Format("2006-01-02"),
		StartTime:  b.StartTime.UTC().Format("15:04"),
		EndTime:    b.EndTime.UTC().Format("15:04"),
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
