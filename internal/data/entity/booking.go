package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking occupies [StartTime, EndTime) on Date for one turf.
type Booking struct {
	Base
	TurfID     uuid.UUID     `db:"turf_id"`
	UserID     uuid.UUID     `db:"user_id"`
	Date       time.Time     `db:"date"`
	StartTime  time.Time     `db:"start_time"`
	EndTime    time.Time     `db:"end_time"`
	Status     BookingStatus `db:"status"`
	TotalPrice float64       `db:"total_price"`

	// populated by joins on list queries
	TurfName string `db:"turf_name"`
	UserName string `db:"user_name"`
}
