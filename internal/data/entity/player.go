package entity

import (
	"github.com/google/uuid"
)

type Availability string

const (
	AvailabilityAvailable Availability = "AVAILABLE"
	AvailabilityBusy      Availability = "BUSY"
	AvailabilityAway      Availability = "AWAY"
)

type Player struct {
	Base
	UserID       uuid.UUID    `db:"user_id"`
	Position     string       `db:"position"`
	PhoneNumber  *string      `db:"phone_number"`
	Location     string       `db:"location"`
	Skills       []string     `db:"skills"`
	Experience   int          `db:"experience"` // years
	Bio          *string      `db:"bio"`
	Availability Availability `db:"availability"`
	Rating       float64      `db:"rating"`
	TotalRatings int          `db:"total_ratings"`

	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}
