package entity

import (
	"github.com/google/uuid"
)

type Turf struct {
	Base
	Name         string    `db:"name"`
	Location     string    `db:"location"`
	Price        float64   `db:"price"` // per hour
	Description  string    `db:"description"`
	OpenTime     *string   `db:"open_time"`
	CloseTime    *string   `db:"close_time"`
	SlotDuration *int      `db:"slot_duration"` // minutes
	Facilities   []string  `db:"facilities"`
	Images       []string  `db:"images"`
	OwnerID      uuid.UUID `db:"owner_id"`
}
