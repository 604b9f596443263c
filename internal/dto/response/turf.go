package response

import (
	"time"

	"turf-booking/internal/data/entity"
)

type TurfResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	OpenTime     *string   `json:"open_time,omitempty"`
	CloseTime    *string   `json:"close_time,omitempty"`
	SlotDuration *int      `json:"slot_duration,omitempty"`
	Facilities   []string  `json:"facilities"`
	Images       []string  `json:"images"`
	OwnerID      string    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func TurfToResponse(t *entity.Turf) TurfResponse {
	resp := TurfResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Location:     t.Location,
		Price:        t.Price,
		Description:  t.Description,
		OpenTime:     t.OpenTime,
		CloseTime:    t.CloseTime,
		SlotDuration: t.SlotDuration,
		Facilities:   t.Facilities,
		Images:       t.Images,
		OwnerID:      t.OwnerID.String(),
		CreatedAt:    t.CreatedAt,
	}
	if resp.Facilities == nil {
		resp.Facilities = []string{}
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	return resp
}
