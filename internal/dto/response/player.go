package response

import (
	"time"

	"turf-booking/internal/data/entity"
)

type PlayerResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	Name         string              `json:"name"`
	Email        string              `json:"email,omitempty"`
	Position     string              `json:"position"`
	PhoneNumber  *string             `json:"phone_number,omitempty"`
	Location     string              `json:"location"`
	Skills       []string            `json:"skills"`
	Experience   int                 `json:"experience"`
	Bio          *string             `json:"bio,omitempty"`
	Availability entity.Availability `json:"availability"`
	Rating       float64             `json:"rating"`
	TotalRatings int                 `json:"total_ratings"`
	Ratings      []RatingResponse    `json:"ratings,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	RaterID   string    `json:"rater_id"`
	RaterName string    `json:"rater_name,omitempty"`
	Value     int       `json:"value"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func PlayerToResponse(p *entity.Player) PlayerResponse {
	resp := PlayerResponse{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		Name:         p.UserName,
		Email:        p.UserEmail,
		Position:     p.Position,
		PhoneNumber:  p.PhoneNumber,
		Location:     p.Location,
		Skills:       p.Skills,
		Experience:   p.Experience,
		Bio:          p.Bio,
		Availability: p.Availability,
		Rating:       p.Rating,
		TotalRatings: p.TotalRatings,
		CreatedAt:    p.CreatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	return resp
}

func RatingToResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID.String(),
		PlayerID:  r.PlayerID.String(),
		RaterID:   r.RaterID.String(),
		RaterName: r.RaterName,
		Value:     r.Value,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
