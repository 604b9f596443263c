package entity

import (
	"github.com/google/uuid"
)

type Rating struct {
	BaseSimple
	PlayerID uuid.UUID `db:"player_id"`
	RaterID  uuid.UUID `db:"rater_id"` // player id of the author
	Value    int       `db:"value"`    // 1-5
	Comment  *string   `db:"comment"`

	RaterName string `db:"rater_name"`
}
