package request

type CreatePlayerRequest struct {
	Position     string   `json:"position" validate:"required,max=60"`
	PhoneNumber  *string  `json:"phone_number,omitempty" validate:"omitempty,min=6,max=20"`
	Location     string   `json:"location" validate:"required,max=200"`
	Skills       []string `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Experience   int      `json:"experience" validate:"min=0,max=80"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Availability string   `json:"availability,omitempty" validate:"omitempty,oneof=AVAILABLE BUSY AWAY"`
}

type UpdatePlayerRequest struct {
	Position     *string  `json:"position,omitempty" validate:"omitempty,max=60"`
	PhoneNumber  *string  `json:"phone_number,omitempty" validate:"omitempty,min=6,max=20"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Skills       []string `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Experience   *int     `json:"experience,omitempty" validate:"omitempty,min=0,max=80"`
	Bio          *string  `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Availability *string  `json:"availability,omitempty" validate:"omitempty,oneof=AVAILABLE BUSY AWAY"`
}

type UpdateAvailabilityRequest struct {
	Availability string `json:"availability" validate:"required,oneof=AVAILABLE BUSY AWAY"`
}

type SearchPlayersRequest struct {
	Location     string `validate:"omitempty,max=200"`
	Position     string `validate:"omitempty,max=60"`
	Availability string `validate:"omitempty,oneof=AVAILABLE BUSY AWAY"`
}

type RatePlayerRequest struct {
	Value   int     `json:"value" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
