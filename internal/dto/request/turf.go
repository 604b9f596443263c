package request

type CreateTurfRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=120"`
	Location     string   `json:"location" validate:"required,max=200"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Description  string   `json:"description" validate:"required,max=2000"`
	OpenTime     *string  `json:"open_time,omitempty" validate:"omitempty,clock"`
	CloseTime    *string  `json:"close_time,omitempty" validate:"omitempty,clock"`
	SlotDuration *int     `json:"slot_duration,omitempty" validate:"omitempty,min=15,max=1440"`
	Facilities   []string `json:"facilities,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type UpdateTurfRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	OpenTime     *string  `json:"open_time,omitempty" validate:"omitempty,clock"`
	CloseTime    *string  `json:"close_time,omitempty" validate:"omitempty,clock"`
	SlotDuration *int     `json:"slot_duration,omitempty" validate:"omitempty,min=15,max=1440"`
	Facilities   []string `json:"facilities,omitempty" validate:"omitempty,dive,min=1,max=60"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}
