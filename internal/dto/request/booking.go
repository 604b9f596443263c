package request

type CreateBookingRequest struct {
	TurfID    string `json:"turf_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

// Status is checked against the enum by the service so an unknown value
// reports "invalid status".
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
