package bookings

type CreateBookingRequest struct {
	QuoteID string `json:"quoteId" validate:"required,uuid"`
	Notes   string `json:"notes"`
}

type UpdateBookingRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=confirmed cancelled finished"`
	Notes  *string `json:"notes"`
}
