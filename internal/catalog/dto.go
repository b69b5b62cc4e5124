package catalog

// CreateServiceRequest is the payload for adding a catalog entry.
type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice" validate:"gte=0"`
}

// UpdateServiceRequest patches service fields; nil fields are left untouched.
type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	BasePrice   *float64 `json:"basePrice,omitempty" validate:"omitempty,gte=0"`
	Active      *bool    `json:"active,omitempty"`
}
