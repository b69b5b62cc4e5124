package clients

// CreateClientRequest is the payload for registering a new client.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"taxId" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
}

// UpdateClientRequest patches client fields; nil fields are left untouched.
// Setting Active=true reactivates a soft-deleted client.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"taxId,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}
