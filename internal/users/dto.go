package users

// CreateUserRequest is the payload for registering a new account.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin operator"`
}

// UpdateUserRequest patches account fields; nil fields are left untouched.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin operator"`
	Active   *bool   `json:"active,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}
