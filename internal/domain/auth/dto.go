package auth

// LoginRequest carries the shared password for one role.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token for the new session.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}
