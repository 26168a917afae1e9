package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" example:"john@x.com"`
	Password string `json:"password" example:"pw123"`
}

// RegisterRequest creates an account of any role. The role specific keys
// seed the profile of alumni and student accounts.
type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=100" example:"John"`
	Email    string `json:"email" validate:"notblank,email,max=120" example:"john@x.com"`
	Password string `json:"password" validate:"notblank" example:"pw123"`
	Role     string `json:"role" validate:"notblank,role" example:"alumni"`

	Occupation *string `json:"occupation,omitempty" validate:"omitempty,max=100"`
	Company    *string `json:"company,omitempty" validate:"omitempty,max=100"`
	Domain     *string `json:"domain,omitempty" validate:"omitempty,max=100"`

	CGPA     *float64 `json:"cgpa,omitempty" example:"8.5"`
	Category *string  `json:"category,omitempty" validate:"omitempty,max=50"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message     string       `json:"message" example:"Login successful"`
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse wraps the authenticated user
type MeResponse struct {
	User UserResponse `json:"user"`
}
