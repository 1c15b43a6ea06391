package app

import "github.com/Rajputmansi7/fitness-store/internal/sdk/models"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Name     string        `json:"name"`
	Gender   models.Gender `json:"gender"`
	Age      int           `json:"age"`
	HeightCm float64       `json:"heightCm"`
	WeightKg float64       `json:"weightKg"`
	Email    string        `json:"email"`
}

type BillRequest struct {
	Items []models.CartLine `json:"items"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthUser is the identity triple returned by signup, login and admin
// user updates.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse covers both login shapes: a regular user gets the user
// triple, the administrator gets admin=true plus the email.
type AuthResponse struct {
	Success bool      `json:"success"`
	User    *AuthUser `json:"user,omitempty"`
	Admin   bool      `json:"admin,omitempty"`
	Email   string    `json:"email,omitempty"`
	Token   string    `json:"token"`
}

type ProfileResponse struct {
	Success bool           `json:"success"`
	Profile models.Profile `json:"profile"`
	Token   string         `json:"token,omitempty"`
}

// AdminUser is the shape of an entry in the admin user listing.
type AdminUser struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Profile *models.Profile `json:"profile"`
}

type UpdateUserResponse struct {
	Success bool     `json:"success"`
	User    AuthUser `json:"user"`
}

type DeleteUserResponse struct {
	Success bool              `json:"success"`
	Removed models.PublicUser `json:"removed"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type LivenessResponse struct {
	Status     string `json:"status"`
	Host       string `json:"host"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}
