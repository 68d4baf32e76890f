package dto

import (
	"time"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

// AccountCreateRequest adds a panel account. AssignedLevel is only honoured
// for level admins.
type AccountCreateRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required,min=8"`
	Role          string `json:"role" validate:"required,oneof=SUPER_ADMIN LEVEL_ADMIN"`
	AssignedLevel string `json:"assigned_level,omitempty"`
}

// AccountResponse is the account representation returned to the panel.
type AccountResponse struct {
	ID            string              `json:"id"`
	Username      string              `json:"username"`
	Role          models.UserRole     `json:"role"`
	AssignedLevel *models.SchoolLevel `json:"assigned_level,omitempty"`
	Bootstrap     bool                `json:"bootstrap"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewAccountResponse maps an account row into its API shape.
func NewAccountResponse(admin models.AdminUser) AccountResponse {
	return AccountResponse{
		ID:            admin.ID,
		Username:      admin.Username,
		Role:          admin.Role,
		AssignedLevel: admin.AssignedLevel,
		Bootstrap:     admin.IsBootstrap(),
		CreatedAt:     admin.CreatedAt,
	}
}

// LoginRequest authenticates a panel account.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for subsequent panel calls.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}
