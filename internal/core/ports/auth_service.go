package ports

import (
	"context"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// RegisterInput carries the signup form fields. The doctor profile fields are
// required when Role is RoleDoctor.
type RegisterInput struct {
	Username       string
	Password       string
	Role           domain.Role
	LicenseNumber  string
	Specialization string
	Affiliation    string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
