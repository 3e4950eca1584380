package ports

import (
	"context"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// UserRepository defines the interface for credential persistence. The store
// must enforce username uniqueness atomically.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
