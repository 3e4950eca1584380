package ports

import (
	"context"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// SessionStore persists conversation sessions between requests.
type SessionStore interface {
	// Load returns the session for the given ID, or domain.ErrSessionNotFound
	// when it does not exist or has expired.
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}
