package ports

import (
	"context"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// AnalysisRepository persists the audit trail of completed analyses.
type AnalysisRepository interface {
	Insert(ctx context.Context, record *domain.AnalysisRecord) error
	// ListByUsername returns the caller's most recent records, newest first.
	ListByUsername(ctx context.Context, username string, limit int) ([]domain.AnalysisRecord, error)
}
