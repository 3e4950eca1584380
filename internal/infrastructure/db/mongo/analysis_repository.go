package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bonehealth/analysis-system/internal/core/domain"
	"github.com/bonehealth/analysis-system/internal/core/ports"
)

const analysesCollection = "analyses"

// AnalysisRepository implements ports.AnalysisRepository using MongoDB.
type AnalysisRepository struct {
	coll *mongo.Collection
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(db *mongo.Database) ports.AnalysisRepository {
	return &AnalysisRepository{coll: db.Collection(analysesCollection)}
}

type mongoAnalysis struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	Role       string             `bson:"role"`
	TaskID     string             `bson:"task_id"`
	Model      string             `bson:"model"`
	DurationMs int64              `bson:"duration_ms"`
	Report     string             `bson:"report"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// Insert persists one completed analysis to the audit collection.
func (r *AnalysisRepository) Insert(ctx context.Context, record *domain.AnalysisRecord) error {
	doc := mongoAnalysis{
		Username:   record.Username,
		Role:       string(record.Role),
		TaskID:     string(record.TaskID),
		Model:      record.Model,
		DurationMs: record.DurationMs,
		Report:     record.Report,
		CreatedAt:  record.CreatedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// ListByUsername returns the user's most recent analyses, newest first.
func (r *AnalysisRepository) ListByUsername(ctx context.Context, username string, limit int) ([]domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer cur.Close(ctx)

	var records []domain.AnalysisRecord
	for cur.Next(ctx) {
		var ma mongoAnalysis
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode analysis: %w", err)
		}
		records = append(records, domain.AnalysisRecord{
			ID:         ma.ID.Hex(),
			Username:   ma.Username,
			Role:       domain.Role(ma.Role),
			TaskID:     domain.TaskID(ma.TaskID),
			Model:      ma.Model,
			DurationMs: ma.DurationMs,
			Report:     ma.Report,
			CreatedAt:  ma.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return records, nil
}
