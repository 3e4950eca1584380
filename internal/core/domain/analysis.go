package domain

import "time"

// AnalysisRecord is the audit-trail entry persisted after each successful
// image analysis.
type AnalysisRecord struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	TaskID     TaskID    `json:"task_id"`
	Model      string    `json:"model"`
	DurationMs int64     `json:"duration_ms"`
	Report     string    `json:"report"`
	CreatedAt  time.Time `json:"created_at"`
}
