package handler

import (
	"time"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

type selectTaskRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}

type selectTaskResponse struct {
	TaskID       string `json:"task_id"`
	Announcement string `json:"announcement"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type analyzeResponse struct {
	TaskID string `json:"task_id"`
	Report string `json:"report"`
}

type messageView struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type historyResponse struct {
	SessionID    string        `json:"session_id"`
	SelectedTask string        `json:"selected_task,omitempty"`
	Messages     []messageView `json:"messages"`
}

type contextResponse struct {
	TaskID  string `json:"task_id"`
	Context string `json:"context"`
}

type analysisView struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	Model      string    `json:"model"`
	DurationMs int64     `json:"duration_ms"`
	Report     string    `json:"report"`
	CreatedAt  time.Time `json:"created_at"`
}

type taskView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toHistoryResponse(session *domain.Session) historyResponse {
	messages := make([]messageView, 0, len(session.History))
	for _, m := range session.History {
		messages = append(messages, messageView{
			Speaker:   string(m.Speaker),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}
	return historyResponse{
		SessionID:    session.ID,
		SelectedTask: string(session.SelectedTask),
		Messages:     messages,
	}
}

func toAnalysisViews(records []domain.AnalysisRecord) []analysisView {
	views := make([]analysisView, 0, len(records))
	for _, r := range records {
		views = append(views, analysisView{
			ID:         r.ID,
			TaskID:     string(r.TaskID),
			Model:      r.Model,
			DurationMs: r.DurationMs,
			Report:     r.Report,
			CreatedAt:  r.CreatedAt,
		})
	}
	return views
}
