package ports

import (
	"context"

	"github.com/bonehealth/analysis-system/internal/core/domain"
)

// AnalyzeInput carries an uploaded image and optional free-text details.
type AnalyzeInput struct {
	ImageData []byte
	ImageMIME string
	Details   string
}

// SessionService is the session controller: it owns per-session identity,
// selected task, conversation history, and last-analysis context, and
// mediates all calls into the model client.
type SessionService interface {
	// Begin binds the session to an authenticated identity. A session that
	// previously belonged to a different username is cleared first; re-login
	// with the same username preserves history, context, and selected task.
	Begin(session *domain.Session, username string, role domain.Role)

	// SelectTask switches the active task. Selecting the already-active task
	// is a no-op; any other switch resets the history to a single
	// task-announcement message and clears the analysis context.
	SelectTask(session *domain.Session, taskID domain.TaskID) error

	// Analyze runs the selected task's prompt against the uploaded image.
	// On success the generated report becomes the session's analysis context.
	// On any failure the session is left unchanged.
	Analyze(ctx context.Context, session *domain.Session, in AnalyzeInput) (string, error)

	// Chat handles a free-text turn: trivial turns (greeting, appreciation,
	// off-topic) are answered locally in fixed priority order; anything else
	// becomes a model-backed follow-up when an analysis context exists. The
	// reply is always appended to the history, even when the model call
	// fails, so Chat never returns an error for a model failure.
	Chat(ctx context.Context, session *domain.Session, message string) string
}
