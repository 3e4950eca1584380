package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bonehealth/analysis-system/internal/api/metrics"
	"github.com/bonehealth/analysis-system/internal/core/domain"
	"github.com/bonehealth/analysis-system/internal/core/ports"
)

// SessionService is the session controller. Every operation takes the
// caller's session by pointer and mutates it in place; persistence is the
// transport layer's concern.
type SessionService struct {
	model    ports.ModelClient
	analyses ports.AnalysisRepository
	log      zerolog.Logger
}

func NewSessionService(model ports.ModelClient, analyses ports.AnalysisRepository, log zerolog.Logger) *SessionService {
	return &SessionService{model: model, analyses: analyses, log: log}
}

// Begin binds the session to an authenticated identity. The conversation is
// cleared only when the username differs from the one the session already
// belongs to; logging in again as the same user preserves everything.
func (s *SessionService) Begin(session *domain.Session, username string, role domain.Role) {
	switched := session.Username != "" && session.Username != username
	if switched {
		session.Reset()
	}
	session.Username = username
	session.Role = role

	if switched || len(session.History) == 0 {
		session.Append(domain.SpeakerAssistant, welcomeMessage(username, role))
	}
}

// SelectTask switches the active task. A switch never leaks a prior task's
// analysis into the new task's conversation: history collapses to a single
// announcement message and the context is cleared.
func (s *SessionService) SelectTask(session *domain.Session, taskID domain.TaskID) error {
	task, ok := domain.TaskByID(taskID)
	if !ok {
		return domain.ErrUnknownTask
	}
	if session.SelectedTask == taskID {
		return nil
	}

	session.History = nil
	session.LastAnalysisContext = ""
	session.SelectedTask = taskID
	session.Append(domain.SpeakerAssistant, taskAnnouncement(task, session.Role))
	return nil
}

// Analyze runs the selected task's prompt against the uploaded image. The
// precondition failures (no task, no image, undecodable image) are checked
// before the model is invoked; any failure leaves the session unchanged.
func (s *SessionService) Analyze(ctx context.Context, session *domain.Session, in ports.AnalyzeInput) (string, error) {
	if session.SelectedTask == "" {
		return "", domain.ErrNoTaskSelected
	}
	task, ok := domain.TaskByID(session.SelectedTask)
	if !ok {
		return "", domain.ErrUnknownTask
	}
	if len(in.ImageData) == 0 {
		return "", domain.ErrMissingImage
	}
	mime, err := sniffImage(in.ImageData, in.ImageMIME)
	if err != nil {
		return "", err
	}

	start := time.Now()
	report, err := s.model.Generate(ctx, ports.GenerateInput{
		Instruction:  task.Prompt,
		AudienceHint: session.Role.AudienceHint(),
		ImageData:    in.ImageData,
		ImageMIME:    mime,
		Auxiliary:    in.Details,
	})
	metrics.ModelCallDuration.WithLabelValues("analysis").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelCallsTotal.WithLabelValues("analysis", "error").Inc()
		s.log.Error().Err(err).Str("task", string(task.ID)).Msg("analysis model call failed")
		return "", fmt.Errorf("%w: %v", domain.ErrModelCallFailed, err)
	}
	metrics.ModelCallsTotal.WithLabelValues("analysis", "ok").Inc()
	metrics.AnalysesTotal.WithLabelValues(string(task.ID)).Inc()

	session.LastAnalysisContext = report
	session.Append(domain.SpeakerAssistant, report)

	s.recordAnalysis(ctx, session, task, report, time.Since(start))

	s.log.Info().
		Str("task", string(task.ID)).
		Str("username", session.Username).
		Msg("analysis completed")

	return report, nil
}

// Chat handles one free-text turn. Classification order is fixed:
// greeting > appreciation > irrelevant > follow-up > no-context, with a
// short-circuit at the first match. The reply is appended to the history in
// every branch; a model failure is recorded as an error notice turn rather
// than surfaced as an error.
func (s *SessionService) Chat(ctx context.Context, session *domain.Session, message string) string {
	session.Append(domain.SpeakerUser, message)

	if rule, ok := classifyChat(message); ok {
		metrics.ChatTurnsTotal.WithLabelValues(rule.name).Inc()
		session.Append(domain.SpeakerAssistant, rule.reply)
		return rule.reply
	}

	if !session.HasContext() {
		metrics.ChatTurnsTotal.WithLabelValues("no_context").Inc()
		session.Append(domain.SpeakerAssistant, noContextReply)
		return noContextReply
	}

	aux := fmt.Sprintf("Previous analysis report:\n%s\n\nFollow-up question:\n%s",
		session.LastAnalysisContext, message)

	start := time.Now()
	reply, err := s.model.Generate(ctx, ports.GenerateInput{
		Instruction:  domain.FollowUpInstruction,
		AudienceHint: session.Role.AudienceHint(),
		Auxiliary:    aux,
	})
	metrics.ModelCallDuration.WithLabelValues("follow_up").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelCallsTotal.WithLabelValues("follow_up", "error").Inc()
		s.log.Error().Err(err).Str("username", session.Username).Msg("follow-up model call failed")
		reply = modelFailureReply
	} else {
		metrics.ModelCallsTotal.WithLabelValues("follow_up", "ok").Inc()
	}
	metrics.ChatTurnsTotal.WithLabelValues("follow_up").Inc()

	session.Append(domain.SpeakerAssistant, reply)
	return reply
}

// recordAnalysis writes the audit-trail entry. Failures are logged, never
// fatal to the analysis that triggered them.
func (s *SessionService) recordAnalysis(ctx context.Context, session *domain.Session, task domain.TaskDefinition, report string, elapsed time.Duration) {
	if s.analyses == nil {
		return
	}
	record := &domain.AnalysisRecord{
		Username:   session.Username,
		Role:       session.Role,
		TaskID:     task.ID,
		Model:      s.model.ModelName(),
		DurationMs: elapsed.Milliseconds(),
		Report:     report,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.analyses.Insert(ctx, record); err != nil {
		s.log.Warn().Err(err).Str("task", string(task.ID)).Msg("failed to insert analysis record")
	}
}

func welcomeMessage(username string, role domain.Role) string {
	if role == domain.RoleDoctor {
		return fmt.Sprintf("Welcome, %s. Select an analysis task and upload an image to receive a clinical report.", username)
	}
	return fmt.Sprintf("Welcome, %s! Choose an analysis task and upload your image. I will explain the results in plain language.", username)
}

func taskAnnouncement(task domain.TaskDefinition, role domain.Role) string {
	if role == domain.RoleDoctor {
		return fmt.Sprintf("Task selected: %s. Upload an image to run the analysis.", task.Name)
	}
	return fmt.Sprintf("Task selected: %s. Upload your image and I will take a look.", task.Name)
}
