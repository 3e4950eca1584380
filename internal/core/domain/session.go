package domain

import "time"

// Speaker identifies who authored a conversation message.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Message is a single turn in the conversation history.
type Message struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the per-login conversation state. It is an explicit value object
// owned by the caller and passed by pointer into every session operation;
// there is no ambient global.
//
// Invariant: LastAnalysisContext is non-empty only after at least one
// successful analysis since the last task switch or identity switch.
type Session struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Role                Role      `json:"role"`
	SelectedTask        TaskID    `json:"selected_task,omitempty"`
	History             []Message `json:"history"`
	LastAnalysisContext string    `json:"last_analysis_context,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Append adds a turn to the conversation history.
func (s *Session) Append(speaker Speaker, text string) {
	s.History = append(s.History, Message{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
}

// Reset clears conversation history, analysis context, and the selected task.
// Identity fields are left for the caller to rebind.
func (s *Session) Reset() {
	s.History = nil
	s.LastAnalysisContext = ""
	s.SelectedTask = ""
}

// HasContext reports whether a prior analysis is available to ground
// follow-up chat turns.
func (s *Session) HasContext() bool {
	return s.LastAnalysisContext != ""
}
