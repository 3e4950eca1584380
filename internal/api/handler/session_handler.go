package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bonehealth/analysis-system/internal/core/domain"
	"github.com/bonehealth/analysis-system/internal/core/ports"
)

// maxImageBytes caps uploaded image payloads.
const maxImageBytes = 10 << 20

// SessionHandler serves the conversation surface: task selection, image
// analysis, chat turns, and history.
type SessionHandler struct {
	sessions ports.SessionService
	store    ports.SessionStore
	analyses ports.AnalysisRepository
}

func NewSessionHandler(sessions ports.SessionService, store ports.SessionStore, analyses ports.AnalysisRepository) *SessionHandler {
	return &SessionHandler{sessions: sessions, store: store, analyses: analyses}
}

// SelectTask handles POST /v1/session/task.
//
// @Summary      Select the active analysis task
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectTaskRequest  true  "Task selection"
// @Success      200   {object}  selectTaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/session/task [post]
func (h *SessionHandler) SelectTask(c echo.Context) error {
	var req selectTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.loadSession(c)
	if err != nil {
		return err
	}

	if err := h.sessions.SelectTask(session, domain.TaskID(req.TaskID)); err != nil {
		return err
	}
	if err := h.store.Save(c.Request().Context(), session); err != nil {
		return err
	}

	announcement := ""
	if n := len(session.History); n > 0 {
		announcement = session.History[n-1].Text
	}
	return c.JSON(http.StatusOK, selectTaskResponse{
		TaskID:       string(session.SelectedTask),
		Announcement: announcement,
	})
}

// Analyze handles POST /v1/session/analyze (multipart: image + optional details).
//
// @Summary      Analyze an uploaded medical image with the selected task
// @Tags         session
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image    formData  file    true   "X-ray / CT / biopsy image (jpeg or png)"
// @Param        details  formData  string  false  "Additional details"
// @Success      200      {object}  analyzeResponse
// @Failure      400      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /v1/session/analyze [post]
func (h *SessionHandler) Analyze(c echo.Context) error {
	session, err := h.loadSession(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return domain.ErrMissingImage
	}
	src, err := file.Open()
	if err != nil {
		return domain.ErrCorruptImage
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return domain.ErrCorruptImage
	}
	if len(data) > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	report, err := h.sessions.Analyze(c.Request().Context(), session, ports.AnalyzeInput{
		ImageData: data,
		ImageMIME: file.Header.Get("Content-Type"),
		Details:   c.FormValue("details"),
	})
	if err != nil {
		return err
	}

	if err := h.store.Save(c.Request().Context(), session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		TaskID: string(session.SelectedTask),
		Report: report,
	})
}

// Chat handles POST /v1/session/chat.
//
// @Summary      Send a follow-up chat message
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Chat message"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/session/chat [post]
func (h *SessionHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.loadSession(c)
	if err != nil {
		return err
	}

	reply := h.sessions.Chat(c.Request().Context(), session, req.Message)

	if err := h.store.Save(c.Request().Context(), session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

// History handles GET /v1/session/history.
//
// @Summary      Get the conversation history
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/session/history [get]
func (h *SessionHandler) History(c echo.Context) error {
	session, err := h.loadSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(session))
}

// Context handles GET /v1/session/context — doctor-only raw analysis context.
//
// @Summary      Get the raw analysis context grounding follow-up turns
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  contextResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/session/context [get]
func (h *SessionHandler) Context(c echo.Context) error {
	session, err := h.loadSession(c)
	if err != nil {
		return err
	}
	if !session.HasContext() {
		return echo.NewHTTPError(http.StatusNotFound, "no analysis context")
	}
	return c.JSON(http.StatusOK, contextResponse{
		TaskID:  string(session.SelectedTask),
		Context: session.LastAnalysisContext,
	})
}

// Analyses handles GET /v1/session/analyses — the caller's recent audit records.
//
// @Summary      List the caller's recent analyses
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analysisView
// @Failure      401  {object}  map[string]string
// @Router       /v1/session/analyses [get]
func (h *SessionHandler) Analyses(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	records, err := h.analyses.ListByUsername(c.Request().Context(), username, 20)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnalysisViews(records))
}

// loadSession resolves the caller's session from the X-Session-ID header and
// rebinds it to the authenticated identity. A missing or expired ID yields a
// fresh session; presenting another user's session resets it (Begin clears on
// identity change), so history never leaks across accounts.
func (h *SessionHandler) loadSession(c echo.Context) (*domain.Session, error) {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return nil, err
	}

	id := c.Request().Header.Get(sessionIDHeader)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing "+sessionIDHeader+" header")
	}

	session, err := h.store.Load(c.Request().Context(), id)
	if err == domain.ErrSessionNotFound {
		session = &domain.Session{ID: id}
	} else if err != nil {
		return nil, err
	}

	h.sessions.Begin(session, username, role)
	return session, nil
}
