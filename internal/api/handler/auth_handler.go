package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bonehealth/analysis-system/internal/core/domain"
	"github.com/bonehealth/analysis-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionService
	store       ports.SessionStore
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService, store ports.SessionStore) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, store: store}
}

type registerRequest struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=common_user doctor"`
	LicenseNumber  string `json:"license_number,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Affiliation    string `json:"affiliation,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token,omitempty"`
	SessionID string       `json:"session_id,omitempty"`
	User      *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		Role:           domain.Role(req.Role),
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
		Affiliation:    req.Affiliation,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user, binds the conversation session to the
// authenticated identity, and returns a JWT plus the session ID the client
// echoes back in X-Session-ID.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	// Continue the caller's existing session when one is presented; a missing
	// or expired ID starts a fresh one. Begin handles the identity-switch
	// reset either way.
	session, err := h.loadOrCreateSession(c)
	if err != nil {
		return err
	}
	h.sessions.Begin(session, user.Username, user.Role)

	if err := h.store.Save(ctx, session); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		SessionID: session.ID,
		User:      user,
	})
}

func (h *AuthHandler) loadOrCreateSession(c echo.Context) (*domain.Session, error) {
	id := c.Request().Header.Get(sessionIDHeader)
	if id == "" {
		return &domain.Session{ID: uuid.NewString()}, nil
	}

	session, err := h.store.Load(c.Request().Context(), id)
	if err == domain.ErrSessionNotFound {
		return &domain.Session{ID: uuid.NewString()}, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}
