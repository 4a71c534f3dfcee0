package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamops/teamops-api/internal/api/metrics"
	"github.com/teamops/teamops-api/internal/core/domain"
	"github.com/teamops/teamops-api/internal/core/ports"
)

// AuthHandler handles registration, login, and the identity echo endpoint.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=120"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// Register creates an account and returns a token for it.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tkn, _, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", registerOutcome(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: tkn})
}

// Login authenticates an account and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tkn, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", loginOutcome(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, authResponse{Token: tkn})
}

// Me returns the caller's resolved identity.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Subject: identity.Subject, Role: identity.Role})
}

func registerOutcome(err error) string {
	if errors.Is(err, domain.ErrAccountExists) {
		return "duplicate_subject"
	}
	return "error"
}

func loginOutcome(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "error"
}
