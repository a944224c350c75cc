package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/enrollhub/enrollment-api/internal/api/metrics"
	"github.com/enrollhub/enrollment-api/internal/api/middleware"
	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=applicant centre admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	ApplicantID *int64 `json:"applicant_id"`
	CenterID    *int64 `json:"center_id"`
	EmployeeID  *int64 `json:"employee_id"`
}

// Signup registers a new user and returns its first token pair.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  ports.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	pair, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(role.String()).Inc()
	return c.JSON(http.StatusCreated, pair)
}

// Login authenticates credentials and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.TokenPair
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, pair)
}

// Refresh exchanges the bearer refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.TokenPair
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw, err := bearerToken(c)
	if err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Me returns the authenticated user's own record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return c.JSON(http.StatusOK, userResponse{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role.String(),
		IsActive:    user.IsActive,
		ApplicantID: user.ApplicantID,
		CenterID:    user.CenterID,
		EmployeeID:  user.EmployeeID,
	})
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	default:
		return "error"
	}
}
