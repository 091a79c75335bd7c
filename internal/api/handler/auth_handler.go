package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assettracker/admin-console/internal/api/metrics"
	apimiddleware "github.com/assettracker/admin-console/internal/api/middleware"
	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

// AuthHandler handles login, logout, and the dashboard landing page.
type AuthHandler struct {
	auth       ports.AuthService
	sessions   ports.SessionManager
	users      ports.UserRepository
	audit      ports.AuditSink
	cookieName string
	sessionTTL time.Duration
}

func NewAuthHandler(
	auth ports.AuthService,
	sessions ports.SessionManager,
	users ports.UserRepository,
	audit ports.AuditSink,
	cookieName string,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		users:      users,
		audit:      audit,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	Principal *domain.Principal `json:"principal"`
}

type dashboardResponse struct {
	Principal *domain.Principal `json:"principal"`
	UserCount int64             `json:"user_count"`
}

// Login authenticates the credentials and issues a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	principal, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		}
		return err
	}

	token, err := h.sessions.Create(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.audit.Enqueue(domain.AuditEvent{
		Actor:     principal.Username,
		Action:    domain.AuditLogin,
		TargetID:  principal.UserID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, loginResponse{Token: token, Principal: principal})
}

// Logout revokes the session and clears the cookie. Idempotent: a request
// without a resolvable session still answers 200.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := apimiddleware.TokenFromRequest(c, h.cookieName)
	if token != "" {
		principal, err := h.sessions.Resolve(c.Request().Context(), token)
		if err != nil {
			return err
		}
		if err := h.sessions.Revoke(c.Request().Context(), token); err != nil {
			return err
		}
		metrics.SessionsRevokedTotal.Inc()
		if principal != nil {
			h.audit.Enqueue(domain.AuditEvent{
				Actor:     principal.Username,
				Action:    domain.AuditLogout,
				TargetID:  principal.UserID,
				Timestamp: time.Now().UTC(),
			})
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// Dashboard is the landing page for any authenticated principal.
//
// @Summary      Dashboard
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *AuthHandler) Dashboard(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	count, err := h.users.Count(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{Principal: principal, UserCount: count})
}
