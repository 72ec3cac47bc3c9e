package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"foldbox/internal/auth"
	apperrors "foldbox/internal/errors"
	"foldbox/internal/service"
)

// AuthHandler handles registration, credential login, provider login and logout.
type AuthHandler struct {
	authService service.AuthService
	oauth       *auth.OAuthManager
	states      auth.StateStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, oauth *auth.OAuthManager, states auth.StateStoreInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		oauth:       oauth,
		states:      states,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Country  string `json:"country" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a credential login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful login response.
type AuthResponse struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Country, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("register: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user created successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, identity, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("login: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: identity})
}

// Logout godoc
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Stateless sessions: logout only discards the client-held token.
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// BeginOAuth godoc
// @Summary Start an OAuth login flow
// @Tags auth
// @Param provider path string true "Provider (github, google, facebook)"
// @Success 302
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/{provider} [get]
func (h *AuthHandler) BeginOAuth(c echo.Context) error {
	provider := auth.Provider(c.Param("provider"))
	if !h.oauth.Supported(provider) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	}

	state, err := h.states.Issue(c.Request().Context(), provider)
	if err != nil {
		log.Printf("issue oauth state: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	url, err := h.oauth.ConsentURL(provider, state)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	}
	return c.Redirect(http.StatusFound, url)
}

// OAuthCallback godoc
// @Summary Complete an OAuth login flow
// @Tags auth
// @Param provider path string true "Provider (github, google, facebook)"
// @Param code query string true "Authorization code"
// @Param state query string true "Opaque state from the consent redirect"
// @Success 302
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/{provider}/callback [get]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	ctx := c.Request().Context()
	provider := auth.Provider(c.Param("provider"))

	issuedFor, err := h.states.Consume(ctx, c.QueryParam("state"))
	if err != nil || issuedFor != provider {
		return c.Redirect(http.StatusFound, "/login")
	}

	profile, err := h.oauth.Exchange(ctx, provider, c.QueryParam("code"))
	if err != nil {
		log.Printf("oauth exchange with %s: %v", provider, err)
		return c.Redirect(http.StatusFound, "/login")
	}

	token, _, err := h.authService.ExternalLogin(ctx, profile)
	if err != nil {
		log.Printf("external login via %s: %v", provider, err)
		return c.Redirect(http.StatusFound, "/login")
	}

	setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/")
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
