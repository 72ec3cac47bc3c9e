package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "foldbox/internal/errors"
)

// Decision is the outcome of the access gate for one request.
type Decision int

const (
	// Allow lets the request through to its handler.
	Allow Decision = iota
	// Deny rejects the request with 401.
	Deny
	// RedirectLogin sends an unauthenticated page request to the sign-in page.
	RedirectLogin
	// RedirectHome sends an authenticated request away from the auth forms.
	RedirectHome
)

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/":         true,
	"/login":    true,
	"/register": true,
	"/healthz":  true,
}

// publicPrefixes are API namespaces reachable without a session.
var publicPrefixes = []string{
	"/api/auth/",
	"/api/register",
	"/swagger/",
}

// Evaluate decides what happens to a request given only token validity and
// path. It is a pure function: no I/O, always returns a decision.
func Evaluate(authenticated bool, path string) Decision {
	if authenticated && (path == "/login" || path == "/register") {
		return RedirectHome
	}
	if publicPaths[path] {
		return Allow
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return Allow
		}
	}
	if authenticated {
		return Allow
	}
	if strings.HasPrefix(path, "/api/") {
		return Deny
	}
	return RedirectLogin
}

// Gate returns Echo middleware that applies Evaluate before any handler runs.
// The session token is read from the session cookie or a Bearer header; a
// missing, tampered, or expired token simply means "not authenticated".
func Gate(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := decodeRequestToken(jwtService, c.Request())

			switch Evaluate(claims != nil, c.Request().URL.Path) {
			case RedirectHome:
				return c.Redirect(http.StatusFound, "/")
			case RedirectLogin:
				return c.Redirect(http.StatusFound, "/login")
			case Deny:
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			if claims != nil {
				c.Set("session_claims", claims)
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the decoded session claims placed by the gate, or
// nil when the request is unauthenticated.
func ClaimsFromContext(c echo.Context) *Claims {
	claims, _ := c.Get("session_claims").(*Claims)
	return claims
}

func decodeRequestToken(jwtService *JWTService, r *http.Request) *Claims {
	token := ""
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		header := r.Header.Get(echo.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return nil
	}
	claims, err := jwtService.Decode(token)
	if err != nil {
		return nil
	}
	return claims
}
