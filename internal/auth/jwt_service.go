package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionLifetime is how long a minted session token stays valid. There is no
// refresh or rotation; a new token is minted at the next login.
const SessionLifetime = 30 * 24 * time.Hour

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_token"

// Claims represents the session token payload.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	jwt.RegisteredClaims
}

// JWTService mints and decodes session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Mint signs a session token for a canonical identity.
func (s *JWTService) Mint(id Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   id.UserID,
		Email:    id.Email,
		Name:     id.Name,
		ImageURL: id.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies signature and expiry and returns the claims. A bad
// signature, tampered payload, or expired token yields an error; callers
// treat any error as "no identity" rather than a fault.
func (s *JWTService) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Identity rebuilds the canonical identity from decoded claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:   c.UserID,
		Email:    c.Email,
		Name:     c.Name,
		ImageURL: c.ImageURL,
	}
}
