package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_MintAndDecode(t *testing.T) {
	service := NewJWTService("test-secret")

	identity := Identity{
		UserID:   "user-123",
		Email:    "ann@x.com",
		Name:     "Ann",
		ImageURL: "https://img.example/ann.png",
	}

	token, err := service.Mint(identity)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Decode(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "https://img.example/ann.png", claims.ImageURL)
	assert.Equal(t, "user-123", claims.Subject)

	// Expiry sits a fixed session lifetime past issuance.
	assert.WithinDuration(t,
		claims.IssuedAt.Time.Add(SessionLifetime),
		claims.ExpiresAt.Time,
		time.Second)

	roundTrip := claims.Identity()
	assert.Equal(t, identity.UserID, roundTrip.UserID)
	assert.Equal(t, identity.Email, roundTrip.Email)
}

func TestJWTService_DecodeExpired(t *testing.T) {
	service := NewJWTService("test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "user-123",
		Email:  "ann@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	// Expired tokens produce an error, not a panic; callers read that as
	// "no identity".
	claims, err := service.Decode(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_DecodeTampered(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.Mint(Identity{UserID: "user-123", Email: "ann@x.com"})
	assert.NoError(t, err)

	claims, err := service.Decode(token + "x")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_DecodeWrongSecret(t *testing.T) {
	minter := NewJWTService("secret-one")
	decoder := NewJWTService("secret-two")

	token, err := minter.Mint(Identity{UserID: "user-123", Email: "ann@x.com"})
	assert.NoError(t, err)

	claims, err := decoder.Decode(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_DecodeGarbage(t *testing.T) {
	service := NewJWTService("test-secret")

	claims, err := service.Decode("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
