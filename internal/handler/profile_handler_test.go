package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foldbox/internal/auth"
	"foldbox/internal/model"
	"foldbox/internal/service"
)

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email, country string, image *service.ImageUpload) (*model.User, error) {
	args := m.Called(ctx, userID, name, email, country, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newProfileUpdateContext(t *testing.T, sessionID uuid.UUID, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_claims", &auth.Claims{UserID: sessionID.String()})
	return c, rec
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	sessionID := uuid.New()

	t.Run("updates the session's own profile", func(t *testing.T) {
		profileService := new(MockProfileService)
		profileService.On("UpdateProfile", mock.Anything, sessionID, "Ann", "ann@x.com", "US", (*service.ImageUpload)(nil)).
			Return(&model.User{ID: sessionID, Name: "Ann", Email: "ann@x.com", Country: "US"}, nil)

		c, rec := newProfileUpdateContext(t, sessionID, url.Values{
			"userId":  {sessionID.String()},
			"name":    {"Ann"},
			"email":   {"ann@x.com"},
			"country": {"US"},
		})

		h := NewProfileHandler(profileService)
		assert.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		profileService.AssertExpectations(t)
	})

	t.Run("another user's id is rejected before any store access", func(t *testing.T) {
		profileService := new(MockProfileService)

		c, rec := newProfileUpdateContext(t, sessionID, url.Values{
			"userId":  {uuid.New().String()},
			"name":    {"Ann"},
			"email":   {"ann@x.com"},
			"country": {"US"},
		})

		h := NewProfileHandler(profileService)
		assert.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		profileService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		profileService := new(MockProfileService)

		c, rec := newProfileUpdateContext(t, sessionID, url.Values{
			"userId": {sessionID.String()},
			"name":   {"Ann"},
		})

		h := NewProfileHandler(profileService)
		assert.NoError(t, h.UpdateProfile(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
