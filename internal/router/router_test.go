package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"foldbox/internal/auth"
	"foldbox/internal/config"
	"foldbox/internal/handler"
	"foldbox/internal/model"
)

// stubFolderService satisfies service.FolderService without a repository.
type stubFolderService struct{}

func (stubFolderService) CreateFolder(ctx context.Context, ownerID uuid.UUID, name string) (*model.Folder, error) {
	return &model.Folder{ID: uuid.New(), Name: name, UserID: ownerID}, nil
}

func (stubFolderService) ListFolders(ctx context.Context, ownerID uuid.UUID) ([]model.Folder, error) {
	return []model.Folder{}, nil
}

func (stubFolderService) DeleteFolder(ctx context.Context, id, ownerID uuid.UUID) error {
	return nil
}

func newTestServer(t *testing.T, secret string) (*echo.Echo, *auth.JWTService) {
	t.Helper()

	e := echo.New()
	jwtService := auth.NewJWTService(secret)

	Register(
		e,
		&config.Config{JWTSecret: secret},
		jwtService,
		handler.NewAuthHandler(nil, nil, nil),
		handler.NewFolderHandler(stubFolderService{}),
		handler.NewProfileHandler(nil),
		handler.NewFileHandler(nil),
		handler.NewPageHandler(),
	)
	return e, jwtService
}

func TestRegister_SecuredRoutesWithSessionCookie(t *testing.T) {
	e, jwtService := newTestServer(t, "test-secret")

	token, err := jwtService.Mint(auth.Identity{
		UserID: uuid.New().String(),
		Email:  "ann@x.com",
		Name:   "Ann",
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/folder", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"folders":[]}`, rec.Body.String())
}

func TestRegister_SecuredRoutesRejectAnonymous(t *testing.T) {
	e, _ := newTestServer(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/folder", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestRegister_SecuredRoutesRejectForgedToken(t *testing.T) {
	e, _ := newTestServer(t, "test-secret")

	forged, err := auth.NewJWTService("other-secret").Mint(auth.Identity{
		UserID: uuid.New().String(),
		Email:  "mallory@x.com",
		Name:   "Mallory",
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/folder", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: forged})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_AuthenticatedLoginPageRedirectsHome(t *testing.T) {
	e, jwtService := newTestServer(t, "test-secret")

	token, err := jwtService.Mint(auth.Identity{
		UserID: uuid.New().String(),
		Email:  "ann@x.com",
		Name:   "Ann",
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}
