package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foldbox/internal/auth"
	"foldbox/internal/config"
	apperrors "foldbox/internal/errors"
	"foldbox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	folderHandler *handler.FolderHandler,
	profileHandler *handler.ProfileHandler,
	fileHandler *handler.FileHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// The access gate runs before every handler.
	e.Use(auth.Gate(jwtService))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Page routes
	e.GET("/", pageHandler.Home)
	e.GET("/login", pageHandler.Login)
	e.GET("/register", pageHandler.Register)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/:provider", authHandler.BeginOAuth)
	api.GET("/auth/:provider/callback", authHandler.OAuthCallback)

	// Secured routes (require a valid session token). The gate has already
	// denied anonymous requests; the JWT middleware re-verifies the token it
	// reads from the cookie or header. Default MapClaims verification is
	// enough here: handlers read the typed claims the gate put in context,
	// never echo-jwt's "user" key.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	// Folder routes
	secured.GET("/folder", folderHandler.ListFolders)
	secured.POST("/folder", folderHandler.CreateFolder)
	secured.DELETE("/folder/:id", folderHandler.DeleteFolder)

	// File routes
	secured.POST("/folder/:id/file", fileHandler.UploadFile)
	secured.GET("/folder/:id/file", fileHandler.ListFiles)
	secured.GET("/file/:id/download", fileHandler.DownloadFile)
	secured.DELETE("/file/:id", fileHandler.DeleteFile)

	// Profile routes
	secured.GET("/profile", profileHandler.GetProfile)
	secured.POST("/profile", profileHandler.UpdateProfile)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
