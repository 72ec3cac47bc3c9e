package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "foldbox/internal/errors"
	"foldbox/internal/service"
)

// ProfileHandler handles profile read and update endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	user, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("get profile: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfile godoc
// @Summary Update profile fields and optionally the profile image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param userId formData string true "User ID"
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param country formData string true "Country"
// @Param image formData file false "Profile image"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	sessionID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	userIDField := c.FormValue("userId")
	name := c.FormValue("name")
	email := c.FormValue("email")
	country := c.FormValue("country")
	if userIDField == "" || name == "" || email == "" || country == "" {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrMissingFields)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// A session can only update its own profile; any other id is treated
	// as absent so ids cannot be probed.
	userID, err := uuid.Parse(userIDField)
	if err != nil || userID != sessionID {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var image *service.ImageUpload
	if fh, err := c.FormFile("image"); err == nil && fh.Filename != "" {
		src, err := fh.Open()
		if err != nil {
			log.Printf("open uploaded image: %v", err)
			httpErr := apperrors.MapErrorToHTTP(err)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		defer src.Close()
		image = &service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        src,
		}
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), userID, name, email, country, image)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("update profile: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "profile updated successfully",
		"user":    user,
	})
}
