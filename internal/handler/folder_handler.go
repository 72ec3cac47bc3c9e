package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foldbox/internal/auth"
	apperrors "foldbox/internal/errors"
	"foldbox/internal/service"
)

// FolderHandler handles folder CRUD endpoints.
type FolderHandler struct {
	folderService service.FolderService
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folderService service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// CreateFolderRequest represents a folder creation request.
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

// identityID resolves the authenticated owner id, or reports 401 before any
// store access happens.
func identityID(c echo.Context) (uuid.UUID, *apperrors.HTTPError) {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return uuid.Nil, apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
	}
	return id, nil
}

// ListFolders godoc
// @Summary List the caller's folders, newest first
// @Tags folders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /folder [get]
func (h *FolderHandler) ListFolders(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	folders, err := h.folderService.ListFolders(c.Request().Context(), ownerID)
	if err != nil {
		log.Printf("list folders: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"folders": folders})
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /folder [post]
func (h *FolderHandler) CreateFolder(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req CreateFolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	folder, err := h.folderService.CreateFolder(c.Request().Context(), ownerID, req.Name)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("create folder: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"folder": folder})
}

// DeleteFolder godoc
// @Summary Delete an owned folder
// @Tags folders
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /folder/{id} [delete]
func (h *FolderHandler) DeleteFolder(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrFolderNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.folderService.DeleteFolder(c.Request().Context(), id, ownerID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("delete folder: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true, "message": "folder deleted successfully"})
}
