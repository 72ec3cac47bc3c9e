package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "foldbox/internal/errors"
	"foldbox/internal/service"
)

// FileHandler handles file upload, listing, download and deletion inside folders.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// UploadFile godoc
// @Summary Upload a file into an owned folder
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Folder ID"
// @Param file formData file true "File"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /folder/{id}/file [post]
func (h *FileHandler) UploadFile(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrFolderNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrMissingFields)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	src, err := fh.Open()
	if err != nil {
		log.Printf("open uploaded file: %v", err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer src.Close()

	file, err := h.fileService.UploadFile(
		c.Request().Context(),
		ownerID,
		folderID,
		fh.Filename,
		fh.Header.Get("Content-Type"),
		fh.Size,
		src,
	)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("upload file: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"file": file})
}

// ListFiles godoc
// @Summary List files in an owned folder
// @Tags files
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /folder/{id}/file [get]
func (h *FileHandler) ListFiles(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrFolderNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	files, err := h.fileService.ListFiles(c.Request().Context(), ownerID, folderID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("list files: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"files": files})
}

// DownloadFile godoc
// @Summary Redirect to a time-limited download URL
// @Tags files
// @Param id path string true "File ID"
// @Success 302
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /file/{id}/download [get]
func (h *FileHandler) DownloadFile(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrFileNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	url, err := h.fileService.DownloadURL(c.Request().Context(), ownerID, fileID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("download file: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.Redirect(http.StatusFound, url)
}

// DeleteFile godoc
// @Summary Delete a file from an owned folder
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /file/{id} [delete]
func (h *FileHandler) DeleteFile(c echo.Context) error {
	ownerID, httpErr := identityID(c)
	if httpErr != nil {
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrFileNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.fileService.DeleteFile(c.Request().Context(), ownerID, fileID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			log.Printf("delete file: %v", err)
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
