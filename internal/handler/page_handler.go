package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves minimal placeholders for the page routes so the access
// gate's redirects land on real pages. A frontend would replace these.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home serves the landing page.
func (h *PageHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>foldbox</h1>")
}

// Login serves the sign-in page.
func (h *PageHandler) Login(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Sign in</h1>")
}

// Register serves the registration page.
func (h *PageHandler) Register(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Register</h1>")
}
