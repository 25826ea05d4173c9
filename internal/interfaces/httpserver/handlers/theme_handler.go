package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/domain/theme"
)

// ThemeHandler lists the built-in presentation themes.
type ThemeHandler struct{}

// NewThemeHandler constructs the handler.
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// List handles GET /v1/themes.
func (h *ThemeHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": theme.List()})
}
