package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

func registerThemeRoutes(router gin.IRoutes, handler *handlers.ThemeHandler) {
	router.GET("/themes", handler.List)
}
