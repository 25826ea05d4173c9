package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

func registerSlideRoutes(router gin.IRoutes, handler *handlers.SlidesHandler) {
	router.POST("/slides/generate", handler.Generate)
	router.POST("/slides/generate/stream", handler.GenerateStream)
}
