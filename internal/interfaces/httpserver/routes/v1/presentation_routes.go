package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

func registerPresentationRoutes(router gin.IRoutes, handler *handlers.PresentationHandler) {
	router.GET("/presentations", handler.List)
	router.GET("/presentations/:presentation_id", handler.Get)
	router.PUT("/presentations/:presentation_id", handler.Update)
	router.DELETE("/presentations/:presentation_id", handler.Delete)
	router.PUT("/presentations/:presentation_id/slides/:slide_order", handler.UpdateSlide)
}
