package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

func registerTemplateRoutes(router gin.IRoutes, handler *handlers.TemplateHandler) {
	router.GET("/templates", handler.List)
	router.GET("/templates/categories", handler.Categories)
	router.GET("/templates/popular", handler.Popular)
	router.GET("/templates/:template_id", handler.Get)
	router.POST("/templates", handler.Create)
	router.PATCH("/templates/:template_id", handler.Update)
	router.DELETE("/templates/:template_id", handler.Delete)
	router.POST("/templates/:template_id/generate", handler.Generate)
	router.POST("/templates/:template_id/generate/stream", handler.GenerateStream)
}
