package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

func registerSalesRoutes(router gin.IRoutes, handler *handlers.SalesHandler) {
	router.POST("/sales/preview", handler.Preview)
	router.POST("/sales/generate", handler.Generate)
	router.POST("/sales/generate/stream", handler.GenerateStream)
}
