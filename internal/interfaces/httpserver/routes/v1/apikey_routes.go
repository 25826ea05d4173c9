package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

// Key management requires the admin scope when the caller is authenticated.
func registerAPIKeyRoutes(router *gin.RouterGroup, authValidator *auth.Validator, handler *handlers.APIKeyHandler) {
	keys := router.Group("/api-keys", authValidator.RequireScope("admin"))
	keys.POST("", handler.Create)
	keys.GET("", handler.List)
	keys.GET("/:key_id", handler.Get)
	keys.PATCH("/:key_id", handler.Update)
	keys.POST("/:key_id/revoke", handler.Revoke)
	keys.DELETE("/:key_id", handler.Delete)
}
