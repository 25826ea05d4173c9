package v1

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	auth     *auth.Validator
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, authValidator *auth.Validator) *Routes {
	return &Routes{
		handlers: handlerProvider,
		auth:     authValidator,
	}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	registerSlideRoutes(group, r.handlers.Slides)
	registerPresentationRoutes(group, r.handlers.Presentations)
	registerTemplateRoutes(group, r.handlers.Templates)
	registerSalesRoutes(group, r.handlers.Sales)
	registerThemeRoutes(group, r.handlers.Themes)
	registerAPIKeyRoutes(group, r.auth, r.handlers.APIKeys)
}
