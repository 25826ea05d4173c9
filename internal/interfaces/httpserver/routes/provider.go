package routes

import (
	"github.com/gin-gonic/gin"

	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/interfaces/httpserver/handlers"
	v1 "decksnap/slides-api/internal/interfaces/httpserver/routes/v1"
)

// Provider coordinates all route registrations.
type Provider struct {
	V1 *v1.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider, authValidator *auth.Validator) *Provider {
	return &Provider{
		V1: v1.NewRoutes(handlerProvider, authValidator),
	}
}

// Register attaches all available routes to the gin engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.V1.Register(engine)
}
