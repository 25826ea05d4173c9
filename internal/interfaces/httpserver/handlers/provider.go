package handlers

import (
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/apikey"
	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/sales"
	"decksnap/slides-api/internal/domain/template"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Slides        *SlidesHandler
	Presentations *PresentationHandler
	Templates     *TemplateHandler
	Sales         *SalesHandler
	Themes        *ThemeHandler
	APIKeys       *APIKeyHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	decks deck.Service,
	salesGenerator *sales.Generator,
	templates *template.Service,
	keys *apikey.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Slides:        NewSlidesHandler(decks, log),
		Presentations: NewPresentationHandler(decks, log),
		Templates:     NewTemplateHandler(templates, decks, log),
		Sales:         NewSalesHandler(salesGenerator, decks, log),
		Themes:        NewThemeHandler(),
		APIKeys:       NewAPIKeyHandler(keys, log),
	}
}
