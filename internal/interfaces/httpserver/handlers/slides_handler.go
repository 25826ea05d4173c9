package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/infrastructure/metrics"
	"decksnap/slides-api/internal/interfaces/httpserver/dto"
)

// SlidesHandler exposes the text-to-presentation generation endpoints.
type SlidesHandler struct {
	service deck.Service
	log     zerolog.Logger
}

// NewSlidesHandler constructs the handler.
func NewSlidesHandler(service deck.Service, log zerolog.Logger) *SlidesHandler {
	return &SlidesHandler{
		service: service,
		log:     log.With().Str("handler", "slides").Logger(),
	}
}

// Generate handles POST /v1/slides/generate. It blocks until the agent loop
// finishes and returns the persisted presentation.
func (h *SlidesHandler) Generate(c *gin.Context) {
	var req dto.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.Generate(c.Request.Context(), generateParams(c, req))
	if err != nil {
		metrics.RecordGeneration("failed", 0)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.RecordGeneration(string(doc.Status), len(doc.Slides))
	c.JSON(http.StatusOK, dto.GenerateSlidesPayload{Presentation: dto.FromDocument(doc)})
}

// GenerateStream handles POST /v1/slides/generate/stream. Progress is
// reported as server-sent events: thinking, tool_call, tool_result and a
// terminal complete or error event.
func (h *SlidesHandler) GenerateStream(c *gin.Context) {
	var req dto.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events := h.service.GenerateStream(c.Request.Context(), generateParams(c, req))

	sse, ok := sseStream(c, h.log)
	if !ok {
		return
	}
	drainEvents(sse, events)
}

func generateParams(c *gin.Context, req dto.GenerateSlidesRequest) deck.GenerateParams {
	params := deck.GenerateParams{
		SourceText: req.Text,
		Theme:      req.Theme,
	}
	if req.SlideCount != nil {
		params.SlideCount = *req.SlideCount
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if identity := auth.IdentityFrom(c); identity != nil {
		keyID := identity.KeyID
		params.OwnerKeyID = &keyID
	}
	return params
}
