package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/sales"
	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/infrastructure/metrics"
	"decksnap/slides-api/internal/interfaces/httpserver/dto"
)

// previewChars caps the pitch text echoed on the stream's first event.
const previewChars = 500

// SalesHandler turns structured pitch input into presentations.
type SalesHandler struct {
	generator *sales.Generator
	decks     deck.Service
	log       zerolog.Logger
}

// NewSalesHandler constructs the handler.
func NewSalesHandler(generator *sales.Generator, decks deck.Service, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{
		generator: generator,
		decks:     decks,
		log:       log.With().Str("handler", "sales").Logger(),
	}
}

// Preview handles POST /v1/sales/preview. It generates the pitch narrative
// without creating slides, letting callers review before committing.
func (h *SalesHandler) Preview(c *gin.Context) {
	var req dto.GenerateSalesPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.generator.Generate(c.Request.Context(), req.Pitch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromSalesContent(content))
}

// Generate handles POST /v1/sales/generate. The pitch narrative is
// generated first, then fed through the slide generation pipeline.
func (h *SalesHandler) Generate(c *gin.Context) {
	var req dto.GenerateSalesPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.generator.Generate(c.Request.Context(), req.Pitch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.decks.Generate(c.Request.Context(), h.salesParams(c, req, content))
	if err != nil {
		metrics.RecordGeneration("failed", 0)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.RecordGeneration(string(doc.Status), len(doc.Slides))
	c.JSON(http.StatusOK, dto.GenerateSlidesPayload{Presentation: dto.FromDocument(doc)})
}

// GenerateStream handles POST /v1/sales/generate/stream. The narrative is
// generated up front; the stream opens with a sales_content event carrying
// a preview of it, then relays the slide generation events.
func (h *SalesHandler) GenerateStream(c *gin.Context) {
	var req dto.GenerateSalesPitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.generator.Generate(c.Request.Context(), req.Pitch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	events := h.decks.GenerateStream(c.Request.Context(), h.salesParams(c, req, content))

	sse, ok := sseStream(c, h.log)
	if !ok {
		return
	}

	preview := content.Text
	if len(preview) > previewChars {
		preview = preview[:previewChars] + "..."
	}
	sse.send("sales_content", gin.H{"text": preview, "title": content.Title})

	drainEvents(sse, events)
}

func (h *SalesHandler) salesParams(c *gin.Context, req dto.GenerateSalesPitchRequest, content *sales.Content) deck.GenerateParams {
	params := deck.GenerateParams{
		SourceText: content.Text,
		SlideCount: req.Pitch.SlideCount,
		Title:      content.Title,
		Theme:      req.Pitch.Theme,
	}
	if req.Title != nil && *req.Title != "" {
		params.Title = *req.Title
	}
	if identity := auth.IdentityFrom(c); identity != nil {
		keyID := identity.KeyID
		params.OwnerKeyID = &keyID
	}
	return params
}
