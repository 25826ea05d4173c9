package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/interfaces/httpserver/dto"
)

// PresentationHandler exposes CRUD endpoints over stored presentations.
type PresentationHandler struct {
	service deck.Service
	log     zerolog.Logger
}

// NewPresentationHandler constructs the handler.
func NewPresentationHandler(service deck.Service, log zerolog.Logger) *PresentationHandler {
	return &PresentationHandler{
		service: service,
		log:     log.With().Str("handler", "presentations").Logger(),
	}
}

// List handles GET /v1/presentations. Authenticated callers only see
// presentations created with their key.
func (h *PresentationHandler) List(c *gin.Context) {
	filter := deck.ListFilter{
		Offset: queryInt(c, "skip", 0),
		Limit:  queryInt(c, "limit", 20),
	}
	if identity := auth.IdentityFrom(c); identity != nil {
		keyID := identity.KeyID
		filter.OwnerKeyID = &keyID
	}

	docs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.PresentationListPayload{
		Data:   dto.FromDocuments(docs),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Get handles GET /v1/presentations/:presentation_id.
func (h *PresentationHandler) Get(c *gin.Context) {
	doc, err := h.service.GetByPublicID(c.Request.Context(), c.Param("presentation_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDocument(doc))
}

// Update handles PUT /v1/presentations/:presentation_id.
func (h *PresentationHandler) Update(c *gin.Context) {
	var req dto.UpdatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.UpdateMeta(c.Request.Context(), c.Param("presentation_id"), deck.MetaUpdate{
		Title: req.Title,
		Theme: req.Theme,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDocument(doc))
}

// UpdateSlide handles PUT /v1/presentations/:presentation_id/slides/:slide_order.
// The slide keeps its position; the payload replaces its content.
func (h *PresentationHandler) UpdateSlide(c *gin.Context) {
	order := pathInt(c, "slide_order")
	if order < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slide_order"})
		return
	}

	var s slide.Slide
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.UpdateSlide(c.Request.Context(), c.Param("presentation_id"), order, s)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDocument(doc))
}

// Delete handles DELETE /v1/presentations/:presentation_id. Slides are
// removed with the presentation.
func (h *PresentationHandler) Delete(c *gin.Context) {
	id := c.Param("presentation_id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func (h *PresentationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, deck.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "presentation not found"})
	case errors.Is(err, deck.ErrSlideOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": "slide not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
