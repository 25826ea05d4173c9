package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/template"
	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/infrastructure/metrics"
	"decksnap/slides-api/internal/interfaces/httpserver/dto"
)

// TemplateHandler exposes template CRUD and template-driven generation.
type TemplateHandler struct {
	templates *template.Service
	decks     deck.Service
	log       zerolog.Logger
}

// NewTemplateHandler constructs the handler.
func NewTemplateHandler(templates *template.Service, decks deck.Service, log zerolog.Logger) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		decks:     decks,
		log:       log.With().Str("handler", "templates").Logger(),
	}
}

// List handles GET /v1/templates. Results are ordered by popularity.
func (h *TemplateHandler) List(c *gin.Context) {
	filter := template.ListFilter{
		Category: c.Query("category"),
		Theme:    c.Query("theme"),
		Search:   c.Query("search"),
		Offset:   queryInt(c, "skip", 0),
		Limit:    queryInt(c, "limit", 50),
	}

	templates, err := h.templates.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromTemplateList(templates))
}

// Categories handles GET /v1/templates/categories.
func (h *TemplateHandler) Categories(c *gin.Context) {
	categories, err := h.templates.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Popular handles GET /v1/templates/popular.
func (h *TemplateHandler) Popular(c *gin.Context) {
	templates, err := h.templates.Popular(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromTemplateList(templates))
}

// Get handles GET /v1/templates/:template_id.
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	t, err := h.templates.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTemplate(t))
}

// Create handles POST /v1/templates.
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.templates.Create(c.Request.Context(), templateFromRequest(req))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromTemplate(created))
}

// Update handles PATCH /v1/templates/:template_id. System templates and
// slide structures cannot be changed.
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.templates.Update(c.Request.Context(), id, func(t *template.Template) {
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Description != nil {
			t.Description = req.Description
		}
		if req.Category != nil {
			t.Category = *req.Category
		}
		if req.Theme != nil {
			t.Theme = *req.Theme
		}
		if req.ThumbnailURL != nil {
			t.ThumbnailURL = req.ThumbnailURL
		}
		if req.IsPublic != nil {
			t.IsPublic = *req.IsPublic
		}
		if req.Tags != nil {
			t.Tags = req.Tags
		}
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTemplate(updated))
}

// Delete handles DELETE /v1/templates/:template_id.
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Generate handles POST /v1/templates/:template_id/generate. The agent
// follows the template's slide order and types.
func (h *TemplateHandler) Generate(c *gin.Context) {
	params, ok := h.templateParams(c)
	if !ok {
		return
	}

	doc, err := h.decks.Generate(c.Request.Context(), params)
	if err != nil {
		metrics.RecordGeneration("failed", 0)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.RecordGeneration(string(doc.Status), len(doc.Slides))
	c.JSON(http.StatusOK, dto.GenerateSlidesPayload{Presentation: dto.FromDocument(doc)})
}

// GenerateStream handles POST /v1/templates/:template_id/generate/stream.
func (h *TemplateHandler) GenerateStream(c *gin.Context) {
	params, ok := h.templateParams(c)
	if !ok {
		return
	}

	events := h.decks.GenerateStream(c.Request.Context(), params)

	sse, ok := sseStream(c, h.log)
	if !ok {
		return
	}
	drainEvents(sse, events)
}

func (h *TemplateHandler) templateParams(c *gin.Context) (deck.GenerateParams, bool) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return deck.GenerateParams{}, false
	}
	var req dto.TemplateGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return deck.GenerateParams{}, false
	}

	tpl, guidance, err := h.templates.GuidanceFor(c.Request.Context(), id, template.GenerateOptions{
		UserContent:    req.UserContent,
		Variables:      req.Variables,
		ExcludedSlides: req.ExcludedSlides,
	})
	if err != nil {
		h.writeError(c, err)
		return deck.GenerateParams{}, false
	}

	params := deck.GenerateParams{
		SourceText:       req.UserContent,
		SlideCount:       plannedSlideCount(tpl, req.ExcludedSlides),
		Theme:            tpl.Theme,
		TemplateGuidance: guidance,
	}
	if req.Theme != nil && *req.Theme != "" {
		params.Theme = *req.Theme
	}
	if identity := auth.IdentityFrom(c); identity != nil {
		keyID := identity.KeyID
		params.OwnerKeyID = &keyID
	}
	return params, true
}

// plannedSlideCount is the number of template slides surviving exclusion.
// Required slides cannot be excluded.
func plannedSlideCount(t *template.Template, excludedSlides []int) int {
	excluded := make(map[int]bool, len(excludedSlides))
	for _, order := range excludedSlides {
		excluded[order] = true
	}
	count := 0
	for _, s := range t.Slides {
		if excluded[s.Order] && !s.IsRequired {
			continue
		}
		count++
	}
	if count == 0 {
		return len(t.Slides)
	}
	return count
}

func templateFromRequest(req dto.CreateTemplateRequest) *template.Template {
	t := &template.Template{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Theme:           req.Theme,
		ThumbnailURL:    req.ThumbnailURL,
		IsPublic:        req.IsPublic == nil || *req.IsPublic,
		Tags:            req.Tags,
		DifficultyLevel: req.DifficultyLevel,
		EstimatedTime:   req.EstimatedTime,
		IndustryTags:    req.IndustryTags,
		Slides:          make([]template.TemplateSlide, 0, len(req.Slides)),
	}
	for i, s := range req.Slides {
		order := s.Order
		if order == 0 {
			order = i
		}
		layout := s.Layout
		if layout == "" {
			layout = "left"
		}
		t.Slides = append(t.Slides, template.TemplateSlide{
			Order:              order,
			SlideType:          s.SlideType,
			Layout:             layout,
			PlaceholderTitle:   s.PlaceholderTitle,
			PlaceholderBody:    s.PlaceholderBody,
			PlaceholderBullets: s.PlaceholderBullets,
			AIInstructions:     s.AIInstructions,
			IsRequired:         s.IsRequired,
		})
	}
	return t
}

func (h *TemplateHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, template.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
	case errors.Is(err, template.ErrSystemTemplate):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
