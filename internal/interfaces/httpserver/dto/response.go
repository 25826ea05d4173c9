package dto

import (
	"time"

	"decksnap/slides-api/internal/domain/apikey"
	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/sales"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/template"
)

// PresentationPayload is the client-facing presentation shape.
type PresentationPayload struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Theme       string             `json:"theme"`
	Status      string             `json:"status"`
	Slides      []slide.Slide      `json:"slides"`
	Usage       *llm.Usage         `json:"usage,omitempty"`
	Error       *deck.ErrorDetails `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	FailedAt    *time.Time         `json:"failed_at,omitempty"`
}

// FromDocument maps the domain presentation to DTO.
func FromDocument(d *deck.Document) PresentationPayload {
	return PresentationPayload{
		ID:          d.PublicID,
		Title:       d.Title,
		Theme:       d.Theme,
		Status:      string(d.Status),
		Slides:      d.Slides,
		Usage:       d.Usage,
		Error:       d.Error,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		CompletedAt: d.CompletedAt,
		FailedAt:    d.FailedAt,
	}
}

// GenerateSlidesPayload wraps the presentation produced by a blocking run.
type GenerateSlidesPayload struct {
	Presentation PresentationPayload `json:"presentation"`
}

// PresentationListPayload pages stored presentations.
type PresentationListPayload struct {
	Data   []PresentationPayload `json:"data"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// FromDocuments maps a listing page to DTOs.
func FromDocuments(docs []deck.Document) []PresentationPayload {
	out := make([]PresentationPayload, 0, len(docs))
	for i := range docs {
		out = append(out, FromDocument(&docs[i]))
	}
	return out
}

// SalesPitchTextPayload previews generated sales content before slides exist.
type SalesPitchTextPayload struct {
	GeneratedText  string   `json:"generated_text"`
	SuggestedTitle string   `json:"suggested_title"`
	SlideOutline   []string `json:"slide_outline"`
}

// FromSalesContent maps generated pitch material to DTO.
func FromSalesContent(c *sales.Content) SalesPitchTextPayload {
	return SalesPitchTextPayload{
		GeneratedText:  c.Text,
		SuggestedTitle: c.Title,
		SlideOutline:   c.Outline,
	}
}

// TemplatePayload is the full template shape including slide structures.
type TemplatePayload struct {
	ID              uint                     `json:"id"`
	Name            string                   `json:"name"`
	Description     *string                  `json:"description,omitempty"`
	Category        string                   `json:"category"`
	Theme           string                   `json:"theme"`
	ThumbnailURL    *string                  `json:"thumbnail_url,omitempty"`
	IsSystem        bool                     `json:"is_system"`
	IsPublic        bool                     `json:"is_public"`
	UsageCount      int                      `json:"usage_count"`
	Tags            []string                 `json:"tags,omitempty"`
	DifficultyLevel string                   `json:"difficulty_level"`
	EstimatedTime   int                      `json:"estimated_time"`
	IndustryTags    []string                 `json:"industry_tags,omitempty"`
	Slides          []template.TemplateSlide `json:"slides"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// FromTemplate maps the domain template to DTO.
func FromTemplate(t *template.Template) TemplatePayload {
	return TemplatePayload{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Category:        t.Category,
		Theme:           t.Theme,
		ThumbnailURL:    t.ThumbnailURL,
		IsSystem:        t.IsSystem,
		IsPublic:        t.IsPublic,
		UsageCount:      t.UsageCount,
		Tags:            t.Tags,
		DifficultyLevel: t.DifficultyLevel,
		EstimatedTime:   t.EstimatedTime,
		IndustryTags:    t.IndustryTags,
		Slides:          t.Slides,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TemplateListItem is the compact listing shape without slide structures.
type TemplateListItem struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	Category     string   `json:"category"`
	Theme        string   `json:"theme"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	IsSystem     bool     `json:"is_system"`
	UsageCount   int      `json:"usage_count"`
	SlideCount   int      `json:"slide_count"`
	Tags         []string `json:"tags,omitempty"`
}

// FromTemplateList maps templates to the compact listing shape.
func FromTemplateList(templates []template.Template) []TemplateListItem {
	out := make([]TemplateListItem, 0, len(templates))
	for i := range templates {
		t := &templates[i]
		out = append(out, TemplateListItem{
			ID:           t.ID,
			Name:         t.Name,
			Description:  t.Description,
			Category:     t.Category,
			Theme:        t.Theme,
			ThumbnailURL: t.ThumbnailURL,
			IsSystem:     t.IsSystem,
			UsageCount:   t.UsageCount,
			SlideCount:   len(t.Slides),
			Tags:         t.Tags,
		})
	}
	return out
}

// APIKeyPayload is the stored key shape. The raw secret never appears here.
type APIKeyPayload struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"key_prefix"`
	IsActive   bool       `json:"is_active"`
	Scopes     string     `json:"scopes"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FromKey maps a stored API key to DTO.
func FromKey(k *apikey.Key) APIKeyPayload {
	return APIKeyPayload{
		ID:         k.ID,
		Name:       k.Name,
		KeyPrefix:  k.KeyPrefix,
		IsActive:   k.IsActive,
		Scopes:     k.Scopes,
		LastUsedAt: k.LastUsedAt,
		ExpiresAt:  k.ExpiresAt,
		CreatedAt:  k.CreatedAt,
	}
}

// CreatedAPIKeyPayload includes the raw secret, returned exactly once at
// creation time.
type CreatedAPIKeyPayload struct {
	APIKeyPayload
	Key string `json:"key"`
}

// APIKeyListPayload pages stored keys.
type APIKeyListPayload struct {
	Data  []APIKeyPayload `json:"data"`
	Total int64           `json:"total"`
}
