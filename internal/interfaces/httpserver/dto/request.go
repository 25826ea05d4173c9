package dto

import (
	"time"

	"decksnap/slides-api/internal/domain/sales"
)

// GenerateSlidesRequest models POST /v1/slides/generate input.
type GenerateSlidesRequest struct {
	Text       string  `json:"text" binding:"required"`
	SlideCount *int    `json:"slide_count,omitempty" binding:"omitempty,min=1,max=15"`
	Title      *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Theme      string  `json:"theme,omitempty"`
}

// GenerateSalesPitchRequest models the sales generation endpoints.
type GenerateSalesPitchRequest struct {
	Pitch sales.PitchInput `json:"pitch" binding:"required"`
	Title *string          `json:"title,omitempty" binding:"omitempty,max=255"`
}

// UpdatePresentationRequest carries optional metadata changes.
type UpdatePresentationRequest struct {
	Title *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Theme *string `json:"theme,omitempty"`
}

// TemplateSlidePayload defines one slide of a template in the HTTP contract.
type TemplateSlidePayload struct {
	Order              int      `json:"order"`
	SlideType          string   `json:"slide_type" binding:"required"`
	Layout             string   `json:"layout"`
	PlaceholderTitle   *string  `json:"placeholder_title,omitempty"`
	PlaceholderBody    *string  `json:"placeholder_body,omitempty"`
	PlaceholderBullets []string `json:"placeholder_bullets,omitempty"`
	AIInstructions     *string  `json:"ai_instructions,omitempty"`
	IsRequired         bool     `json:"is_required"`
}

// CreateTemplateRequest models POST /v1/templates input.
type CreateTemplateRequest struct {
	Name            string                 `json:"name" binding:"required,max=255"`
	Description     *string                `json:"description,omitempty"`
	Category        string                 `json:"category" binding:"required"`
	Theme           string                 `json:"theme,omitempty"`
	ThumbnailURL    *string                `json:"thumbnail_url,omitempty"`
	IsPublic        *bool                  `json:"is_public,omitempty"`
	Tags            []string               `json:"tags,omitempty"`
	DifficultyLevel string                 `json:"difficulty_level,omitempty"`
	EstimatedTime   int                    `json:"estimated_time,omitempty"`
	IndustryTags    []string               `json:"industry_tags,omitempty"`
	Slides          []TemplateSlidePayload `json:"slides" binding:"required,min=1"`
}

// UpdateTemplateRequest models PATCH /v1/templates/:id input. The slide
// structure of a template is immutable after creation.
type UpdateTemplateRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Theme        *string  `json:"theme,omitempty"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	IsPublic     *bool    `json:"is_public,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// TemplateGenerateRequest models POST /v1/templates/:id/generate input.
type TemplateGenerateRequest struct {
	UserContent    string            `json:"user_content" binding:"required"`
	Theme          *string           `json:"theme,omitempty"`
	Variables      map[string]string `json:"variables,omitempty"`
	ExcludedSlides []int             `json:"excluded_slides,omitempty"`
}

// CreateAPIKeyRequest models POST /v1/api-keys input.
type CreateAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required,max=255"`
	Scopes    string     `json:"scopes,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsTest    bool       `json:"is_test,omitempty"`
}

// UpdateAPIKeyRequest models PATCH /v1/api-keys/:id input.
type UpdateAPIKeyRequest struct {
	Name     *string `json:"name,omitempty"`
	Scopes   *string `json:"scopes,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
