// Package deck contains the presentation aggregate and the agentic
// generation loop that builds it one slide at a time.
package deck

import (
	"context"
	"time"

	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
)

// DefaultSlideCount is used when the caller does not request a count.
const DefaultSlideCount = 8

// PlaceholderTitle is assigned at loop start and replaced by the
// finish_presentation argument when the agent provides one.
const PlaceholderTitle = "Untitled Presentation"

// Document is the presentation aggregate produced by one generation run.
// Slides are append-only during generation; their order is the append
// sequence (0-based) and is never reordered.
type Document struct {
	ID         uint          `json:"-"`
	PublicID   string        `json:"id"`
	Title      string        `json:"title"`
	Theme      string        `json:"theme"`
	SourceText string        `json:"-"`
	Status     status.Status `json:"status"`
	Slides     []slide.Slide `json:"slides"`
	Usage      *llm.Usage    `json:"usage,omitempty"`
	Error      *ErrorDetails `json:"error,omitempty"`
	OwnerKeyID *uint         `json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// ErrorDetails contains machine readable error info surfaced to clients.
type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GenerateParams contains inputs collected from the HTTP layer for one run.
type GenerateParams struct {
	SourceText       string
	SlideCount       int
	Title            string
	Theme            string
	TemplateGuidance string
	OwnerKeyID       *uint
}

// MetaUpdate carries optional metadata changes for a stored presentation.
type MetaUpdate struct {
	Title *string
	Theme *string
}

// ListFilter narrows and pages presentation listings.
type ListFilter struct {
	OwnerKeyID *uint
	Limit      int
	Offset     int
}

// Service exposes the presentation domain operations.
type Service interface {
	Generate(ctx context.Context, params GenerateParams) (*Document, error)
	GenerateStream(ctx context.Context, params GenerateParams) <-chan Event
	GetByPublicID(ctx context.Context, publicID string) (*Document, error)
	List(ctx context.Context, filter ListFilter) ([]Document, int64, error)
	UpdateMeta(ctx context.Context, publicID string, update MetaUpdate) (*Document, error)
	UpdateSlide(ctx context.Context, publicID string, order int, s slide.Slide) (*Document, error)
	Delete(ctx context.Context, publicID string) error
}

// Repository defines persistence operations for presentations. During
// generation the loop creates the shell first, flushes each slide as it is
// appended, and commits the final state exactly once.
type Repository interface {
	SlideSink
	CreateShell(ctx context.Context, doc *Document) error
	Complete(ctx context.Context, doc *Document) error
	Fail(ctx context.Context, doc *Document) error
	FindByPublicID(ctx context.Context, publicID string) (*Document, error)
	List(ctx context.Context, filter ListFilter) ([]Document, int64, error)
	UpdateMeta(ctx context.Context, doc *Document) error
	UpdateSlide(ctx context.Context, documentID uint, order int, s slide.Slide) error
	Delete(ctx context.Context, publicID string) error
}

// SlideSink is the narrow persistence surface the engine flushes slides to.
type SlideSink interface {
	AppendSlide(ctx context.Context, documentID uint, s slide.Slide) error
}

// ImageResolver is the best-effort image lookup boundary. Implementations
// must never fail: any miss (network, missing credential, no results)
// returns nil and the slide proceeds without an image.
type ImageResolver interface {
	SearchImage(ctx context.Context, query string) *slide.Image
}
