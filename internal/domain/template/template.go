// Package template defines reusable presentation structures and the
// structure-guidance prompt they contribute to a generation run.
package template

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a template does not exist.
	ErrNotFound = errors.New("template not found")
	// ErrSystemTemplate is returned when a caller tries to change or
	// delete a built-in template.
	ErrSystemTemplate = errors.New("system templates cannot be modified")
)

// Template is a reusable presentation structure. System templates ship with
// the service; user templates are created through the API.
type Template struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	Category     string   `json:"category"`
	Theme        string   `json:"theme"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	IsSystem     bool     `json:"is_system"`
	IsPublic     bool     `json:"is_public"`
	UsageCount   int      `json:"usage_count"`
	Tags         []string `json:"tags,omitempty"`

	DifficultyLevel string   `json:"difficulty_level"`
	EstimatedTime   int      `json:"estimated_time"`
	IndustryTags    []string `json:"industry_tags,omitempty"`
	PopularityScore int      `json:"popularity_score"`

	Slides []TemplateSlide `json:"slides"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateSlide defines the structure of one slide within a template.
type TemplateSlide struct {
	Order              int      `json:"order"`
	SlideType          string   `json:"slide_type"`
	Layout             string   `json:"layout"`
	PlaceholderTitle   *string  `json:"placeholder_title,omitempty"`
	PlaceholderBody    *string  `json:"placeholder_body,omitempty"`
	PlaceholderBullets []string `json:"placeholder_bullets,omitempty"`
	AIInstructions     *string  `json:"ai_instructions,omitempty"`
	IsRequired         bool     `json:"is_required"`
}

// CategoryCount is one row of the category facet listing.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ListFilter narrows template listings. Only public templates are listed.
type ListFilter struct {
	Category string
	Theme    string
	Search   string
	Offset   int
	Limit    int
}

// GenerateOptions steers a template-driven generation run.
type GenerateOptions struct {
	UserContent    string
	Variables      map[string]string
	ExcludedSlides []int
}

// Repository is the persistence boundary for templates.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Template, error)
	List(ctx context.Context, filter ListFilter) ([]Template, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
	Popular(ctx context.Context, limit int) ([]Template, error)
	IncrementUsage(ctx context.Context, id uint) error
}

// BuildGenerationPrompt renders the structure-guidance block appended to the
// generation system prompt. Excluded slides are dropped unless required;
// {{variable}} placeholders in placeholder titles are substituted.
func BuildGenerationPrompt(t *Template, opts GenerateOptions) string {
	excluded := make(map[int]bool, len(opts.ExcludedSlides))
	for _, order := range opts.ExcludedSlides {
		excluded[order] = true
	}

	var descriptions []string
	for _, s := range t.Slides {
		if excluded[s.Order] && !s.IsRequired {
			continue
		}
		desc := fmt.Sprintf("Slide %d: %s", s.Order, strings.ToUpper(s.SlideType))
		if s.PlaceholderTitle != nil {
			desc += fmt.Sprintf("\n  Title: %s", ApplyVariables(*s.PlaceholderTitle, opts.Variables))
		}
		if s.AIInstructions != nil {
			desc += fmt.Sprintf("\n  Instructions: %s", *s.AIInstructions)
		}
		descriptions = append(descriptions, desc)
	}

	return fmt.Sprintf(`You are creating a presentation using the %q template.

TEMPLATE STRUCTURE (follow this slide order and types exactly):

%s

USER'S CONTENT:
%s

INSTRUCTIONS:
1. Create exactly the slides listed above in the specified order
2. Use the user's content to fill each slide appropriately
3. Follow the ai_instructions for each slide
4. Match the %s category style
5. Keep content professional and engaging`,
		t.Name, strings.Join(descriptions, "\n\n"), opts.UserContent, t.Category)
}

// ApplyVariables replaces {{key}} placeholders with their values.
func ApplyVariables(text string, variables map[string]string) string {
	for key, value := range variables {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
