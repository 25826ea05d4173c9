package template

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/theme"
)

const (
	defaultListLimit    = 50
	defaultPopularLimit = 10
	defaultDifficulty   = "beginner"
	defaultEstimatedMin = 10
)

// Service wraps the repository with template business rules.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("component", "template_service").Logger()}
}

func (s *Service) Create(ctx context.Context, t *Template) (*Template, error) {
	t.ID = 0
	t.IsSystem = false
	t.UsageCount = 0
	t.Theme = theme.Resolve(t.Theme).Name
	if t.DifficultyLevel == "" {
		t.DifficultyLevel = defaultDifficulty
	}
	if t.EstimatedTime <= 0 {
		t.EstimatedTime = defaultEstimatedMin
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Update applies metadata changes. Slide structure is immutable after
// creation, matching the create-then-use lifecycle.
func (s *Service) Update(ctx context.Context, id uint, apply func(*Template)) (*Template, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsSystem {
		return nil, ErrSystemTemplate
	}
	apply(t)
	t.Theme = theme.Resolve(t.Theme).Name
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update template %d: %w", id, err)
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t.IsSystem {
		return ErrSystemTemplate
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Template, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Template, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Categories(ctx context.Context) ([]CategoryCount, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Popular(ctx context.Context, limit int) ([]Template, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultPopularLimit
	}
	return s.repo.Popular(ctx, limit)
}

// GuidanceFor loads a template, bumps its usage counter and returns the
// structure prompt for a generation run. A failed counter bump is logged
// and ignored.
func (s *Service) GuidanceFor(ctx context.Context, id uint, opts GenerateOptions) (*Template, string, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := s.repo.IncrementUsage(ctx, id); err != nil {
		s.log.Warn().Err(err).Uint("template_id", id).Msg("failed to bump usage counter")
	}
	return t, BuildGenerationPrompt(t, opts), nil
}
