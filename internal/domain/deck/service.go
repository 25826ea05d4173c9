package deck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
	"decksnap/slides-api/internal/domain/theme"
)

// ErrNotFound is returned when a presentation cannot be located.
var ErrNotFound = errors.New("presentation not found")

// ErrSlideOutOfRange is returned when a slide update targets an order the
// presentation does not have.
var ErrSlideOutOfRange = errors.New("slide order out of range")

const streamBuffer = 16

type service struct {
	repo   Repository
	engine *Engine
	log    zerolog.Logger
}

// NewService builds the presentation service around a repository and a
// generation engine.
func NewService(repo Repository, engine *Engine, log zerolog.Logger) Service {
	return &service{
		repo:   repo,
		engine: engine,
		log:    log.With().Str("component", "deck_service").Logger(),
	}
}

// Generate runs the full loop synchronously and returns the finished
// document. Progress events are discarded.
func (s *service) Generate(ctx context.Context, params GenerateParams) (*Document, error) {
	return s.run(ctx, params, nil)
}

// GenerateStream runs the loop on a detached context and returns a channel
// of progress events ending in exactly one complete or error event. The
// channel is closed when the run ends; consumers must drain it fully, and a
// consumer that goes away does not stop the generation.
func (s *service) GenerateStream(ctx context.Context, params GenerateParams) <-chan Event {
	ch := make(chan Event, streamBuffer)
	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(ch)
		// Delivery is best effort once the consumer's context ends; events
		// past the buffer are dropped then so the run still commits.
		sink := func(ev Event) {
			select {
			case ch <- ev:
				return
			default:
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
		}
		if _, err := s.run(runCtx, params, sink); err != nil {
			s.log.Error().Err(err).Msg("streamed generation failed")
		}
	}()
	return ch
}

func (s *service) run(ctx context.Context, params GenerateParams, sink Sink) (*Document, error) {
	descriptor := theme.Resolve(params.Theme)
	title := strings.TrimSpace(params.Title)
	if title == "" {
		title = PlaceholderTitle
	}

	doc := &Document{
		PublicID:   newPublicID(),
		Title:      title,
		Theme:      descriptor.Name,
		SourceText: params.SourceText,
		Status:     status.StatusPending,
		OwnerKeyID: params.OwnerKeyID,
	}
	emitter := NewEmitter(sink)

	if err := s.repo.CreateShell(ctx, doc); err != nil {
		emitter.Error(ErrorDetails{Code: "persistence_error", Message: "failed to create presentation"})
		return nil, fmt.Errorf("create presentation shell: %w", err)
	}
	if err := advance(doc, status.StatusGenerating); err != nil {
		return nil, s.fail(ctx, doc, emitter, err)
	}

	log := s.log.With().Str("presentation_id", doc.PublicID).Logger()
	log.Info().Str("theme", doc.Theme).Int("slide_count", params.SlideCount).Msg("generation started")

	outcome, err := s.engine.Run(ctx, RunParams{
		Doc:              doc,
		SlideCount:       params.SlideCount,
		ThemeContext:     descriptor.PromptContext(),
		TemplateGuidance: params.TemplateGuidance,
		Store:            s.repo,
		Emitter:          emitter,
	})
	if err != nil {
		return nil, s.fail(ctx, doc, emitter, err)
	}

	if err := advance(doc, status.StatusFinalizing); err != nil {
		return nil, s.fail(ctx, doc, emitter, err)
	}
	if err := advance(doc, outcome); err != nil {
		return nil, s.fail(ctx, doc, emitter, err)
	}
	if err := s.repo.Complete(ctx, doc); err != nil {
		return nil, s.fail(ctx, doc, emitter, fmt.Errorf("commit presentation: %w", err))
	}

	log.Info().Str("status", string(outcome)).Int("slides", len(doc.Slides)).Msg("generation finished")
	emitter.Complete(doc)
	return doc, nil
}

// advance moves the document through the status machine, rejecting
// transitions the machine does not allow.
func advance(doc *Document, target status.Status) error {
	next, err := doc.Status.TransitionTo(target)
	if err != nil {
		return fmt.Errorf("presentation %s: %s to %s: %w", doc.PublicID, doc.Status, target, err)
	}
	doc.Status = next
	return nil
}

// fail records the failure state and emits the terminal error event. The
// original error is returned so blocking callers see it.
func (s *service) fail(ctx context.Context, doc *Document, emitter *Emitter, cause error) error {
	details := errorDetails(cause)
	if err := advance(doc, status.StatusFailed); err != nil {
		// A commit fault after the terminal transition still lands as failed.
		s.log.Warn().Err(err).Str("presentation_id", doc.PublicID).Msg("recording failure from a terminal status")
		doc.Status = status.StatusFailed
	}
	doc.Error = &details

	if err := s.repo.Fail(ctx, doc); err != nil {
		s.log.Error().Err(err).Str("presentation_id", doc.PublicID).Msg("failed to record failure state")
	}
	emitter.Error(details)
	return cause
}

func errorDetails(err error) ErrorDetails {
	if llm.IsProviderError(err) {
		return ErrorDetails{Code: "provider_error", Message: "the language model provider is unavailable"}
	}
	return ErrorDetails{Code: "generation_failed", Message: err.Error()}
}

func (s *service) GetByPublicID(ctx context.Context, publicID string) (*Document, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Document, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateMeta(ctx context.Context, publicID string, update MetaUpdate) (*Document, error) {
	doc, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		if title := strings.TrimSpace(*update.Title); title != "" {
			doc.Title = title
		}
	}
	if update.Theme != nil {
		doc.Theme = theme.Resolve(*update.Theme).Name
	}
	if err := s.repo.UpdateMeta(ctx, doc); err != nil {
		return nil, fmt.Errorf("update presentation %s: %w", publicID, err)
	}
	return doc, nil
}

func (s *service) UpdateSlide(ctx context.Context, publicID string, order int, updated slide.Slide) (*Document, error) {
	doc, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if order < 0 || order >= len(doc.Slides) {
		return nil, ErrSlideOutOfRange
	}
	updated.Order = order
	if err := s.repo.UpdateSlide(ctx, doc.ID, order, updated); err != nil {
		return nil, fmt.Errorf("update slide %d of %s: %w", order, publicID, err)
	}
	doc.Slides[order] = updated
	return doc, nil
}

func (s *service) Delete(ctx context.Context, publicID string) error {
	return s.repo.Delete(ctx, publicID)
}

func newPublicID() string {
	return "pres_" + uuid.New().String()
}
