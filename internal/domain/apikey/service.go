package apikey

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CreateParams carries the inputs for issuing a new key.
type CreateParams struct {
	Name      string
	Scopes    string
	ExpiresAt *time.Time
	IsTest    bool
}

// UpdateParams carries optional mutations to a stored key.
type UpdateParams struct {
	Name     *string
	Scopes   *string
	IsActive *bool
}

// Service manages key issuance, validation and lifecycle.
type Service struct {
	repo Repository
	now  func() time.Time
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With().Str("component", "apikey_service").Logger(),
	}
}

// Create issues a new key and returns the stored record together with the
// raw secret. The secret is not retrievable afterwards.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Key, string, error) {
	raw, err := GenerateKey(params.IsTest)
	if err != nil {
		return nil, "", err
	}
	scopes := params.Scopes
	if scopes == "" {
		scopes = ScopeAll
	}

	key := &Key{
		Name:      params.Name,
		KeyHash:   HashKey(raw),
		KeyPrefix: DisplayPrefix(raw),
		IsActive:  true,
		Scopes:    scopes,
		ExpiresAt: params.ExpiresAt,
	}
	if err := s.repo.Create(ctx, key); err != nil {
		return nil, "", fmt.Errorf("store api key: %w", err)
	}
	s.log.Info().Uint("key_id", key.ID).Str("prefix", key.KeyPrefix).Msg("api key issued")
	return key, raw, nil
}

// Validate checks a raw key and returns the caller identity when the key
// exists, is active and has not expired. The last-used timestamp is bumped
// best-effort.
func (s *Service) Validate(ctx context.Context, raw string) (*Identity, error) {
	key, err := s.repo.FindByHash(ctx, HashKey(raw))
	if err != nil {
		return nil, err
	}
	if !key.IsActive {
		return nil, ErrNotFound
	}
	if key.ExpiresAt != nil && key.ExpiresAt.Before(s.now()) {
		return nil, ErrNotFound
	}

	if err := s.repo.TouchLastUsed(ctx, key.ID, s.now()); err != nil {
		s.log.Warn().Err(err).Uint("key_id", key.ID).Msg("failed to bump last_used_at")
	}

	return &Identity{KeyID: key.ID, Name: key.Name, Scopes: key.ScopeList()}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Key, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Key, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*Key, error) {
	key, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		key.Name = *params.Name
	}
	if params.Scopes != nil {
		key.Scopes = *params.Scopes
	}
	if params.IsActive != nil {
		key.IsActive = *params.IsActive
	}
	if err := s.repo.Update(ctx, key); err != nil {
		return nil, fmt.Errorf("update api key %d: %w", id, err)
	}
	return key, nil
}

// Revoke deactivates a key without deleting its record.
func (s *Service) Revoke(ctx context.Context, id uint) error {
	inactive := false
	_, err := s.Update(ctx, id, UpdateParams{IsActive: &inactive})
	return err
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
