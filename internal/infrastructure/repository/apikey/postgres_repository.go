// Package apikey provides GORM persistence for API keys.
package apikey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "decksnap/slides-api/internal/domain/apikey"
	"decksnap/slides-api/internal/infrastructure/database/entities"
)

// PostgresRepository provides persistence for API keys.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new key record.
func (r *PostgresRepository) Create(ctx context.Context, k *domain.Key) error {
	entity := mapToEntity(k)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create api key: %w", err)
	}
	mapFromEntity(entity, k)
	return nil
}

// FindByHash looks up a key by its stored hash.
func (r *PostgresRepository) FindByHash(ctx context.Context, hash string) (*domain.Key, error) {
	var entity entities.APIKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", hash).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find api key by hash: %w", err)
	}
	k := &domain.Key{}
	mapFromEntity(&entity, k)
	return k, nil
}

// FindByID fetches a key by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id uint) (*domain.Key, error) {
	var entity entities.APIKey
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find api key %d: %w", id, err)
	}
	k := &domain.Key{}
	mapFromEntity(&entity, k)
	return k, nil
}

// List returns a page of keys, newest first, plus the total count.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]domain.Key, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.APIKey{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count api keys: %w", err)
	}

	var rows []entities.APIKey
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list api keys: %w", err)
	}

	keys := make([]domain.Key, len(rows))
	for i := range rows {
		mapFromEntity(&rows[i], &keys[i])
	}
	return keys, total, nil
}

// Update persists mutable key fields.
func (r *PostgresRepository) Update(ctx context.Context, k *domain.Key) error {
	updates := map[string]interface{}{
		"name":       k.Name,
		"scopes":     k.Scopes,
		"is_active":  k.IsActive,
		"expires_at": k.ExpiresAt,
	}
	return r.db.WithContext(ctx).
		Model(&entities.APIKey{}).
		Where("id = ?", k.ID).
		Updates(updates).Error
}

// TouchLastUsed bumps the last used timestamp.
func (r *PostgresRepository) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.APIKey{}).
		Where("id = ?", id).
		UpdateColumn("last_used_at", at).Error
}

// Delete permanently removes a key.
func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.APIKey{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete api key %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapToEntity(k *domain.Key) *entities.APIKey {
	return &entities.APIKey{
		ID:         k.ID,
		Name:       k.Name,
		KeyHash:    k.KeyHash,
		KeyPrefix:  k.KeyPrefix,
		IsActive:   k.IsActive,
		Scopes:     k.Scopes,
		LastUsedAt: k.LastUsedAt,
		ExpiresAt:  k.ExpiresAt,
	}
}

func mapFromEntity(entity *entities.APIKey, k *domain.Key) {
	k.ID = entity.ID
	k.Name = entity.Name
	k.KeyHash = entity.KeyHash
	k.KeyPrefix = entity.KeyPrefix
	k.IsActive = entity.IsActive
	k.Scopes = entity.Scopes
	k.LastUsedAt = entity.LastUsedAt
	k.ExpiresAt = entity.ExpiresAt
	k.CreatedAt = entity.CreatedAt
	k.UpdatedAt = entity.UpdatedAt
}

// Ensure interface compliance.
var _ domain.Repository = (*PostgresRepository)(nil)
