// Package presentation provides GORM persistence for the deck domain.
package presentation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
	"decksnap/slides-api/internal/infrastructure/database/entities"
)

// PostgresRepository provides persistence for presentations.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateShell inserts the presentation row before generation starts so
// slides have a parent to flush against.
func (r *PostgresRepository) CreateShell(ctx context.Context, doc *deck.Document) error {
	entity := &entities.Presentation{
		PublicID:   doc.PublicID,
		Title:      doc.Title,
		Theme:      doc.Theme,
		SourceText: doc.SourceText,
		Status:     string(doc.Status),
		APIKeyID:   doc.OwnerKeyID,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create presentation: %w", err)
	}

	doc.ID = entity.ID
	doc.CreatedAt = entity.CreatedAt
	doc.UpdatedAt = entity.UpdatedAt
	return nil
}

// AppendSlide flushes one generated slide.
func (r *PostgresRepository) AppendSlide(ctx context.Context, documentID uint, s slide.Slide) error {
	entity, err := slideToEntity(documentID, s)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("append slide %d: %w", s.Order, err)
	}
	return nil
}

// Complete commits the final document state.
func (r *PostgresRepository) Complete(ctx context.Context, doc *deck.Document) error {
	now := time.Now()
	usage, err := marshalJSONPtr(doc.Usage)
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}

	updates := map[string]interface{}{
		"title":        doc.Title,
		"status":       string(doc.Status),
		"usage":        usage,
		"completed_at": now,
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Presentation{}).
		Where("id = ?", doc.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("complete presentation: %w", err)
	}

	doc.CompletedAt = &now
	return nil
}

// Fail records a failed run.
func (r *PostgresRepository) Fail(ctx context.Context, doc *deck.Document) error {
	now := time.Now()
	errJSON, err := marshalJSONPtr(doc.Error)
	if err != nil {
		return fmt.Errorf("marshal error details: %w", err)
	}

	updates := map[string]interface{}{
		"status":    string(status.StatusFailed),
		"error":     errJSON,
		"failed_at": now,
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Presentation{}).
		Where("id = ?", doc.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("mark presentation failed: %w", err)
	}

	doc.FailedAt = &now
	return nil
}

// FindByPublicID fetches a presentation with its slides in order.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, publicID string) (*deck.Document, error) {
	var entity entities.Presentation
	if err := r.db.WithContext(ctx).
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_order ASC")
		}).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, deck.ErrNotFound
		}
		return nil, fmt.Errorf("find presentation %s: %w", publicID, err)
	}

	return mapFromEntity(&entity)
}

// List returns a page of presentations plus the total count.
func (r *PostgresRepository) List(ctx context.Context, filter deck.ListFilter) ([]deck.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Presentation{})
	if filter.OwnerKeyID != nil {
		query = query.Where("api_key_id = ?", *filter.OwnerKeyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count presentations: %w", err)
	}

	var rows []entities.Presentation
	if err := query.
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_order ASC")
		}).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list presentations: %w", err)
	}

	docs := make([]deck.Document, 0, len(rows))
	for i := range rows {
		doc, err := mapFromEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, *doc)
	}
	return docs, total, nil
}

// UpdateMeta persists title and theme changes.
func (r *PostgresRepository) UpdateMeta(ctx context.Context, doc *deck.Document) error {
	updates := map[string]interface{}{
		"title": doc.Title,
		"theme": doc.Theme,
	}
	return r.db.WithContext(ctx).
		Model(&entities.Presentation{}).
		Where("id = ?", doc.ID).
		Updates(updates).Error
}

// UpdateSlide replaces the stored slide at the given order.
func (r *PostgresRepository) UpdateSlide(ctx context.Context, documentID uint, order int, s slide.Slide) error {
	var existing entities.PresentationSlide
	if err := r.db.WithContext(ctx).
		Where("presentation_id = ? AND slide_order = ?", documentID, order).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deck.ErrSlideOutOfRange
		}
		return fmt.Errorf("load slide %d: %w", order, err)
	}

	entity, err := slideToEntity(documentID, s)
	if err != nil {
		return err
	}
	entity.ID = existing.ID
	entity.CreatedAt = existing.CreatedAt

	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("update slide %d: %w", order, err)
	}
	return nil
}

// Delete removes a presentation and its slides.
func (r *PostgresRepository) Delete(ctx context.Context, publicID string) error {
	result := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&entities.Presentation{})
	if result.Error != nil {
		return fmt.Errorf("delete presentation %s: %w", publicID, result.Error)
	}
	if result.RowsAffected == 0 {
		return deck.ErrNotFound
	}
	return nil
}

// Ensure interface compliance.
var _ deck.Repository = (*PostgresRepository)(nil)
