// Package template provides GORM persistence for presentation templates.
package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "decksnap/slides-api/internal/domain/template"
	"decksnap/slides-api/internal/infrastructure/database/entities"
)

// PostgresRepository provides persistence for templates.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a template and its slide slots.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Template) error {
	entity, err := mapToEntity(t)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return mapFromEntity(entity, t)
}

// Update persists template metadata. Slide slots are immutable.
func (r *PostgresRepository) Update(ctx context.Context, t *domain.Template) error {
	entity, err := mapToEntity(t)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"name":             entity.Name,
		"description":      entity.Description,
		"category":         entity.Category,
		"theme":            entity.Theme,
		"thumbnail_url":    entity.ThumbnailURL,
		"is_public":        entity.IsPublic,
		"tags":             entity.Tags,
		"difficulty_level": entity.DifficultyLevel,
		"estimated_time":   entity.EstimatedTime,
		"industry_tags":    entity.IndustryTags,
		"popularity_score": entity.PopularityScore,
	}
	return r.db.WithContext(ctx).
		Model(&entities.Template{}).
		Where("id = ?", t.ID).
		Updates(updates).Error
}

// Delete removes a template and its slides.
func (r *PostgresRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Template{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete template %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByID fetches a template with slides in order.
func (r *PostgresRepository) FindByID(ctx context.Context, id uint) (*domain.Template, error) {
	var entity entities.Template
	if err := r.db.WithContext(ctx).
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_order ASC")
		}).
		First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find template %d: %w", id, err)
	}

	t := &domain.Template{}
	if err := mapFromEntity(&entity, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns public templates matching the filter, most used first.
func (r *PostgresRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Template, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.Template{}).
		Where("is_public = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Theme != "" {
		query = query.Where("theme = ?", filter.Theme)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var rows []entities.Template
	if err := query.
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_order ASC")
		}).
		Order("usage_count DESC, name ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	return mapSlice(rows)
}

// Categories returns category facets for public templates.
func (r *PostgresRepository) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	if err := r.db.WithContext(ctx).
		Model(&entities.Template{}).
		Select("category, COUNT(id) AS count").
		Where("is_public = ?", true).
		Group("category").
		Order("count DESC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count template categories: %w", err)
	}
	return counts, nil
}

// Popular returns the most used public templates.
func (r *PostgresRepository) Popular(ctx context.Context, limit int) ([]domain.Template, error) {
	var rows []entities.Template
	if err := r.db.WithContext(ctx).
		Preload("Slides", func(db *gorm.DB) *gorm.DB {
			return db.Order("slide_order ASC")
		}).
		Where("is_public = ?", true).
		Order("usage_count DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list popular templates: %w", err)
	}
	return mapSlice(rows)
}

// IncrementUsage bumps the usage counter.
func (r *PostgresRepository) IncrementUsage(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&entities.Template{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

func mapSlice(rows []entities.Template) ([]domain.Template, error) {
	out := make([]domain.Template, 0, len(rows))
	for i := range rows {
		t := domain.Template{}
		if err := mapFromEntity(&rows[i], &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func mapToEntity(t *domain.Template) (*entities.Template, error) {
	tags, err := marshalStrings(t.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	industry, err := marshalStrings(t.IndustryTags)
	if err != nil {
		return nil, fmt.Errorf("marshal industry tags: %w", err)
	}

	entity := &entities.Template{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		Category:        t.Category,
		Theme:           t.Theme,
		ThumbnailURL:    t.ThumbnailURL,
		IsSystem:        t.IsSystem,
		IsPublic:        t.IsPublic,
		UsageCount:      t.UsageCount,
		Tags:            tags,
		DifficultyLevel: t.DifficultyLevel,
		EstimatedTime:   t.EstimatedTime,
		IndustryTags:    industry,
		PopularityScore: t.PopularityScore,
	}

	for _, s := range t.Slides {
		bullets, err := marshalStrings(s.PlaceholderBullets)
		if err != nil {
			return nil, fmt.Errorf("marshal placeholder bullets: %w", err)
		}
		entity.Slides = append(entity.Slides, entities.TemplateSlide{
			Order:              s.Order,
			SlideType:          s.SlideType,
			Layout:             s.Layout,
			PlaceholderTitle:   s.PlaceholderTitle,
			PlaceholderBody:    s.PlaceholderBody,
			PlaceholderBullets: bullets,
			AIInstructions:     s.AIInstructions,
			IsRequired:         s.IsRequired,
		})
	}
	return entity, nil
}

func mapFromEntity(entity *entities.Template, t *domain.Template) error {
	t.ID = entity.ID
	t.Name = entity.Name
	t.Description = entity.Description
	t.Category = entity.Category
	t.Theme = entity.Theme
	t.ThumbnailURL = entity.ThumbnailURL
	t.IsSystem = entity.IsSystem
	t.IsPublic = entity.IsPublic
	t.UsageCount = entity.UsageCount
	t.DifficultyLevel = entity.DifficultyLevel
	t.EstimatedTime = entity.EstimatedTime
	t.PopularityScore = entity.PopularityScore
	t.CreatedAt = entity.CreatedAt
	t.UpdatedAt = entity.UpdatedAt

	if err := unmarshalStrings(entity.Tags, &t.Tags); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := unmarshalStrings(entity.IndustryTags, &t.IndustryTags); err != nil {
		return fmt.Errorf("unmarshal industry tags: %w", err)
	}

	t.Slides = make([]domain.TemplateSlide, 0, len(entity.Slides))
	for _, s := range entity.Slides {
		slot := domain.TemplateSlide{
			Order:            s.Order,
			SlideType:        s.SlideType,
			Layout:           s.Layout,
			PlaceholderTitle: s.PlaceholderTitle,
			PlaceholderBody:  s.PlaceholderBody,
			AIInstructions:   s.AIInstructions,
			IsRequired:       s.IsRequired,
		}
		if err := unmarshalStrings(s.PlaceholderBullets, &slot.PlaceholderBullets); err != nil {
			return fmt.Errorf("unmarshal placeholder bullets: %w", err)
		}
		t.Slides = append(t.Slides, slot)
	}
	return nil
}

func marshalStrings(values []string) (datatypes.JSON, error) {
	if values == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(values)
	return datatypes.JSON(bytes), err
}

func unmarshalStrings(raw datatypes.JSON, target *[]string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, target)
}

// Ensure interface compliance.
var _ domain.Repository = (*PostgresRepository)(nil)
