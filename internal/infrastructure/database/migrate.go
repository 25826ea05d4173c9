package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"decksnap/slides-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the slides domain.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.APIKey{},
		&entities.Presentation{},
		&entities.PresentationSlide{},
		&entities.Template{},
		&entities.TemplateSlide{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
