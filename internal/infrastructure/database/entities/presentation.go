package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Presentation is the persisted presentation record. Slides live in their
// own table ordered by the Order column.
type Presentation struct {
	ID         uint           `gorm:"primaryKey"`
	PublicID   string         `gorm:"uniqueIndex;size:64"`
	Title      string         `gorm:"size:255"`
	Theme      string         `gorm:"size:50"`
	SourceText string         `gorm:"type:text"`
	Status     string         `gorm:"size:32;index"`
	Usage      datatypes.JSON `gorm:"type:jsonb"`
	Error      datatypes.JSON `gorm:"type:jsonb"`

	APIKeyID *uint `gorm:"index"`
	APIKey   *APIKey

	Slides []PresentationSlide `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time
}
