package entities

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Template is a reusable presentation structure.
type Template struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"size:255"`
	Description  *string        `gorm:"type:text"`
	Category     string         `gorm:"size:50;index"`
	Theme        string         `gorm:"size:50"`
	ThumbnailURL *string        `gorm:"size:500"`
	IsSystem     bool           `gorm:"default:false"`
	IsPublic     bool           `gorm:"default:true"`
	UsageCount   int            `gorm:"default:0"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`

	DifficultyLevel string         `gorm:"size:20"`
	EstimatedTime   int            `gorm:"default:10"`
	IndustryTags    datatypes.JSON `gorm:"type:jsonb"`
	PopularityScore int            `gorm:"default:0"`

	Slides []TemplateSlide `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate ensures defaults.
func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.DifficultyLevel == "" {
		t.DifficultyLevel = "beginner"
	}
	return nil
}

// TemplateSlide defines one slide slot within a template.
type TemplateSlide struct {
	ID         uint `gorm:"primaryKey"`
	TemplateID uint `gorm:"index"`
	Order      int  `gorm:"column:slide_order"`

	SlideType          string         `gorm:"size:50"`
	Layout             string         `gorm:"size:20"`
	PlaceholderTitle   *string        `gorm:"size:255"`
	PlaceholderBody    *string        `gorm:"type:text"`
	PlaceholderBullets datatypes.JSON `gorm:"type:jsonb"`
	AIInstructions     *string        `gorm:"type:text"`
	IsRequired         bool           `gorm:"default:true"`
}
