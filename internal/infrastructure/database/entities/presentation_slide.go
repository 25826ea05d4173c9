package entities

import (
	"time"

	"gorm.io/datatypes"
)

// PresentationSlide is one persisted slide. Variant payloads that carry
// structure (bullets, chart data, stats, comparison columns, timeline
// items) are stored as jsonb; the big number fields stay flat columns.
type PresentationSlide struct {
	ID             uint   `gorm:"primaryKey"`
	PresentationID uint   `gorm:"index:idx_presentation_slide_order,unique"`
	Order          int    `gorm:"column:slide_order;index:idx_presentation_slide_order,unique"`
	SlideType      string `gorm:"size:50"`
	Title          string `gorm:"size:255"`
	Layout         string `gorm:"size:20"`

	Subtitle    *string        `gorm:"size:500"`
	Body        *string        `gorm:"type:text"`
	Bullets     datatypes.JSON `gorm:"type:jsonb"`
	Quote       *string        `gorm:"type:text"`
	Attribution *string        `gorm:"size:255"`

	ChartType   *string        `gorm:"size:20"`
	ChartData   datatypes.JSON `gorm:"type:jsonb"`
	ChartConfig datatypes.JSON `gorm:"type:jsonb"`

	Stats             datatypes.JSON `gorm:"type:jsonb"`
	BigNumberValue    *string        `gorm:"size:50"`
	BigNumberLabel    *string        `gorm:"size:255"`
	BigNumberContext  *string        `gorm:"size:500"`
	ComparisonColumns datatypes.JSON `gorm:"type:jsonb"`
	TimelineItems     datatypes.JSON `gorm:"type:jsonb"`

	ImageQuery  *string `gorm:"size:255"`
	ImageURL    *string `gorm:"size:1000"`
	ImageAlt    *string `gorm:"size:500"`
	ImageCredit *string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
