package entities

import "time"

// APIKey authenticates public API requests. Only the sha256 hash of the
// raw key is stored.
type APIKey struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100"`
	KeyHash    string `gorm:"uniqueIndex;size:64"`
	KeyPrefix  string `gorm:"size:20"`
	IsActive   bool   `gorm:"default:true"`
	Scopes     string `gorm:"type:text;default:'*'"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
