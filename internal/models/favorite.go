package models

import "time"

// Favorite links a customer to a saved tailor. One row per (user, tailor)
// pair, enforced by the composite unique index.
type Favorite struct {
	BaseModel
	UserID   string    `gorm:"not null;uniqueIndex:idx_favorites_user_tailor;index"`
	TailorID string    `gorm:"not null;uniqueIndex:idx_favorites_user_tailor;index"`
	AddedAt  time.Time `gorm:"default:now()"`

	// Relations
	Tailor *User `gorm:"foreignKey:TailorID"`
}
