package models

import (
	"gorm.io/datatypes"
)

// SubscriptionPlan is a purchasable tier. The tier name (Basic/Silver/Gold)
// drives listing priority; see internal/algorithms.
type SubscriptionPlan struct {
	BaseModel
	Name         string         `gorm:"uniqueIndex;not null"` // Basic, Silver, Gold
	Price        float64        `gorm:"not null"`
	Currency     string         `gorm:"default:'INR'"`
	DurationDays int            `gorm:"not null"`
	Features     datatypes.JSON `gorm:"type:jsonb"` // {"priority_listing": true, ...}
	IsActive     bool           `gorm:"default:true"`
}
