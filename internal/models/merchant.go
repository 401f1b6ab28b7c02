package models

import "time"

// Merchant tier labels. The tier gates features in the UI layer only; the
// analytics engine never reads it.
const (
	TierBasic        = "basic"
	TierIntermediate = "intermediate"
	TierPro          = "pro"
)

// Merchant represents a registered merchant account.
type Merchant struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	BusinessName string `gorm:"size:128"`
	MerchantCode string `gorm:"size:36;uniqueIndex;not null"` // UUID issued at registration
	Tier         string `gorm:"size:16;default:basic"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`
}
