package models

import "time"

// AuditLog records API operations for auditing.
type AuditLog struct {
	ID         uint  `gorm:"primaryKey"`
	MerchantID *uint `gorm:"index"`
	Method     string `gorm:"size:16"`
	Path       string `gorm:"size:255"`
	Action     string `gorm:"size:1024"`
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	CreatedAt  time.Time
}
