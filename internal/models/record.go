package models

import "time"

// Transaction kinds as stored. Values outside this set are tolerated by the
// reporting engine but rejected at the API boundary.
const (
	KindCash    = "cash"
	KindNonCash = "non_cash"
	KindReceipt = "receipt"
)

// TransactionRecord is one recorded business event for a merchant.
// Amounts are stored in minor units (cents) to avoid float drift; conversion
// to a decimal value happens once, when a report is built.
type TransactionRecord struct {
	ID          uint      `gorm:"primaryKey"`
	MerchantID  uint      `gorm:"index;not null"`
	Kind        string    `gorm:"size:16;index;not null"`
	AmountCent  int64     `gorm:"not null"`
	Category    string    `gorm:"size:64"` // free text; empty means uncategorized
	Description string    `gorm:"size:255"`
	OccurredAt  time.Time `gorm:"index;not null"` // when the transaction happened, not when it was recorded
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
