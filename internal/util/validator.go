package util

import (
	"fmt"
	"time"
)

// ValidateAmount checks a transaction amount (non-negative, below a sanity cap).
func ValidateAmount(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative, got %f", amount)
	}
	if amount >= 10000000 { // cap at ten million
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateKind checks the transaction kind against the known set.
func ValidateKind(kind string) error {
	switch kind {
	case "cash", "non_cash", "receipt":
		return nil
	}
	return fmt.Errorf("unknown transaction kind %q", kind)
}

// ValidateDate checks a date string (must be YYYY-MM-DD).
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateCategory checks a category label (optional, but bounded when set).
func ValidateCategory(category string) error {
	if len(category) > 64 {
		return fmt.Errorf("category too long, max 64 characters")
	}
	return nil
}
