package report

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies how a transaction was captured.
type Kind string

const (
	KindCash    Kind = "cash"
	KindNonCash Kind = "non_cash"
	KindReceipt Kind = "receipt"
)

// DefaultCategory is the bucket for records with no category label.
const DefaultCategory = "Uncategorized"

// ErrNoData is returned by Build when no usable records remain after
// filtering. Callers should show a "no data yet" state instead of a
// zeroed report.
var ErrNoData = errors.New("report: no usable records")

// Record is one merchant transaction as the engine consumes it. The host
// converts stored minor-unit amounts to decimal once, before building a
// report; the engine never touches storage.
type Record struct {
	ID          string
	Kind        Kind // unknown kinds are tolerated and simply not bucketed
	Amount      decimal.Decimal
	OccurredAt  time.Time
	Category    string
	Description string
}

// Summary holds the headline statistics for one record set.
type Summary struct {
	TotalRevenue             decimal.Decimal `json:"total_revenue"`
	TransactionCount         int             `json:"transaction_count"`
	CashCount                int             `json:"cash_count"`
	NonCashCount             int             `json:"non_cash_count"`
	ReceiptCount             int             `json:"receipt_count"`
	CashRatioPercent         int             `json:"cash_ratio_percent"`
	NonCashRatioPercent      int             `json:"non_cash_ratio_percent"`
	AverageTransactionAmount decimal.Decimal `json:"average_transaction_amount"`
}

// MonthlyTrendPoint is revenue and volume for one calendar month that has
// at least one record. PeriodKey is "YYYY-M" (no zero padding).
type MonthlyTrendPoint struct {
	PeriodKey        string          `json:"period"`
	Revenue          decimal.Decimal `json:"revenue"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoryBreakdownEntry is the share of one normalized category.
type CategoryBreakdownEntry struct {
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Count          int             `json:"count"`
	PercentOfTotal decimal.Decimal `json:"percent_of_total"`
}

// Aggregates bundles everything Aggregate derives from a record set.
type Aggregates struct {
	Summary       Summary                  `json:"summary"`
	MonthlyTrends []MonthlyTrendPoint      `json:"monthly_trends"`
	Categories    []CategoryBreakdownEntry `json:"categories"`
}

// Trend labels the direction of period-over-period revenue change.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Growth is the period-over-period revenue change.
type Growth struct {
	Percent int   `json:"percent"`
	Trend   Trend `json:"trend"`
}

// Report is the immutable bundle produced for one merchant at one point in
// time. It is a pure value; nothing mutates it after Build returns.
type Report struct {
	Summary         Summary                  `json:"summary"`
	MonthlyTrends   []MonthlyTrendPoint      `json:"monthly_trends"`
	Categories      []CategoryBreakdownEntry `json:"categories"`
	Growth          Growth                   `json:"growth"`
	Recommendations []string                 `json:"recommendations"`
	GeneratedAt     time.Time                `json:"generated_at"`

	// SkippedRecords counts input records dropped for having a negative
	// amount or missing timestamp.
	SkippedRecords int `json:"skipped_records,omitempty"`
}
