package report

import "github.com/shopspring/decimal"

// Recommendation rule thresholds, in the merchant's base currency unit.
var lowRevenueThreshold = decimal.NewFromInt(10000)

const (
	highCashRatioPercent = 70
	lowTransactionCount  = 10
	strongGrowthPercent  = 20
)

// Recommend evaluates the advisory rules against a freshly computed summary
// and growth result. Rules fire independently, in fixed priority order, and
// the same inputs always produce the same list. When nothing fires, a single
// healthy-pattern entry is returned so the list is never empty.
func Recommend(summary Summary, growth Growth) []string {
	var recs []string

	if summary.CashRatioPercent > highCashRatioPercent {
		recs = append(recs, "Consider increasing digital payment options to reduce cash handling risks")
	}
	if summary.TotalRevenue.LessThan(lowRevenueThreshold) {
		recs = append(recs, "Explore small business loan options to boost your working capital")
	}
	if summary.TransactionCount < lowTransactionCount {
		recs = append(recs, "Record more transactions to get better insights into your business patterns")
	}
	if growth.Percent > strongGrowthPercent {
		recs = append(recs, "Your business is growing well! Consider expansion opportunities")
	}

	if len(recs) == 0 {
		recs = append(recs, "Your business shows healthy patterns. Keep up the good work!")
	}
	return recs
}
