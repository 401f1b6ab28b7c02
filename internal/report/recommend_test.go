package report_test

import (
	"testing"

	"merchant-pulse/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_PriorityOrder(t *testing.T) {
	summary := report.Summary{
		TotalRevenue:     decimal.NewFromInt(5000),
		TransactionCount: 3,
		CashRatioPercent: 80,
	}
	growth := report.Growth{Percent: 5, Trend: report.TrendUp}

	recs := report.Recommend(summary, growth)

	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "digital payment")
	assert.Contains(t, recs[1], "working capital")
	assert.Contains(t, recs[2], "Record more transactions")
	for _, r := range recs {
		assert.NotContains(t, r, "expansion")
	}
}

func TestRecommend_StrongGrowth(t *testing.T) {
	summary := report.Summary{
		TotalRevenue:     decimal.NewFromInt(50000),
		TransactionCount: 120,
		CashRatioPercent: 40,
	}
	growth := report.Growth{Percent: 35, Trend: report.TrendUp}

	recs := report.Recommend(summary, growth)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "expansion")
}

func TestRecommend_ThresholdsAreExclusive(t *testing.T) {
	// Values sitting exactly on each threshold must not fire the rule.
	summary := report.Summary{
		TotalRevenue:     decimal.NewFromInt(10000),
		TransactionCount: 10,
		CashRatioPercent: 70,
	}
	growth := report.Growth{Percent: 20, Trend: report.TrendUp}

	recs := report.Recommend(summary, growth)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "healthy patterns")
}

func TestRecommend_Fallback(t *testing.T) {
	summary := report.Summary{
		TotalRevenue:     decimal.NewFromInt(80000),
		TransactionCount: 300,
		CashRatioPercent: 55,
	}
	growth := report.Growth{Percent: 10, Trend: report.TrendUp}

	recs := report.Recommend(summary, growth)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "healthy patterns")
}

func TestRecommend_Deterministic(t *testing.T) {
	summary := report.Summary{
		TotalRevenue:     decimal.NewFromInt(5000),
		TransactionCount: 3,
		CashRatioPercent: 80,
	}
	growth := report.Growth{Percent: 30, Trend: report.TrendUp}

	first := report.Recommend(summary, growth)
	second := report.Recommend(summary, growth)

	assert.Equal(t, first, second)
}
