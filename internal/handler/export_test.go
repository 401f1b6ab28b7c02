package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"merchant-pulse/internal/models"
	"merchant-pulse/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestReportRows(t *testing.T) {
	rep := &report.Report{
		Summary: report.Summary{
			TotalRevenue:             decimal.NewFromInt(1500),
			TransactionCount:         10,
			CashRatioPercent:         60,
			NonCashRatioPercent:      40,
			AverageTransactionAmount: decimal.NewFromInt(150),
		},
		MonthlyTrends: []report.MonthlyTrendPoint{
			{PeriodKey: "2025-5", Revenue: decimal.NewFromInt(700), TransactionCount: 4},
			{PeriodKey: "2025-6", Revenue: decimal.NewFromInt(800), TransactionCount: 6},
		},
		Categories: []report.CategoryBreakdownEntry{
			{Category: "Food", Amount: decimal.NewFromInt(900), Count: 6, PercentOfTotal: decimal.NewFromInt(60)},
			{Category: "Retail", Amount: decimal.NewFromInt(600), Count: 4, PercentOfTotal: decimal.NewFromInt(40)},
		},
		Growth:          report.Growth{Percent: 14, Trend: report.TrendUp},
		Recommendations: []string{"Your business shows healthy patterns. Keep up the good work!"},
		GeneratedAt:     time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC),
	}

	rows := reportRows("Corner Shop", rep)

	require.Equal(t, []string{"Business Report", "Corner Shop", ""}, rows[0])
	require.Equal(t, []string{"Total Revenue", "1500.00", ""}, rows[3])
	require.Equal(t, []string{"Transaction Count", "10", ""}, rows[4])
	require.Equal(t, []string{"Growth (%)", "14", "up"}, rows[8])

	joined := make([]string, 0, len(rows))
	for _, row := range rows {
		joined = append(joined, strings.Join(row, "|"))
	}
	all := strings.Join(joined, "\n")
	require.Contains(t, all, "2025-5|700.00|4")
	require.Contains(t, all, "Food|900.00|60")
	require.Contains(t, all, "healthy patterns")
}

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	merchant := newTestMerchant(t, db)
	r := newTestRouter(db, merchant)

	seedRecord(t, db, merchant.ID, models.KindCash, 150000, "Food", time.Now().AddDate(0, 0, -1))

	w := doJSON(r, http.MethodGet, "/api/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.Bytes()
	// UTF-8 BOM prefix
	require.True(t, len(body) > 3)
	require.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])

	content := string(body[3:])
	require.Contains(t, content, "Business Report,Corner Shop")
	require.Contains(t, content, "Total Revenue,1500.00")
	require.Contains(t, content, "Food")
}

func TestExportCSVNoData(t *testing.T) {
	db := newTestDB(t)
	merchant := newTestMerchant(t, db)
	r := newTestRouter(db, merchant)

	w := doJSON(r, http.MethodGet, "/api/export/csv", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportXLSX(t *testing.T) {
	db := newTestDB(t)
	merchant := newTestMerchant(t, db)
	r := newTestRouter(db, merchant)

	seedRecord(t, db, merchant.ID, models.KindNonCash, 25000, "Retail", time.Now().AddDate(0, 0, -2))

	w := doJSON(r, http.MethodGet, "/api/export/xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx is a zip archive
	require.True(t, w.Body.Len() > 4)
	require.Equal(t, "PK", string(w.Body.Bytes()[:2]))
}
