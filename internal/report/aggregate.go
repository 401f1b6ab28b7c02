package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate derives summary statistics, the monthly trend series and the
// category breakdown from a record snapshot. It is deterministic for a given
// input and never mutates it; an empty slice yields zeroed aggregates.
func Aggregate(records []Record) Aggregates {
	agg := Aggregates{
		MonthlyTrends: []MonthlyTrendPoint{},
		Categories:    []CategoryBreakdownEntry{},
	}

	total := decimal.Zero
	cashRevenue := decimal.Zero
	nonCashRevenue := decimal.Zero

	type monthBucket struct {
		year    int
		month   int
		revenue decimal.Decimal
		count   int
	}
	months := make(map[string]*monthBucket)

	type categoryBucket struct {
		name   string
		amount decimal.Decimal
		count  int
	}
	categories := make(map[string]*categoryBucket)
	var categoryOrder []string // first-encountered order, keeps sort ties stable

	for i := range records {
		r := &records[i]

		total = total.Add(r.Amount)
		agg.Summary.TransactionCount++

		switch r.Kind {
		case KindCash:
			agg.Summary.CashCount++
			cashRevenue = cashRevenue.Add(r.Amount)
		case KindNonCash:
			agg.Summary.NonCashCount++
			nonCashRevenue = nonCashRevenue.Add(r.Amount)
		case KindReceipt:
			agg.Summary.ReceiptCount++
		}

		key := fmt.Sprintf("%d-%d", r.OccurredAt.Year(), int(r.OccurredAt.Month()))
		mb, ok := months[key]
		if !ok {
			mb = &monthBucket{
				year:    r.OccurredAt.Year(),
				month:   int(r.OccurredAt.Month()),
				revenue: decimal.Zero,
			}
			months[key] = mb
		}
		mb.revenue = mb.revenue.Add(r.Amount)
		mb.count++

		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = DefaultCategory
		}
		cb, ok := categories[category]
		if !ok {
			cb = &categoryBucket{name: category, amount: decimal.Zero}
			categories[category] = cb
			categoryOrder = append(categoryOrder, category)
		}
		cb.amount = cb.amount.Add(r.Amount)
		cb.count++
	}

	agg.Summary.TotalRevenue = total
	agg.Summary.CashRatioPercent = ratioPercent(cashRevenue, total)
	agg.Summary.NonCashRatioPercent = ratioPercent(nonCashRevenue, total)
	// rounding both ratios independently can push the pair past 100 when
	// each lands on an exact .5; clamp the non-cash side to the complement
	if agg.Summary.CashRatioPercent+agg.Summary.NonCashRatioPercent > 100 {
		agg.Summary.NonCashRatioPercent = 100 - agg.Summary.CashRatioPercent
	}
	if agg.Summary.TransactionCount > 0 {
		agg.Summary.AverageTransactionAmount = total.Div(decimal.NewFromInt(int64(agg.Summary.TransactionCount)))
	} else {
		agg.Summary.AverageTransactionAmount = decimal.Zero
	}

	for _, mb := range months {
		agg.MonthlyTrends = append(agg.MonthlyTrends, MonthlyTrendPoint{
			PeriodKey:        fmt.Sprintf("%d-%d", mb.year, mb.month),
			Revenue:          mb.revenue,
			TransactionCount: mb.count,
		})
	}
	sort.Slice(agg.MonthlyTrends, func(i, j int) bool {
		a, b := months[agg.MonthlyTrends[i].PeriodKey], months[agg.MonthlyTrends[j].PeriodKey]
		if a.year != b.year {
			return a.year < b.year
		}
		return a.month < b.month
	})

	for _, name := range categoryOrder {
		cb := categories[name]
		percent := decimal.Zero
		if total.IsPositive() {
			percent = cb.amount.Mul(hundred).Div(total)
		}
		agg.Categories = append(agg.Categories, CategoryBreakdownEntry{
			Category:       cb.name,
			Amount:         cb.amount,
			Count:          cb.count,
			PercentOfTotal: percent,
		})
	}
	sort.SliceStable(agg.Categories, func(i, j int) bool {
		return agg.Categories[i].Amount.GreaterThan(agg.Categories[j].Amount)
	})

	return agg
}

// ratioPercent returns part/total as a whole percent, rounded half up.
// A zero total means a zero ratio, never a division.
func ratioPercent(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(part.Mul(hundred).Div(total).Round(0).IntPart())
}
