package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// EstimateGrowth compares revenue between the older and newer half of a
// record set, split by count after a stable sort on OccurredAt. The split is
// count-based rather than calendar-based, so it conflates volume with time
// when transaction frequency changes; callers wanting true window-over-window
// growth should pre-filter to fixed date ranges.
func EstimateGrowth(records []Record) Growth {
	if len(records) < 2 {
		return Growth{Percent: 0, Trend: TrendStable}
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})

	mid := len(sorted) / 2
	firstRevenue := sumAmounts(sorted[:mid])
	secondRevenue := sumAmounts(sorted[mid:])

	var percent int
	switch {
	case firstRevenue.IsPositive():
		percent = roundHalfUp(secondRevenue.Sub(firstRevenue).Mul(hundred).Div(firstRevenue))
	case secondRevenue.IsPositive():
		// growth from a zero base is reported as full growth
		percent = 100
	}

	trend := TrendStable
	if percent > 0 {
		trend = TrendUp
	} else if percent < 0 {
		trend = TrendDown
	}

	return Growth{Percent: percent, Trend: trend}
}

var half = decimal.New(5, -1)

// roundHalfUp rounds halves toward positive infinity, so -12.5 becomes -12,
// not -13. The growth delta is the one signed value in this package and
// decimal.Round would pull negative halves the other way.
func roundHalfUp(d decimal.Decimal) int {
	return int(d.Add(half).Floor().IntPart())
}

func sumAmounts(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for i := range records {
		sum = sum.Add(records[i].Amount)
	}
	return sum
}
