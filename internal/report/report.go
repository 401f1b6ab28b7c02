package report

import "time"

// Build assembles the full report for one merchant from a record snapshot.
// Records with a negative amount or a zero timestamp are skipped rather than
// failing the whole build; their count is surfaced on the report. When no
// usable records remain, Build returns ErrNoData so the caller can render a
// "no data yet" state instead of misleading zeros.
//
// Build performs no I/O and keeps no state between calls, so it is safe to
// invoke concurrently for different merchants.
func Build(records []Record, now time.Time) (*Report, error) {
	usable := make([]Record, 0, len(records))
	skipped := 0
	for i := range records {
		r := records[i]
		if r.Amount.IsNegative() || r.OccurredAt.IsZero() {
			skipped++
			continue
		}
		usable = append(usable, r)
	}

	if len(usable) == 0 {
		return nil, ErrNoData
	}

	agg := Aggregate(usable)
	growth := EstimateGrowth(usable)

	return &Report{
		Summary:         agg.Summary,
		MonthlyTrends:   agg.MonthlyTrends,
		Categories:      agg.Categories,
		Growth:          growth,
		Recommendations: Recommend(agg.Summary, growth),
		GeneratedAt:     now,
		SkippedRecords:  skipped,
	}, nil
}
