package costs

import (
	"errors"
	"math"
	"sort"

	"github.com/elC0mpa/ec2-observe/model"
)

// ErrUnknownPeriod is returned for trend periods other than 7d, 30d or 90d
var ErrUnknownPeriod = errors.New("unknown trend period")

// Trend periods accepted by the CLI and agent tools
const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
)

// ParsePeriod validates a trend period, defaulting to 30d when empty
func ParsePeriod(s string) (string, error) {
	switch s {
	case "":
		return Period30d, nil
	case Period7d, Period30d, Period90d:
		return s, nil
	}
	return "", ErrUnknownPeriod
}

// PeriodDays maps a period to its length in days. Unrecognised periods mean 90 days.
func PeriodDays(period string) int {
	switch period {
	case Period7d:
		return 7
	case Period30d:
		return 30
	default:
		return 90
	}
}

// mergePoint combines two observations of the same day. A zero amount defers to the
// other side, otherwise the larger amount wins.
func mergePoint(existing, other model.CostTrendPoint) model.CostTrendPoint {
	amount := math.Max(existing.Amount, other.Amount)
	switch {
	case existing.Amount == 0:
		amount = other.Amount
	case other.Amount == 0:
		amount = existing.Amount
	}
	return model.CostTrendPoint{
		Date:      existing.Date,
		Amount:    Round2(amount),
		IsAnomaly: existing.IsAnomaly || other.IsAnomaly,
	}
}

// MergeTrend reconciles two daily series keyed by calendar date. Dates seen once are kept
// as they are. The result is ordered by date and, when window is positive, limited to
// the most recent window days.
func MergeTrend(primary, secondary []model.CostTrendPoint, window int) []model.CostTrendPoint {
	byDate := make(map[string]model.CostTrendPoint, len(primary)+len(secondary))
	for _, series := range [][]model.CostTrendPoint{primary, secondary} {
		for _, p := range series {
			if existing, ok := byDate[p.Date]; ok {
				byDate[p.Date] = mergePoint(existing, p)
				continue
			}
			byDate[p.Date] = p
		}
	}

	merged := make([]model.CostTrendPoint, 0, len(byDate))
	for _, p := range byDate {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(a, b int) bool {
		return merged[a].Date < merged[b].Date
	})

	if window > 0 && len(merged) > window {
		merged = merged[len(merged)-window:]
	}
	return merged
}

// MergeBreakdowns keeps the primary entries and appends the secondary ones unchanged
func MergeBreakdowns(primary, secondary []model.CostBreakdown) []model.CostBreakdown {
	out := make([]model.CostBreakdown, 0, len(primary)+len(secondary))
	out = append(out, primary...)
	return append(out, secondary...)
}

// SelectSource picks the highest-fidelity source that has data
func SelectSource(liveGroups []model.CostRecord, instances []model.Instance) model.DataSource {
	switch {
	case len(liveGroups) > 0:
		return model.SourceLive
	case len(instances) > 0:
		return model.SourceDerived
	default:
		return model.SourceSynthetic
	}
}

// SummarizeTrend returns the total and the daily average of a trend, both to 2dp
func SummarizeTrend(points []model.CostTrendPoint) (total, averageDaily float64) {
	for _, p := range points {
		total += p.Amount
	}
	if len(points) > 0 {
		averageDaily = total / float64(len(points))
	}
	return Round2(total), Round2(averageDaily)
}
