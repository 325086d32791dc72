// Package costs groups raw cost records into breakdowns, computes KPIs and reconciles
// data arriving from live, instance-derived and synthetic sources.
package costs

import (
	"errors"
	"sort"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
)

// ErrUnknownDimension is returned when a caller asks for an unsupported grouping axis
var ErrUnknownDimension = errors.New("unknown cost dimension")

const (
	defaultRegion       = "us-east-1"
	defaultInstanceType = "t3.medium"
	serviceLabel        = "EC2"
	unknownAccount      = "unknown-account"
	unassignedJob       = "Unassigned"
)

// jobTagKeys are consulted in order to attribute an instance to a job
var jobTagKeys = []string{"JobId", "Project", "Workflow"}

// ParseDimension validates a dimension name, defaulting to region when empty
func ParseDimension(s string) (model.Dimension, error) {
	if s == "" {
		return model.DimensionRegion, nil
	}
	d := model.Dimension(s)
	if !d.Valid() {
		return "", ErrUnknownDimension
	}
	return d, nil
}

// KeyFor extracts the group key of an instance for a dimension
func KeyFor(i model.Instance, dimension model.Dimension) (string, bool) {
	switch dimension {
	case model.DimensionRegion:
		if i.Region == "" {
			return defaultRegion, true
		}
		return i.Region, true
	case model.DimensionInstanceType:
		if i.Type == "" {
			return defaultInstanceType, true
		}
		return i.Type, true
	case model.DimensionService:
		return serviceLabel, true
	case model.DimensionAccount:
		if account, ok := i.Account(); ok {
			return account, true
		}
		return unknownAccount, true
	case model.DimensionJob:
		for _, key := range jobTagKeys {
			if v, ok := i.Tag(key); ok {
				return v, true
			}
		}
		return unassignedJob, true
	}
	return "", false
}

// grouping sums amounts per key and remembers the order keys were first seen
type grouping struct {
	keys []string
	sums map[string]float64
}

func newGrouping() *grouping {
	return &grouping{sums: make(map[string]float64)}
}

func (g *grouping) add(key string, amount float64) {
	if _, seen := g.sums[key]; !seen {
		g.keys = append(g.keys, key)
	}
	g.sums[key] += amount
}

func (g *grouping) entries(dimension model.Dimension, round func(float64) float64) []model.CostBreakdown {
	out := make([]model.CostBreakdown, 0, len(g.keys))
	for _, key := range g.keys {
		out = append(out, model.CostBreakdown{
			Dimension: dimension,
			Value:     key,
			Amount:    round(g.sums[key]),
		})
	}
	return out
}

// withPercentages assigns each entry its share of the total and orders entries by
// amount, highest first. Shares are rounded independently and may not sum to 100.
func withPercentages(entries []model.CostBreakdown) []model.CostBreakdown {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	for i := range entries {
		if total > 0 {
			entries[i].Percentage = roundHalfUp(entries[i].Amount / total * 100)
		} else {
			entries[i].Percentage = 0
		}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Amount > entries[b].Amount
	})
	return entries
}

func identity(x float64) float64 { return x }

// Aggregate groups records by value and returns the breakdown for a dimension
func Aggregate(records []model.CostRecord, dimension model.Dimension) []model.CostBreakdown {
	g := newGrouping()
	for _, r := range records {
		g.add(r.Value, r.Amount)
	}
	return withPercentages(g.entries(dimension, identity))
}

// FromInstances estimates a breakdown from the inventory using list prices. Group amounts
// are rounded to whole units before shares are computed. An empty inventory yields the
// synthetic breakdown.
func FromInstances(instances []model.Instance, dimension model.Dimension) []model.CostBreakdown {
	if len(instances) == 0 {
		return SyntheticBreakdown(dimension)
	}

	g := newGrouping()
	for _, i := range instances {
		key, ok := KeyFor(i, dimension)
		if !ok {
			continue
		}
		cost := MonthlyBaseCost(i.Type)
		if dimension == model.DimensionRegion {
			cost *= RegionMultiplier(key)
		}
		g.add(key, cost)
	}
	return withPercentages(g.entries(dimension, roundHalfUp))
}

// Total sums the amounts of a breakdown
func Total(entries []model.CostBreakdown) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

// DaysInMonth returns the number of days of the month containing t
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// KPIs derives burn rate and projection from the month-to-date total. The projection
// always assumes a 30-day month. Month-over-month change is not computed here.
func KPIs(total float64, periodEnd time.Time) model.CostKPI {
	dailyBurn := total / float64(DaysInMonth(periodEnd))
	return model.CostKPI{
		TotalMonthly:   total,
		DailyBurn:      Round2(dailyBurn),
		ProjectedMonth: Round2(dailyBurn * 30),
	}
}

// ChangePercentage is the relative change from previous to current, 0 when previous is 0
func ChangePercentage(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// FilterInstances narrows an inventory to the regions, types and accounts of a query.
// Empty query lists do not restrict.
func FilterInstances(instances []model.Instance, q model.CostQuery) []model.Instance {
	out := make([]model.Instance, 0, len(instances))
	for _, i := range instances {
		if len(q.Regions) > 0 && !contains(q.Regions, i.Region) {
			continue
		}
		if len(q.InstanceTypes) > 0 && !contains(q.InstanceTypes, i.Type) {
			continue
		}
		if len(q.Accounts) > 0 {
			account, _ := i.Account()
			if !contains(q.Accounts, account) {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
