// Package waste rates how likely an instance is to be over-provisioned for its cost.
package waste

import (
	"sort"

	"github.com/elC0mpa/ec2-observe/model"
)

// Input is the utilization, uptime and price of an instance.
// Values are used as given; callers sanitise them.
type Input struct {
	CPU         float64
	RAM         float64
	GPU         float64
	UptimeHrs   float64
	CostPerHour float64
}

const (
	criticalScore = 70
	warningScore  = 40
)

// Score computes the 0-100 waste score, its level and the reasons that contributed to it
func Score(in Input) model.WasteScoreResult {
	score := 0
	reasons := []string{}

	avgUtil := (in.CPU + in.RAM + in.GPU) / 3
	switch {
	case avgUtil < 20:
		score += 40
		reasons = append(reasons, "very low utilization")
	case avgUtil < 50:
		score += 20
		reasons = append(reasons, "low utilization")
	}

	switch {
	case in.UptimeHrs > 720:
		score += 30
		reasons = append(reasons, "long-running (>30 days)")
	case in.UptimeHrs > 168:
		score += 15
		reasons = append(reasons, "medium uptime (7-30 days)")
	}

	dailyCost := in.CostPerHour * 24
	switch {
	case dailyCost > 100:
		score += 30
		reasons = append(reasons, "high daily cost (>$100/day)")
	case dailyCost > 50:
		score += 15
		reasons = append(reasons, "medium daily cost ($50-100/day)")
	}

	score = min(100, max(0, score))

	level := model.WasteGood
	switch {
	case score >= criticalScore:
		level = model.WasteCritical
	case score >= warningScore:
		level = model.WasteWarning
	}

	return model.WasteScoreResult{Level: level, Score: score, Reasons: reasons}
}

// ScoreInstance scores an inventory record
func ScoreInstance(i model.Instance) model.WasteScoreResult {
	return Score(Input{
		CPU:         i.CPUUtilPct,
		RAM:         i.RAMUtilPct,
		GPU:         i.GPUUtilPct,
		UptimeHrs:   i.UptimeHrs,
		CostPerHour: i.CostPerHour,
	})
}

// Rank scores every instance and orders them worst first, keeping inventory order on ties
func Rank(instances []model.Instance) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(instances))
	for _, i := range instances {
		recs = append(recs, model.Recommendation{Instance: i, Waste: ScoreInstance(i)})
	}
	sort.SliceStable(recs, func(a, b int) bool {
		return recs[a].Waste.Score > recs[b].Waste.Score
	})
	return recs
}
