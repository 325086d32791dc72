// Package anomaly flags outliers in cost time series with a z-score test.
package anomaly

import (
	"math"

	"github.com/elC0mpa/ec2-observe/model"
)

// DefaultThreshold is the z-score above which a point is an anomaly
const DefaultThreshold = 2.0

const minSamples = 3

// Detect flags every point whose z-score strictly exceeds threshold.
// Series shorter than three points or with zero variance yield no anomalies.
func Detect(series []float64, threshold float64) model.AnomalyFlag {
	flag := model.AnomalyFlag{
		AnomalyIndices: []int{},
		Threshold:      threshold,
	}
	if len(series) < minSamples {
		return flag
	}

	n := float64(len(series))
	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range series {
		d := v - mean
		sq += d * d
	}
	stdDev := math.Sqrt(sq / n)
	if stdDev == 0 {
		return flag
	}

	for i, v := range series {
		z := math.Abs(v-mean) / stdDev
		flag.ZScore = math.Max(flag.ZScore, z)
		if z > threshold {
			flag.AnomalyIndices = append(flag.AnomalyIndices, i)
		}
	}
	flag.IsAnomaly = len(flag.AnomalyIndices) > 0

	return flag
}

// Amounts extracts the amounts of a trend in order
func Amounts(points []model.CostTrendPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Amount
	}
	return out
}

// Annotate runs Detect over a trend and returns a copy whose IsAnomaly flags include
// the detected indices
func Annotate(points []model.CostTrendPoint, threshold float64) ([]model.CostTrendPoint, model.AnomalyFlag) {
	flag := Detect(Amounts(points), threshold)

	out := make([]model.CostTrendPoint, len(points))
	copy(out, points)
	for _, idx := range flag.AnomalyIndices {
		out[idx].IsAnomaly = true
	}
	return out, flag
}
