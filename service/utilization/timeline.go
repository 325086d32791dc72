// Package utilization turns raw metric series into instance timelines and summarises them.
package utilization

import (
	"math/rand"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
)

const (
	idleCPUThreshold     = 10.0
	spikyVarianceCeiling = 400.0
	workHourStart        = 8
	workHourEnd          = 18
)

// Generator builds timelines. RAM, GPU and disk activity are not reported by the metrics
// sources, so they are estimated from CPU with random noise drawn from rng.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a Generator using rng for noise and now as the clock
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

func clampPct(v float64) float64 {
	return min(100, max(0, v))
}

// FromSeries converts a metrics series into data points, one per CPU sample
func (g *Generator) FromSeries(series *model.UtilizationSeries) []model.UtilizationDataPoint {
	if series == nil {
		return nil
	}

	points := make([]model.UtilizationDataPoint, 0, len(series.CPU.Timestamps))
	for i, ts := range series.CPU.Timestamps {
		cpu := series.CPU.At(i)
		ram := clampPct(cpu*0.8 + g.rng.Float64()*20)
		gpu := clampPct(cpu*0.6 + g.rng.Float64()*15)

		points = append(points, model.UtilizationDataPoint{
			Timestamp:  ts,
			CPU:        costs.Round2(cpu),
			RAM:        costs.Round2(ram),
			GPU:        costs.Round2(gpu),
			NetworkIn:  costs.Round2(series.NetworkIn.At(i)),
			NetworkOut: costs.Round2(series.NetworkOut.At(i)),
			DiskRead:   costs.Round2(g.rng.Float64() * 100 * (cpu / 100)),
			DiskWrite:  costs.Round2(g.rng.Float64() * 50 * (cpu / 100)),
		})
	}
	return points
}

// Mock produces a demonstration timeline for a period, busier during working hours
// with an occasional spike
func (g *Generator) Mock(period model.TimelinePeriod) []model.UtilizationDataPoint {
	now := g.now()
	step := period.Step()
	n := period.Points()

	points := make([]model.UtilizationDataPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		ts := now.Add(-time.Duration(i) * step)

		base := 0.3
		if h := ts.Hour(); h >= workHourStart && h <= workHourEnd {
			base = 0.7
		}
		factor := 0.3 + g.rng.Float64()*0.4
		spike := 1.0
		if g.rng.Float64() > 0.9 {
			spike = 1.5
		}

		cpu := clampPct(base * factor * spike * 100)
		ram := clampPct(base * factor * 0.8 * 100)
		gpu := clampPct(base * factor * 0.6 * 100)

		points = append(points, model.UtilizationDataPoint{
			Timestamp:  ts,
			CPU:        costs.Round2(cpu),
			RAM:        costs.Round2(ram),
			GPU:        costs.Round2(gpu),
			NetworkIn:  costs.Round2(g.rng.Float64() * 1000 * (cpu / 100)),
			NetworkOut: costs.Round2(g.rng.Float64() * 500 * (cpu / 100)),
			DiskRead:   costs.Round2(g.rng.Float64() * 100 * (cpu / 100)),
			DiskWrite:  costs.Round2(g.rng.Float64() * 50 * (cpu / 100)),
		})
	}
	return points
}

// Summarize computes averages, peaks, the share of idle samples and whether CPU usage
// swings widely. An empty timeline has a zero summary.
func Summarize(points []model.UtilizationDataPoint) model.TimelineSummary {
	if len(points) == 0 {
		return model.TimelineSummary{}
	}

	var s model.TimelineSummary
	var sumCPU, sumRAM, sumGPU float64
	idle := 0
	for i, p := range points {
		sumCPU += p.CPU
		sumRAM += p.RAM
		sumGPU += p.GPU
		if i == 0 || p.CPU > s.PeakCPU {
			s.PeakCPU = p.CPU
		}
		if i == 0 || p.RAM > s.PeakRAM {
			s.PeakRAM = p.RAM
		}
		if i == 0 || p.GPU > s.PeakGPU {
			s.PeakGPU = p.GPU
		}
		if p.CPU < idleCPUThreshold {
			idle++
		}
	}

	n := float64(len(points))
	avgCPU := sumCPU / n

	var variance float64
	for _, p := range points {
		d := p.CPU - avgCPU
		variance += d * d
	}
	variance /= n

	s.AvgCPU = costs.Round2(avgCPU)
	s.AvgRAM = costs.Round2(sumRAM / n)
	s.AvgGPU = costs.Round2(sumGPU / n)
	s.PeakCPU = costs.Round2(s.PeakCPU)
	s.PeakRAM = costs.Round2(s.PeakRAM)
	s.PeakGPU = costs.Round2(s.PeakGPU)
	s.IdleTime = costs.Round2(float64(idle) / n * 100)
	s.SpikyBehavior = variance > spikyVarianceCeiling
	return s
}

// InstanceLabel is the display name used for instances known only by ID
func InstanceLabel(instanceID string) string {
	if len(instanceID) > 8 {
		instanceID = instanceID[len(instanceID)-8:]
	}
	return "Instance " + instanceID
}
