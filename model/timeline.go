package model

import (
	"fmt"
	"time"
)

// TimelinePeriod is the window of a utilization timeline
type TimelinePeriod string

const (
	Period1h  TimelinePeriod = "1h"
	Period24h TimelinePeriod = "24h"
	Period7d  TimelinePeriod = "7d"
)

// ParseTimelinePeriod validates a period, defaulting to 24h when empty
func ParseTimelinePeriod(s string) (TimelinePeriod, error) {
	switch TimelinePeriod(s) {
	case "":
		return Period24h, nil
	case Period1h, Period24h, Period7d:
		return TimelinePeriod(s), nil
	}
	return "", fmt.Errorf("unknown timeline period %q", s)
}

// Step is the sampling interval of the period
func (p TimelinePeriod) Step() time.Duration {
	switch p {
	case Period1h:
		return 5 * time.Minute
	case Period7d:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// Points is the number of samples the period covers
func (p TimelinePeriod) Points() int {
	switch p {
	case Period1h:
		return 12
	case Period7d:
		return 7
	default:
		return 24
	}
}

// Span is the total duration covered by the period
func (p TimelinePeriod) Span() time.Duration {
	return p.Step() * time.Duration(p.Points())
}

// MetricSeries holds raw samples of one metric in ascending time order
type MetricSeries struct {
	Timestamps []time.Time
	Values     []float64
}

// At returns the sample at index i, or 0 when absent
func (m MetricSeries) At(i int) float64 {
	if i < 0 || i >= len(m.Values) {
		return 0
	}
	return m.Values[i]
}

// UtilizationSeries is what a metrics source returns for one instance
type UtilizationSeries struct {
	CPU        MetricSeries
	NetworkIn  MetricSeries
	NetworkOut MetricSeries
}

// UtilizationDataPoint is one sample of an instance timeline
type UtilizationDataPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	CPU        float64   `json:"cpu"`
	RAM        float64   `json:"ram"`
	GPU        float64   `json:"gpu"`
	NetworkIn  float64   `json:"networkIn"`
	NetworkOut float64   `json:"networkOut"`
	DiskRead   float64   `json:"diskRead"`
	DiskWrite  float64   `json:"diskWrite"`
}

// TimelineSummary aggregates a timeline
type TimelineSummary struct {
	AvgCPU        float64 `json:"avgCpu"`
	AvgRAM        float64 `json:"avgRam"`
	AvgGPU        float64 `json:"avgGpu"`
	PeakCPU       float64 `json:"peakCpu"`
	PeakRAM       float64 `json:"peakRam"`
	PeakGPU       float64 `json:"peakGpu"`
	IdleTime      float64 `json:"idleTime"`
	SpikyBehavior bool    `json:"spikyBehavior"`
}

// InstanceTimeline is the utilization view of one instance
type InstanceTimeline struct {
	InstanceID   string                 `json:"instanceId"`
	InstanceName string                 `json:"instanceName"`
	Period       TimelinePeriod         `json:"period"`
	DataPoints   []UtilizationDataPoint `json:"dataPoints"`
	Summary      TimelineSummary        `json:"summary"`
	DataSource   DataSource             `json:"dataSource"`
}
