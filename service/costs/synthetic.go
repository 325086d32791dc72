package costs

import (
	"math/rand"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
)

const (
	trendBase        = 1500.0
	trendSpikeFactor = 3.5
	trendDropFactor  = 0.3
)

var syntheticBreakdowns = map[model.Dimension][]model.CostBreakdown{
	model.DimensionRegion: {
		{Value: "us-east-1", Amount: 45000, Percentage: 45},
		{Value: "us-west-2", Amount: 30000, Percentage: 30},
		{Value: "eu-west-1", Amount: 15000, Percentage: 15},
		{Value: "ap-southeast-1", Amount: 10000, Percentage: 10},
	},
	model.DimensionInstanceType: {
		{Value: "t3.medium", Amount: 25000, Percentage: 35},
		{Value: "m5.large", Amount: 20000, Percentage: 28},
		{Value: "r5.xlarge", Amount: 15000, Percentage: 21},
		{Value: "c5.2xlarge", Amount: 10000, Percentage: 14},
		{Value: "p3.2xlarge", Amount: 5000, Percentage: 2},
	},
	model.DimensionService: {
		{Value: "EC2", Amount: 60000, Percentage: 60},
		{Value: "EBS", Amount: 20000, Percentage: 20},
		{Value: "Data Transfer", Amount: 15000, Percentage: 15},
		{Value: "Monitoring", Amount: 5000, Percentage: 5},
	},
	model.DimensionAccount: {
		{Value: "1111-2222-3333", Amount: 42000, Percentage: 42},
		{Value: "4444-5555-6666", Amount: 31000, Percentage: 31},
		{Value: "7777-8888-9999", Amount: 19000, Percentage: 19},
		{Value: "0000-1111-2222", Amount: 8000, Percentage: 8},
	},
	model.DimensionJob: {
		{Value: "alignment", Amount: 28000, Percentage: 28},
		{Value: "variant-calling", Amount: 24000, Percentage: 24},
		{Value: "assembly", Amount: 20000, Percentage: 20},
		{Value: "qc", Amount: 15000, Percentage: 15},
		{Value: "other", Amount: 13000, Percentage: 13},
	},
}

// SyntheticBreakdown returns the demonstration breakdown for a dimension, empty when the
// dimension is unknown
func SyntheticBreakdown(dimension model.Dimension) []model.CostBreakdown {
	fixed := syntheticBreakdowns[dimension]
	out := make([]model.CostBreakdown, 0, len(fixed))
	for _, b := range fixed {
		b.Dimension = dimension
		out = append(out, b)
	}
	return out
}

// SyntheticKPIs returns the demonstration KPIs
func SyntheticKPIs() model.CostKPI {
	return model.CostKPI{
		TotalMonthly:        100000,
		DailyBurn:           3333.33,
		ProjectedMonth:      100000,
		ChangeFromLastMonth: 5000,
		ChangePercentage:    5.26,
	}
}

// SampleInstances is the demonstration fleet used when no inventory is reachable
func SampleInstances() []model.Instance {
	return []model.Instance{
		{
			ID: "i-1234567890abcdef0", Name: "web-server-prod-01", Type: "t3.large",
			Region: "us-east-1", AccountID: "1111-2222-3333",
			UptimeHrs: 720, CostPerHour: 0.0832, CPUUtilPct: 15, RAMUtilPct: 25,
			State:      model.StateRunning,
			LaunchTime: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Tags:       map[string]string{"Environment": "production", "Service": "web-server", "JobId": "alignment"},
		},
		{
			ID: "i-0987654321fedcba0", Name: "db-server-prod-01", Type: "r5.xlarge",
			Region: "us-east-1", AccountID: "1111-2222-3333",
			UptimeHrs: 1440, CostPerHour: 0.25, CPUUtilPct: 45, RAMUtilPct: 60,
			State:      model.StateRunning,
			LaunchTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Tags:       map[string]string{"Environment": "production", "Service": "database", "JobId": "variant-calling"},
		},
		{
			ID: "i-abcdef1234567890", Name: "ml-training-dev-01", Type: "p3.2xlarge",
			Region: "us-west-2", AccountID: "4444-5555-6666",
			UptimeHrs: 48, CostPerHour: 3.06, CPUUtilPct: 85, RAMUtilPct: 90, GPUUtilPct: 95,
			State:      model.StateRunning,
			LaunchTime: time.Date(2024, 8, 20, 8, 0, 0, 0, time.UTC),
			Tags:       map[string]string{"Environment": "development", "Service": "ml-training", "JobId": "assembly"},
		},
		{
			ID: "i-1111111111111111", Name: "staging-server", Type: "t3.medium",
			Region: "eu-west-1", AccountID: "7777-8888-9999",
			UptimeHrs: 168, CostPerHour: 0.0416, CPUUtilPct: 30, RAMUtilPct: 40,
			State:      model.StateStopped,
			LaunchTime: time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC),
			Tags:       map[string]string{"Environment": "staging", "Service": "web-server", "JobId": "qc"},
		},
		{
			ID: "i-2222222222222222", Name: "monitoring-server", Type: "t3.small",
			Region: "ap-southeast-1", AccountID: "0000-1111-2222",
			UptimeHrs: 2160, CostPerHour: 0.0208, CPUUtilPct: 10, RAMUtilPct: 15,
			State:      model.StateRunning,
			LaunchTime: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			Tags:       map[string]string{"Environment": "production", "Service": "monitoring", "JobId": "other"},
		},
	}
}

// Generator produces demonstration cost trends
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a Generator drawing noise from rng and dates from now
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Trend returns days daily points ending today. The fourth-to-last day carries a spike
// and the day before today a drop, both marked as anomalies.
func (g *Generator) Trend(days int) []model.CostTrendPoint {
	today := g.now().UTC()
	points := make([]model.CostTrendPoint, 0, max(days, 0))

	for i := days - 1; i >= 0; i-- {
		factor := 1 + (g.rng.Float64()-0.5)*0.3
		amount := trendBase * factor

		var anomalous bool
		switch i {
		case 3:
			amount *= trendSpikeFactor
			anomalous = true
		case 1:
			amount *= trendDropFactor
			anomalous = true
		default:
			anomalous = amount > trendBase*2.5 || amount < trendBase*0.4
		}

		points = append(points, model.CostTrendPoint{
			Date:      today.AddDate(0, 0, -i).Format(time.DateOnly),
			Amount:    roundHalfUp(amount),
			IsAnomaly: anomalous,
		})
	}
	return points
}
