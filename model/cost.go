package model

// Dimension is the grouping axis for cost attribution
type Dimension string

const (
	DimensionRegion       Dimension = "region"
	DimensionInstanceType Dimension = "instanceType"
	DimensionService      Dimension = "service"
	DimensionAccount      Dimension = "account"
	DimensionJob          Dimension = "job"
)

// Dimensions lists every supported grouping axis
var Dimensions = []Dimension{
	DimensionRegion,
	DimensionInstanceType,
	DimensionService,
	DimensionAccount,
	DimensionJob,
}

// Valid reports whether d is a supported dimension
func (d Dimension) Valid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// DataSource tells callers which branch of source selection produced a response
type DataSource string

const (
	SourceLive      DataSource = "aws"
	SourceDerived   DataSource = "instance-based"
	SourceSynthetic DataSource = "mock"
)

// CostRecord is a raw grouped amount delivered by a cost source
type CostRecord struct {
	Dimension Dimension
	Value     string
	Amount    float64
	Unit      string
}

// CostBreakdown is one row of a cost-by-dimension table
type CostBreakdown struct {
	Dimension  Dimension `json:"dimension"`
	Value      string    `json:"value"`
	Amount     float64   `json:"amount"`
	Percentage float64   `json:"percentage"`
}

// CostKPI summarises spend for the current month
type CostKPI struct {
	TotalMonthly        float64 `json:"totalMonthly"`
	DailyBurn           float64 `json:"dailyBurn"`
	ProjectedMonth      float64 `json:"projectedMonth"`
	ChangeFromLastMonth float64 `json:"changeFromLastMonth"`
	ChangePercentage    float64 `json:"changePercentage"`
}

// CostQuery selects the dimension and optional scoping of a breakdown request
type CostQuery struct {
	Dimension     Dimension
	JobTag        string
	Regions       []string
	InstanceTypes []string
	Accounts      []string
}

// CostBreakdownResponse is the breakdown view handed to renderers
type CostBreakdownResponse struct {
	KPIs       CostKPI         `json:"kpis"`
	Breakdowns []CostBreakdown `json:"breakdowns"`
	Dimension  Dimension       `json:"dimension"`
	DataSource DataSource      `json:"dataSource"`
	Note       string          `json:"note,omitempty"`
}

// CostTrendPoint is the spend of a single calendar day (YYYY-MM-DD)
type CostTrendPoint struct {
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	IsAnomaly bool    `json:"isAnomaly"`
}

// AnomalyFlag is the result of z-score anomaly detection over a series
type AnomalyFlag struct {
	IsAnomaly      bool    `json:"isAnomaly"`
	AnomalyIndices []int   `json:"anomalyIndices"`
	Threshold      float64 `json:"threshold"`
	ZScore         float64 `json:"zScore"`
}

// CostTrendResponse is the daily trend view handed to renderers
type CostTrendResponse struct {
	Trend        []CostTrendPoint `json:"trend"`
	Period       string           `json:"period"`
	TotalAmount  float64          `json:"totalAmount"`
	AverageDaily float64          `json:"averageDaily"`
	Anomaly      AnomalyFlag      `json:"anomaly"`
	DataSource   DataSource       `json:"dataSource"`
}
