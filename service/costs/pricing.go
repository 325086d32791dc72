package costs

// Hourly on-demand rates in USD, used to price inventory records
var hourlyRates = map[string]float64{
	"t3.micro":    0.0104,
	"t3.small":    0.0208,
	"t3.medium":   0.0416,
	"t3.large":    0.0832,
	"t3.xlarge":   0.1664,
	"m5.large":    0.096,
	"m5.xlarge":   0.192,
	"m5.2xlarge":  0.384,
	"r5.large":    0.126,
	"r5.xlarge":   0.252,
	"r5.2xlarge":  0.504,
	"c5.large":    0.085,
	"c5.xlarge":   0.17,
	"c5.2xlarge":  0.34,
	"p3.2xlarge":  3.06,
	"g4dn.xlarge": 0.526,
}

const defaultHourlyRate = 0.1

// Simplified monthly cost per instance type, used for instance-derived breakdowns
var monthlyBaseCosts = map[string]float64{
	"t3.micro":    8.5,
	"t3.small":    17,
	"t3.medium":   34,
	"t3.large":    68,
	"m5.large":    96,
	"m5.xlarge":   192,
	"m5.2xlarge":  384,
	"r5.large":    126,
	"r5.xlarge":   252,
	"r5.2xlarge":  504,
	"c5.large":    85,
	"c5.xlarge":   170,
	"c5.2xlarge":  340,
	"p3.2xlarge":  3060,
	"g4dn.xlarge": 526,
}

const defaultMonthlyBaseCost = 34

var regionMultipliers = map[string]float64{
	"us-east-1":      1.0,
	"us-west-2":      1.05,
	"eu-west-1":      1.12,
	"ap-southeast-1": 1.15,
	"eu-north-1":     1.08,
}

// HourlyRate returns the on-demand hourly price of an instance type
func HourlyRate(instanceType string) float64 {
	if rate, ok := hourlyRates[instanceType]; ok {
		return rate
	}
	return defaultHourlyRate
}

// MonthlyBaseCost returns the simplified monthly cost of an instance type.
// Unknown types are priced like a t3.medium.
func MonthlyBaseCost(instanceType string) float64 {
	if cost, ok := monthlyBaseCosts[instanceType]; ok {
		return cost
	}
	return defaultMonthlyBaseCost
}

// RegionMultiplier returns the price factor of a region relative to us-east-1
func RegionMultiplier(region string) float64 {
	if m, ok := regionMultipliers[region]; ok {
		return m
	}
	return 1.0
}
