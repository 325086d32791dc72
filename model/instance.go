package model

import "time"

// InstanceState is the lifecycle state of a compute instance
type InstanceState string

const (
	StateRunning    InstanceState = "running"
	StateStopped    InstanceState = "stopped"
	StateTerminated InstanceState = "terminated"
)

// Instance is a compute instance as reported by an inventory source
type Instance struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Region      string            `json:"region"`
	AccountID   string            `json:"accountId,omitempty"`
	UptimeHrs   float64           `json:"uptimeHrs"`
	CostPerHour float64           `json:"costPerHour"`
	CPUUtilPct  float64           `json:"cpuUtilPct"`
	RAMUtilPct  float64           `json:"ramUtilPct"`
	GPUUtilPct  float64           `json:"gpuUtilPct"`
	State       InstanceState     `json:"state"`
	LaunchTime  time.Time         `json:"launchTime"`
	Tags        map[string]string `json:"tags"`
}

// Tag returns the value of a tag and whether it is set to a non-empty value
func (i Instance) Tag(key string) (string, bool) {
	v, ok := i.Tags[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Account resolves the owning account: the explicit field first, then the accountId tag
func (i Instance) Account() (string, bool) {
	if i.AccountID != "" {
		return i.AccountID, true
	}
	return i.Tag("accountId")
}

// InstanceInventory is the instance list exposed to callers
type InstanceInventory struct {
	Instances     []Instance `json:"instances"`
	TotalCount    int        `json:"totalCount"`
	Regions       []string   `json:"regions"`
	InstanceTypes []string   `json:"instanceTypes"`
	DataSource    DataSource `json:"dataSource"`
	Note          string     `json:"note,omitempty"`
}

// WasteLevel classifies how wasteful an instance is
type WasteLevel string

const (
	WasteGood     WasteLevel = "good"
	WasteWarning  WasteLevel = "warning"
	WasteCritical WasteLevel = "critical"
)

// WasteScoreResult is the derived waste rating of an instance
type WasteScoreResult struct {
	Level   WasteLevel `json:"level"`
	Score   int        `json:"score"`
	Reasons []string   `json:"reasons"`
}

// Recommendation pairs an instance with its waste rating
type Recommendation struct {
	Instance Instance         `json:"instance"`
	Waste    WasteScoreResult `json:"waste"`
}

// RecommendationReport is the ranked waste view handed to renderers
type RecommendationReport struct {
	Recommendations []Recommendation `json:"recommendations"`
	DataSource      DataSource       `json:"dataSource"`
}
