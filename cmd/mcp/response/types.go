package response

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// ProjectInfo represents GCP project details
type ProjectInfo struct {
	ProjectID      string            `json:"project_id"`
	Name           string            `json:"name"`
	ProjectNumber  int64             `json:"project_number"`
	LifecycleState string            `json:"lifecycle_state"`
	Labels         map[string]string `json:"labels,omitempty"`
}

// AzureSubscription represents Azure subscription details
type AzureSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// KPIs summarises spend for the current month
type KPIs struct {
	TotalMonthly        float64 `json:"total_monthly"`
	DailyBurn           float64 `json:"daily_burn"`
	ProjectedMonth      float64 `json:"projected_month"`
	ChangeFromLastMonth float64 `json:"change_from_last_month"`
	ChangePercentage    float64 `json:"change_percentage"`
}

// CostGroup is the spend attributed to one dimension value
type CostGroup struct {
	Value      string  `json:"value"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// CostBreakdown represents costs grouped by a dimension
type CostBreakdown struct {
	Dimension  string      `json:"dimension"`
	KPIs       KPIs        `json:"kpis"`
	Groups     []CostGroup `json:"groups"`
	DataSource string      `json:"data_source"`
	Note       string      `json:"note,omitempty"`
}

// TrendDay is the spend of a single day
type TrendDay struct {
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	IsAnomaly bool    `json:"is_anomaly"`
}

// TrendSummary provides summary statistics for a cost trend
type TrendSummary struct {
	TotalAmount  float64  `json:"total_amount"`
	AverageDaily float64  `json:"average_daily"`
	Threshold    float64  `json:"anomaly_threshold"`
	MaxZScore    float64  `json:"max_z_score"`
	AnomalyDates []string `json:"anomaly_dates"`
}

// CostTrend represents daily spend over a period with anomaly detection
type CostTrend struct {
	Period     string       `json:"period"`
	Days       []TrendDay   `json:"days"`
	Summary    TrendSummary `json:"summary"`
	DataSource string       `json:"data_source"`
}

// Instance represents a compute instance
type Instance struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Region      string            `json:"region"`
	AccountID   string            `json:"account_id,omitempty"`
	State       string            `json:"state"`
	UptimeHours float64           `json:"uptime_hours"`
	CostPerHour float64           `json:"cost_per_hour"`
	CPUPercent  float64           `json:"cpu_percent"`
	RAMPercent  float64           `json:"ram_percent"`
	GPUPercent  float64           `json:"gpu_percent"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// InstanceList represents an instance inventory
type InstanceList struct {
	Instances  []Instance     `json:"instances"`
	Total      int            `json:"total"`
	Matched    int            `json:"matched"`
	ByCategory map[string]int `json:"matched_by_category,omitempty"`
	DataSource string         `json:"data_source"`
}

// Recommendation represents a wasteful instance and why it was flagged
type Recommendation struct {
	InstanceID   string   `json:"instance_id"`
	InstanceName string   `json:"instance_name"`
	Type         string   `json:"type"`
	Region       string   `json:"region"`
	CostPerHour  float64  `json:"cost_per_hour"`
	WasteLevel   string   `json:"waste_level"`
	WasteScore   int      `json:"waste_score"`
	Reasons      []string `json:"reasons"`
}

// WasteReport aggregates waste recommendations
type WasteReport struct {
	Recommendations []Recommendation `json:"recommendations"`
	HourlyWaste     float64          `json:"hourly_cost_of_flagged"`
	DataSource      string           `json:"data_source"`
}

// TimelinePoint is one utilization sample
type TimelinePoint struct {
	Timestamp  string  `json:"timestamp"`
	CPU        float64 `json:"cpu"`
	RAM        float64 `json:"ram"`
	GPU        float64 `json:"gpu"`
	NetworkIn  float64 `json:"network_in"`
	NetworkOut float64 `json:"network_out"`
}

// TimelineSummary summarises an instance timeline
type TimelineSummary struct {
	AvgCPU        float64 `json:"avg_cpu"`
	AvgRAM        float64 `json:"avg_ram"`
	AvgGPU        float64 `json:"avg_gpu"`
	PeakCPU       float64 `json:"peak_cpu"`
	PeakRAM       float64 `json:"peak_ram"`
	PeakGPU       float64 `json:"peak_gpu"`
	IdlePercent   float64 `json:"idle_percent"`
	SpikyBehavior bool    `json:"spiky_behavior"`
}

// Timeline represents utilization of one instance over a period
type Timeline struct {
	InstanceID   string          `json:"instance_id"`
	InstanceName string          `json:"instance_name"`
	Period       string          `json:"period"`
	Points       []TimelinePoint `json:"points"`
	Summary      TimelineSummary `json:"summary"`
	DataSource   string          `json:"data_source"`
}

// CredentialCheck represents the outcome of a credentials check
type CredentialCheck struct {
	Provider  string `json:"provider"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AccountID string `json:"account_id,omitempty"`
	Region    string `json:"region,omitempty"`
	Details   string `json:"details,omitempty"`
}

// AppliedFilter is the set of selected values of one category
type AppliedFilter struct {
	Category string   `json:"category"`
	Values   []string `json:"values"`
}

// FilterState represents the saved filter preferences
type FilterState struct {
	AppliedFilters []AppliedFilter `json:"applied_filters"`
	ActiveCount    int             `json:"active_count"`
	PanelVisible   bool            `json:"panel_visible"`
	PersistFilters bool            `json:"persist_filters"`
}

// ProviderInventory represents the inventory of a single provider
type ProviderInventory struct {
	Provider    string      `json:"provider"`
	AccountID   string      `json:"account_id,omitempty"`
	Instances   int         `json:"instances"`
	Running     int         `json:"running"`
	Critical    int         `json:"critical_waste"`
	HourlyCost  float64     `json:"running_hourly_cost"`
	MonthlyCost float64     `json:"estimated_monthly_cost"`
	ByRegion    []CostGroup `json:"by_region,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// MultiCloudInventory represents instances across all providers
type MultiCloudInventory struct {
	Providers   []ProviderInventory `json:"providers"`
	Instances   int                 `json:"total_instances"`
	MonthlyCost float64             `json:"total_estimated_monthly_cost"`
}
