package model

// Workflow names selectable from the command line
const (
	WorkflowCosts     = "costs"
	WorkflowTrend     = "trend"
	WorkflowWaste     = "waste"
	WorkflowInstances = "instances"
	WorkflowTimeline  = "timeline"
	WorkflowCheck     = "check"
	WorkflowFilters   = "filters"
)

// Filter preference actions of the filters workflow
const (
	FilterActionShow   = "show"
	FilterActionApply  = "apply"
	FilterActionRemove = "remove"
	FilterActionClear  = "clear"
	FilterActionReset  = "reset"
	FilterActionToggle = "toggle"
)

type Flags struct {
	// Common flags
	Provider  string
	Workflow  string
	ConfigDir string
	Verbose   bool

	// Workflow flags
	Dimension     string
	JobTag        string
	Period        string
	InstanceID    string
	Regions       []string
	InstanceTypes []string
	Accounts      []string
	Filters       []string
	Threshold     float64
	Samples       bool

	// Filter preference action and its arguments
	FilterAction string
	FilterArgs   []string

	// AWS-specific flags
	Region  string
	Profile string

	// GCP-specific flags
	Project        string
	BillingAccount string

	// Azure-specific flags
	Subscription string
}
