package model

// Filter category identifiers
const (
	CategoryRegion       = "region"
	CategoryInstanceType = "instanceType"
	CategoryState        = "state"
	CategoryWasteLevel   = "wasteLevel"
	CategoryEnvironment  = "environment"
	CategoryService      = "service"
)

// AppliedFilter is the set of values selected within one category
type AppliedFilter struct {
	CategoryID string   `json:"categoryId" yaml:"category_id"`
	Values     []string `json:"values" yaml:"values"`
}

// FilterOption is a selectable value of a category
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterCategory describes a facet offered to the user
type FilterCategory struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Options     []FilterOption `json:"options"`
	MultiSelect bool           `json:"multiSelect"`
	Searchable  bool           `json:"searchable"`
}

// FilterSummary reports how much of the inventory survives the filters
type FilterSummary struct {
	TotalInstances    int            `json:"totalInstances"`
	FilteredInstances int            `json:"filteredInstances"`
	FilterBreakdown   map[string]int `json:"filterBreakdown"`
}

// FilteredInstances is the faceted instance view
type FilteredInstances struct {
	Instances  []Instance                `json:"instances"`
	Options    map[string][]FilterOption `json:"options"`
	Summary    FilterSummary             `json:"summary"`
	DataSource DataSource                `json:"dataSource"`
}

// DefaultFilters are the single values applied on reset, one per category
type DefaultFilters struct {
	State       string `json:"state,omitempty" yaml:"state,omitempty"`
	WasteLevel  string `json:"wasteLevel,omitempty" yaml:"waste_level,omitempty"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Service     string `json:"service,omitempty" yaml:"service,omitempty"`
}

// FilterBehavior holds the user's filter panel settings
type FilterBehavior struct {
	AutoApplyDefaults          bool `json:"autoApplyDefaults" yaml:"auto_apply_defaults"`
	DefaultPanelVisibility     bool `json:"defaultPanelVisibility" yaml:"default_panel_visibility"`
	PersistFilters             bool `json:"persistFilters" yaml:"persist_filters"`
	ShowFilterCounts           bool `json:"showFilterCounts" yaml:"show_filter_counts"`
	HighlightActiveFilters     bool `json:"highlightActiveFilters" yaml:"highlight_active_filters"`
	EnableQuickReset           bool `json:"enableQuickReset" yaml:"enable_quick_reset"`
	MaxVisibleFilters          int  `json:"maxVisibleFilters" yaml:"max_visible_filters"`
	FilterUpdateDelay          int  `json:"filterUpdateDelay" yaml:"filter_update_delay"`
	EnableExperimentalFeatures bool `json:"enableExperimentalFeatures" yaml:"enable_experimental_features"`
}

// FilterState is the user's filter selection and settings.
// Every mutating method returns a new value and leaves the receiver untouched.
type FilterState struct {
	AppliedFilters []AppliedFilter `json:"appliedFilters" yaml:"applied_filters"`
	IsVisible      bool            `json:"isVisible" yaml:"is_visible"`
	DefaultFilters DefaultFilters  `json:"defaultFilters" yaml:"default_filters"`
	Behavior       FilterBehavior  `json:"filterBehavior" yaml:"filter_behavior"`
}

func runningOnly() []AppliedFilter {
	return []AppliedFilter{{CategoryID: CategoryState, Values: []string{string(StateRunning)}}}
}

// DefaultFilterBehavior returns the stock panel settings
func DefaultFilterBehavior() FilterBehavior {
	return FilterBehavior{
		AutoApplyDefaults:          true,
		DefaultPanelVisibility:     true,
		PersistFilters:             true,
		ShowFilterCounts:           true,
		HighlightActiveFilters:     true,
		EnableQuickReset:           true,
		MaxVisibleFilters:          5,
		FilterUpdateDelay:          300,
		EnableExperimentalFeatures: false,
	}
}

// DefaultFilterState shows running instances with the stock settings
func DefaultFilterState() FilterState {
	return FilterState{
		AppliedFilters: runningOnly(),
		IsVisible:      true,
		DefaultFilters: DefaultFilters{State: string(StateRunning)},
		Behavior:       DefaultFilterBehavior(),
	}
}

func (s FilterState) cloneFilters() []AppliedFilter {
	out := make([]AppliedFilter, 0, len(s.AppliedFilters))
	for _, f := range s.AppliedFilters {
		values := make([]string, len(f.Values))
		copy(values, f.Values)
		out = append(out, AppliedFilter{CategoryID: f.CategoryID, Values: values})
	}
	return out
}

// Apply adds value to a category, creating the category if needed
func (s FilterState) Apply(categoryID, value string) FilterState {
	filters := s.cloneFilters()
	for i, f := range filters {
		if f.CategoryID != categoryID {
			continue
		}
		for _, v := range f.Values {
			if v == value {
				s.AppliedFilters = filters
				return s
			}
		}
		filters[i].Values = append(filters[i].Values, value)
		s.AppliedFilters = filters
		return s
	}
	s.AppliedFilters = append(filters, AppliedFilter{CategoryID: categoryID, Values: []string{value}})
	return s
}

// Remove drops value from a category and prunes categories left empty
func (s FilterState) Remove(categoryID, value string) FilterState {
	filters := make([]AppliedFilter, 0, len(s.AppliedFilters))
	for _, f := range s.cloneFilters() {
		if f.CategoryID == categoryID {
			kept := f.Values[:0]
			for _, v := range f.Values {
				if v != value {
					kept = append(kept, v)
				}
			}
			f.Values = kept
		}
		if len(f.Values) > 0 {
			filters = append(filters, f)
		}
	}
	s.AppliedFilters = filters
	return s
}

// ClearCategory removes every value of a category
func (s FilterState) ClearCategory(categoryID string) FilterState {
	filters := make([]AppliedFilter, 0, len(s.AppliedFilters))
	for _, f := range s.cloneFilters() {
		if f.CategoryID != categoryID {
			filters = append(filters, f)
		}
	}
	s.AppliedFilters = filters
	return s
}

// ClearAll removes every applied filter
func (s FilterState) ClearAll() FilterState {
	s.AppliedFilters = []AppliedFilter{}
	return s
}

// ResetToDefaults applies the configured defaults, or running-only when none are set
// or auto-apply is disabled
func (s FilterState) ResetToDefaults() FilterState {
	if !s.Behavior.AutoApplyDefaults {
		s.AppliedFilters = runningOnly()
		return s
	}

	var filters []AppliedFilter
	d := s.DefaultFilters
	for _, pair := range []struct{ category, value string }{
		{CategoryState, d.State},
		{CategoryWasteLevel, d.WasteLevel},
		{CategoryEnvironment, d.Environment},
		{CategoryService, d.Service},
	} {
		if pair.value != "" {
			filters = append(filters, AppliedFilter{CategoryID: pair.category, Values: []string{pair.value}})
		}
	}
	if len(filters) == 0 {
		filters = runningOnly()
	}
	s.AppliedFilters = filters
	return s
}

// ToggleVisibility flips the panel visibility
func (s FilterState) ToggleVisibility() FilterState {
	s.IsVisible = !s.IsVisible
	s.AppliedFilters = s.cloneFilters()
	return s
}

// WithDefaults overlays the non-empty fields of d onto the current defaults
func (s FilterState) WithDefaults(d DefaultFilters) FilterState {
	if d.State != "" {
		s.DefaultFilters.State = d.State
	}
	if d.WasteLevel != "" {
		s.DefaultFilters.WasteLevel = d.WasteLevel
	}
	if d.Environment != "" {
		s.DefaultFilters.Environment = d.Environment
	}
	if d.Service != "" {
		s.DefaultFilters.Service = d.Service
	}
	s.AppliedFilters = s.cloneFilters()
	return s
}

// WithBehavior replaces the panel settings
func (s FilterState) WithBehavior(b FilterBehavior) FilterState {
	s.Behavior = b
	s.AppliedFilters = s.cloneFilters()
	return s
}

// ActiveCount is the number of selected values across all categories
func (s FilterState) ActiveCount() int {
	total := 0
	for _, f := range s.AppliedFilters {
		total += len(f.Values)
	}
	return total
}

// Values returns the selected values of a category
func (s FilterState) Values(categoryID string) []string {
	for _, f := range s.AppliedFilters {
		if f.CategoryID == categoryID {
			return f.Values
		}
	}
	return []string{}
}

// IsApplied reports whether value is selected in a category
func (s FilterState) IsApplied(categoryID, value string) bool {
	for _, v := range s.Values(categoryID) {
		if v == value {
			return true
		}
	}
	return false
}

// HasActive reports whether any category has a selected value
func (s FilterState) HasActive() bool {
	for _, f := range s.AppliedFilters {
		if len(f.Values) > 0 {
			return true
		}
	}
	return false
}
