package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stateWith(filters ...AppliedFilter) FilterState {
	s := DefaultFilterState()
	s.AppliedFilters = filters
	return s
}

func TestFilterStateApply(t *testing.T) {
	tests := []struct {
		name     string
		state    FilterState
		category string
		value    string
		want     []AppliedFilter
	}{
		{
			name:     "new category",
			state:    stateWith(),
			category: CategoryRegion,
			value:    "us-east-1",
			want:     []AppliedFilter{{CategoryID: CategoryRegion, Values: []string{"us-east-1"}}},
		},
		{
			name:     "existing category",
			state:    stateWith(AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1"}}),
			category: CategoryRegion,
			value:    "eu-west-1",
			want:     []AppliedFilter{{CategoryID: CategoryRegion, Values: []string{"us-east-1", "eu-west-1"}}},
		},
		{
			name:     "duplicate value is a no-op",
			state:    stateWith(AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1"}}),
			category: CategoryRegion,
			value:    "us-east-1",
			want:     []AppliedFilter{{CategoryID: CategoryRegion, Values: []string{"us-east-1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Apply(tt.category, tt.value)
			assert.Equal(t, tt.want, got.AppliedFilters)
		})
	}
}

func TestFilterStateRemove(t *testing.T) {
	tests := []struct {
		name  string
		state FilterState
		value string
		want  []AppliedFilter
	}{
		{
			name: "one of several values",
			state: stateWith(
				AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1", "eu-west-1", "ap-south-1"}},
				AppliedFilter{CategoryID: CategoryState, Values: []string{"running"}},
			),
			value: "eu-west-1",
			want: []AppliedFilter{
				{CategoryID: CategoryRegion, Values: []string{"us-east-1", "ap-south-1"}},
				{CategoryID: CategoryState, Values: []string{"running"}},
			},
		},
		{
			name: "last value prunes the category",
			state: stateWith(
				AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1"}},
				AppliedFilter{CategoryID: CategoryState, Values: []string{"running"}},
			),
			value: "us-east-1",
			want:  []AppliedFilter{{CategoryID: CategoryState, Values: []string{"running"}}},
		},
		{
			name:  "missing value",
			state: stateWith(AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1"}}),
			value: "eu-west-1",
			want:  []AppliedFilter{{CategoryID: CategoryRegion, Values: []string{"us-east-1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Remove(CategoryRegion, tt.value)
			assert.Equal(t, tt.want, got.AppliedFilters)
		})
	}
}

func TestFilterStateLeavesReceiverUntouched(t *testing.T) {
	original := stateWith(AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1", "eu-west-1"}})
	snapshot := []AppliedFilter{{CategoryID: CategoryRegion, Values: []string{"us-east-1", "eu-west-1"}}}

	mutations := map[string]func(FilterState) FilterState{
		"apply existing category": func(s FilterState) FilterState { return s.Apply(CategoryRegion, "ap-south-1") },
		"apply new category":      func(s FilterState) FilterState { return s.Apply(CategoryState, "running") },
		"remove":                  func(s FilterState) FilterState { return s.Remove(CategoryRegion, "us-east-1") },
		"clear category":          func(s FilterState) FilterState { return s.ClearCategory(CategoryRegion) },
		"clear all":               func(s FilterState) FilterState { return s.ClearAll() },
		"reset":                   func(s FilterState) FilterState { return s.ResetToDefaults() },
		"toggle":                  func(s FilterState) FilterState { return s.ToggleVisibility() },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			got := mutate(original)

			assert.Equal(t, snapshot, original.AppliedFilters)
			assert.True(t, original.IsVisible)
			if len(got.AppliedFilters) > 0 && len(got.AppliedFilters[0].Values) > 0 {
				got.AppliedFilters[0].Values[0] = "mutated"
				assert.Equal(t, snapshot, original.AppliedFilters)
			}
		})
	}
}

func TestFilterStateResetToDefaults(t *testing.T) {
	tests := []struct {
		name     string
		defaults DefaultFilters
		auto     bool
		want     []AppliedFilter
	}{
		{
			name:     "custom defaults",
			defaults: DefaultFilters{State: "stopped", WasteLevel: "critical", Service: "batch"},
			auto:     true,
			want: []AppliedFilter{
				{CategoryID: CategoryState, Values: []string{"stopped"}},
				{CategoryID: CategoryWasteLevel, Values: []string{"critical"}},
				{CategoryID: CategoryService, Values: []string{"batch"}},
			},
		},
		{
			name:     "no defaults set",
			defaults: DefaultFilters{},
			auto:     true,
			want:     []AppliedFilter{{CategoryID: CategoryState, Values: []string{"running"}}},
		},
		{
			name:     "auto apply disabled ignores defaults",
			defaults: DefaultFilters{State: "stopped", Environment: "prod"},
			auto:     false,
			want:     []AppliedFilter{{CategoryID: CategoryState, Values: []string{"running"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateWith(AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1"}})
			s.DefaultFilters = tt.defaults
			s.Behavior.AutoApplyDefaults = tt.auto

			got := s.ResetToDefaults()

			assert.Equal(t, tt.want, got.AppliedFilters)
			assert.Equal(t, tt.defaults, got.DefaultFilters)
		})
	}
}

func TestFilterStateWithDefaults(t *testing.T) {
	s := DefaultFilterState()
	s.DefaultFilters = DefaultFilters{State: "running", Environment: "staging"}

	got := s.WithDefaults(DefaultFilters{WasteLevel: "warning", Environment: "prod"})

	assert.Equal(t, DefaultFilters{State: "running", WasteLevel: "warning", Environment: "prod"}, got.DefaultFilters)
	assert.Equal(t, DefaultFilters{State: "running", Environment: "staging"}, s.DefaultFilters)
}

func TestFilterStateClear(t *testing.T) {
	s := stateWith(
		AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1"}},
		AppliedFilter{CategoryID: CategoryState, Values: []string{"running", "stopped"}},
	)

	assert.Equal(t, []AppliedFilter{{CategoryID: CategoryState, Values: []string{"running", "stopped"}}},
		s.ClearCategory(CategoryRegion).AppliedFilters)
	assert.Empty(t, s.ClearAll().AppliedFilters)
	assert.NotNil(t, s.ClearAll().AppliedFilters)
}

func TestFilterStateQueries(t *testing.T) {
	s := stateWith(
		AppliedFilter{CategoryID: CategoryRegion, Values: []string{"us-east-1", "eu-west-1"}},
		AppliedFilter{CategoryID: CategoryState, Values: []string{"running"}},
	)

	assert.Equal(t, 3, s.ActiveCount())
	assert.True(t, s.HasActive())
	assert.True(t, s.IsApplied(CategoryRegion, "eu-west-1"))
	assert.False(t, s.IsApplied(CategoryRegion, "ap-south-1"))
	assert.Equal(t, []string{}, s.Values(CategoryService))

	empty := s.ClearAll()
	assert.Zero(t, empty.ActiveCount())
	assert.False(t, empty.HasActive())
}

func TestFilterStateToggleVisibility(t *testing.T) {
	s := DefaultFilterState()

	hidden := s.ToggleVisibility()

	assert.False(t, hidden.IsVisible)
	assert.True(t, hidden.ToggleVisibility().IsVisible)
}
