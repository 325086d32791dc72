package preferences

import (
	"testing"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAction(t *testing.T) {
	base := model.DefaultFilterState()

	tests := []struct {
		name    string
		action  string
		args    []string
		wantErr bool
		check   func(t *testing.T, got model.FilterState)
	}{
		{
			name:   "show",
			action: model.FilterActionShow,
			check:  func(t *testing.T, got model.FilterState) { assert.Equal(t, base, got) },
		},
		{
			name:   "apply",
			action: model.FilterActionApply,
			args:   []string{model.CategoryRegion, "eu-west-1"},
			check: func(t *testing.T, got model.FilterState) {
				assert.Equal(t, []string{"eu-west-1"}, got.Values(model.CategoryRegion))
			},
		},
		{
			name:   "remove",
			action: model.FilterActionRemove,
			args:   []string{model.CategoryState, "running"},
			check:  func(t *testing.T, got model.FilterState) { assert.False(t, got.HasActive()) },
		},
		{
			name:   "clear category",
			action: model.FilterActionClear,
			args:   []string{model.CategoryState},
			check:  func(t *testing.T, got model.FilterState) { assert.Zero(t, got.ActiveCount()) },
		},
		{
			name:   "clear all",
			action: model.FilterActionClear,
			check:  func(t *testing.T, got model.FilterState) { assert.Empty(t, got.AppliedFilters) },
		},
		{
			name:   "reset",
			action: model.FilterActionReset,
			check: func(t *testing.T, got model.FilterState) {
				assert.Equal(t, []string{"running"}, got.Values(model.CategoryState))
			},
		},
		{
			name:   "toggle",
			action: model.FilterActionToggle,
			check:  func(t *testing.T, got model.FilterState) { assert.False(t, got.IsVisible) },
		},
		{name: "unknown category", action: model.FilterActionApply, args: []string{"colour", "red"}, wantErr: true},
		{name: "missing value", action: model.FilterActionApply, args: []string{model.CategoryRegion}, wantErr: true},
		{name: "unknown action", action: "explode", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyAction(base, tt.action, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestMutates(t *testing.T) {
	assert.False(t, Mutates(""))
	assert.False(t, Mutates(model.FilterActionShow))
	assert.True(t, Mutates(model.FilterActionApply))
	assert.True(t, Mutates(model.FilterActionToggle))
}
