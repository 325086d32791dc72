package preferences

import (
	"fmt"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/filters"
)

// ApplyAction returns the state produced by a filter preference action
func ApplyAction(state model.FilterState, action string, args []string) (model.FilterState, error) {
	switch action {
	case "", model.FilterActionShow:
		return state, nil
	case model.FilterActionApply, model.FilterActionRemove:
		if len(args) != 2 {
			return state, fmt.Errorf("filters %s needs a category and a value", action)
		}
		if !filters.KnownCategory(args[0]) {
			return state, fmt.Errorf("unknown filter category %q", args[0])
		}
		if action == model.FilterActionApply {
			return state.Apply(args[0], args[1]), nil
		}
		return state.Remove(args[0], args[1]), nil
	case model.FilterActionClear:
		if len(args) == 0 {
			return state.ClearAll(), nil
		}
		return state.ClearCategory(args[0]), nil
	case model.FilterActionReset:
		return state.ResetToDefaults(), nil
	case model.FilterActionToggle:
		return state.ToggleVisibility(), nil
	}
	return state, fmt.Errorf("unknown filters action %q", action)
}

// Mutates reports whether an action changes the state
func Mutates(action string) bool {
	return action != "" && action != model.FilterActionShow
}
