// Package filters narrows an instance inventory by faceted filters and counts the options
// each facet offers.
package filters

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/waste"
)

const unknownTagValue = "unknown"

// Apply keeps the instances that match every filter. Values within a filter are
// alternatives. Filters on unknown categories match everything.
func Apply(instances []model.Instance, filters []model.AppliedFilter) []model.Instance {
	if len(filters) == 0 {
		return instances
	}

	out := make([]model.Instance, 0, len(instances))
	for _, i := range instances {
		if matchesAll(i, filters) {
			out = append(out, i)
		}
	}
	return out
}

func matchesAll(i model.Instance, filters []model.AppliedFilter) bool {
	for _, f := range filters {
		if !matches(i, f) {
			return false
		}
	}
	return true
}

func matches(i model.Instance, f model.AppliedFilter) bool {
	switch f.CategoryID {
	case model.CategoryRegion:
		return contains(f.Values, i.Region)
	case model.CategoryInstanceType:
		return contains(f.Values, i.Type)
	case model.CategoryState:
		return contains(f.Values, string(i.State))
	case model.CategoryWasteLevel:
		return contains(f.Values, string(waste.ScoreInstance(i).Level))
	case model.CategoryEnvironment:
		return tagMatches(i, "Environment", f.Values)
	case model.CategoryService:
		return tagMatches(i, "Service", f.Values)
	default:
		return true
	}
}

// tagMatches compares a tag case-insensitively. A missing tag never matches.
func tagMatches(i model.Instance, key string, values []string) bool {
	tag, ok := i.Tag(key)
	if !ok {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(tag, v) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// without drops the filter of one category
func without(filters []model.AppliedFilter, categoryID string) []model.AppliedFilter {
	out := make([]model.AppliedFilter, 0, len(filters))
	for _, f := range filters {
		if f.CategoryID != categoryID {
			out = append(out, f)
		}
	}
	return out
}

// optionKey returns the facet value an instance contributes to a category
func optionKey(i model.Instance, categoryID string) (string, bool) {
	switch categoryID {
	case model.CategoryRegion:
		return i.Region, true
	case model.CategoryInstanceType:
		return i.Type, true
	case model.CategoryState:
		return string(i.State), true
	case model.CategoryWasteLevel:
		return string(waste.ScoreInstance(i).Level), true
	case model.CategoryEnvironment:
		return lowerTag(i, "Environment"), true
	case model.CategoryService:
		return lowerTag(i, "Service"), true
	}
	return "", false
}

func lowerTag(i model.Instance, key string) string {
	if v, ok := i.Tag(key); ok {
		return strings.ToLower(v)
	}
	return unknownTagValue
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func labelFor(categoryID, value string) string {
	switch categoryID {
	case model.CategoryState, model.CategoryWasteLevel, model.CategoryEnvironment, model.CategoryService:
		return capitalize(value)
	}
	return value
}

// OptionsWithCounts lists the values of a category present in the inventory once every
// other category's filter is applied, in the order they are first seen
func OptionsWithCounts(instances []model.Instance, filters []model.AppliedFilter, categoryID string) []model.FilterOption {
	base := Apply(instances, without(filters, categoryID))

	var order []string
	counts := make(map[string]int)
	for _, i := range base {
		key, ok := optionKey(i, categoryID)
		if !ok {
			return []model.FilterOption{}
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	options := make([]model.FilterOption, 0, len(order))
	for _, value := range order {
		options = append(options, model.FilterOption{
			Value: value,
			Label: labelFor(categoryID, value),
			Count: counts[value],
		})
	}
	return options
}

// Summary reports the inventory size, the filtered size and how many values are selected
// per category
func Summary(instances []model.Instance, filters []model.AppliedFilter) model.FilterSummary {
	breakdown := make(map[string]int, len(filters))
	for _, f := range filters {
		breakdown[f.CategoryID] = len(f.Values)
	}
	return model.FilterSummary{
		TotalInstances:    len(instances),
		FilteredInstances: len(Apply(instances, filters)),
		FilterBreakdown:   breakdown,
	}
}

// Facets computes the filtered instances together with the options of every category
func Facets(instances []model.Instance, filters []model.AppliedFilter) model.FilteredInstances {
	options := make(map[string][]model.FilterOption, len(categoryIDs))
	for _, id := range categoryIDs {
		options[id] = OptionsWithCounts(instances, filters, id)
	}
	return model.FilteredInstances{
		Instances: Apply(instances, filters),
		Options:   options,
		Summary:   Summary(instances, filters),
	}
}
