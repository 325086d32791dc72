package utils

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderFilterState renders the saved filter selection and panel settings
func RenderFilterState(state model.FilterState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprint(" 🔎  SAVED FILTERS"))
	visibility := "hidden"
	if state.IsVisible {
		visibility = "visible"
	}
	fmt.Fprintf(&b, " Panel: %s   Active values: %d\n", visibility, state.ActiveCount())

	applied := table.NewWriter()
	applied.SetTitle("Applied")
	applied.AppendHeader(table.Row{"Category", "Values"})
	for _, f := range state.AppliedFilters {
		name := f.CategoryID
		if state.Behavior.HighlightActiveFilters {
			name = text.FgHiCyan.Sprint(name)
		}
		applied.AppendRow(table.Row{name, strings.Join(f.Values, ", ")})
	}
	if !state.HasActive() {
		applied.AppendRow(table.Row{"-", "none"})
	}
	applied.SetStyle(table.StyleRounded)
	fmt.Fprintln(&b, applied.Render())

	d := state.DefaultFilters
	defaults := table.NewWriter()
	defaults.SetTitle("Defaults")
	defaults.AppendHeader(table.Row{"State", "Waste Level", "Environment", "Service"})
	defaults.AppendRow(table.Row{orDash(d.State), orDash(d.WasteLevel), orDash(d.Environment), orDash(d.Service)})
	defaults.SetStyle(table.StyleRounded)
	fmt.Fprintln(&b, defaults.Render())
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func DrawFilterState(state model.FilterState) {
	fmt.Print(RenderFilterState(state))
}
