package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func stateColor(state model.InstanceState) text.Colors {
	switch state {
	case model.StateRunning:
		return text.Colors{text.FgGreen}
	case model.StateStopped:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed}
	}
}

func RenderInstanceTable(instances []model.Instance) string {
	tw := table.NewWriter()
	tw.SetTitle("Instances")
	tw.AppendHeader(table.Row{"ID", "Name", "Type", "Region", "State", "CPU", "RAM", "GPU", "Uptime (h)", "Cost/h"})

	for _, i := range instances {
		tw.AppendRow(table.Row{
			i.ID,
			i.Name,
			i.Type,
			i.Region,
			stateColor(i.State).Sprint(i.State),
			FormatPercent(i.CPUUtilPct, 0),
			FormatPercent(i.RAMUtilPct, 0),
			FormatPercent(i.GPUUtilPct, 0),
			fmt.Sprintf("%.0f", i.UptimeHrs),
			FormatMoney(i.CostPerHour),
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
		{Number: 10, Align: text.AlignRight},
	})
	return tw.Render()
}

// RenderFilteredInstances renders the faceted instance view: summary, options and rows
func RenderFilteredInstances(view model.FilteredInstances, showCounts bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprint(" 🖥   INSTANCES"))
	fmt.Fprintf(&b, " Source: %s\n", sourceLabel(view.DataSource))
	fmt.Fprintf(&b, " Showing %s of %d instances\n",
		text.FgHiGreen.Sprint(view.Summary.FilteredInstances), view.Summary.TotalInstances)

	categories := make([]string, 0, len(view.Summary.FilterBreakdown))
	for category := range view.Summary.FilterBreakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(&b, "   %s: %d selected\n", category, view.Summary.FilterBreakdown[category])
	}
	fmt.Fprintln(&b, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if showCounts {
		fmt.Fprintln(&b, RenderFilterOptions(view.Options))
	}
	fmt.Fprintln(&b, RenderInstanceTable(view.Instances))
	return b.String()
}

// RenderFilterOptions renders the options of each category with their counts
func RenderFilterOptions(options map[string][]model.FilterOption) string {
	categories := make([]string, 0, len(options))
	for category := range options {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	tw := table.NewWriter()
	tw.SetTitle("Filter Options")
	tw.AppendHeader(table.Row{"Category", "Options"})
	for _, category := range categories {
		labels := make([]string, 0, len(options[category]))
		for _, o := range options[category] {
			labels = append(labels, fmt.Sprintf("%s (%d)", o.Label, o.Count))
		}
		tw.AppendRow(table.Row{category, strings.Join(labels, ", ")})
	}
	tw.SetStyle(table.StyleRounded)
	return tw.Render()
}

func DrawFilteredInstances(view model.FilteredInstances, showCounts bool) {
	fmt.Print(RenderFilteredInstances(view, showCounts))
}
