package utils

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var dimensionLabels = map[model.Dimension]string{
	model.DimensionRegion:       "Region",
	model.DimensionInstanceType: "Instance Type",
	model.DimensionService:      "Service",
	model.DimensionAccount:      "Account",
	model.DimensionJob:          "Job",
}

func sourceLabel(source model.DataSource) string {
	switch source {
	case model.SourceLive:
		return text.FgHiGreen.Sprint("live billing")
	case model.SourceDerived:
		return text.FgHiYellow.Sprint("derived from inventory")
	default:
		return text.FgHiRed.Sprint("sample data")
	}
}

// RenderKPITable renders the month-to-date KPIs
func RenderKPITable(kpi model.CostKPI) string {
	tw := table.NewWriter()
	tw.SetTitle("Current Month")
	tw.AppendHeader(table.Row{"Total", "Daily Burn", "Projected (30d)", "Change", "Change %"})

	change := text.FgGreen.Sprint(FormatMoney(kpi.ChangeFromLastMonth))
	changePct := text.FgGreen.Sprint(FormatPercent(kpi.ChangePercentage, 2))
	if kpi.ChangeFromLastMonth > 0 {
		change = text.FgRed.Sprint(FormatMoney(kpi.ChangeFromLastMonth))
		changePct = text.FgRed.Sprint(FormatPercent(kpi.ChangePercentage, 2))
	}

	tw.AppendRow(table.Row{
		text.FgHiGreen.Sprint(FormatMoney(kpi.TotalMonthly)),
		FormatMoney(kpi.DailyBurn),
		FormatMoney(kpi.ProjectedMonth),
		change,
		changePct,
	})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

// RenderBreakdownTable renders breakdown rows in the order given
func RenderBreakdownTable(dimension model.Dimension, breakdowns []model.CostBreakdown) string {
	label, ok := dimensionLabels[dimension]
	if !ok {
		label = string(dimension)
	}

	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("Cost by %s", label))
	tw.AppendHeader(table.Row{label, "Amount", "Share"})

	colors := assignRankedColors(breakdowns)
	for idx, b := range breakdowns {
		tw.AppendRow(table.Row{
			rankColor(colors[idx]).Sprint(b.Value),
			FormatMoney(b.Amount),
			FormatPercent(b.Percentage, 0),
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}

// RenderCostBreakdown renders the full breakdown view: header, KPIs and rows
func RenderCostBreakdown(resp model.CostBreakdownResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprint(" 💰  COST BREAKDOWN"))
	fmt.Fprintf(&b, " Source: %s\n", sourceLabel(resp.DataSource))
	if resp.Note != "" {
		fmt.Fprintf(&b, " %s\n", text.FgYellow.Sprint(resp.Note))
	}
	fmt.Fprintln(&b, text.FgHiBlue.Sprint(" ------------------------------------------------"))
	fmt.Fprintln(&b, RenderKPITable(resp.KPIs))
	fmt.Fprintln(&b, RenderBreakdownTable(resp.Dimension, resp.Breakdowns))
	return b.String()
}

func DrawCostBreakdown(resp model.CostBreakdownResponse) {
	fmt.Print(RenderCostBreakdown(resp))
	fmt.Println(RenderBreakdownChart(resp.Breakdowns))
}
