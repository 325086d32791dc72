package utils

import (
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderAnomalyTable lists the anomalous days of a trend
func RenderAnomalyTable(points []model.CostTrendPoint) string {
	tw := table.NewWriter()
	tw.SetTitle("Anomalous Days")
	tw.AppendHeader(table.Row{"Date", "Amount"})

	for _, p := range points {
		if !p.IsAnomaly {
			continue
		}
		tw.AppendRow(table.Row{p.Date, text.FgHiRed.Sprint(FormatMoney(p.Amount))})
	}
	if tw.Length() == 0 {
		tw.AppendRow(table.Row{text.FgGreen.Sprint("none"), "-"})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return tw.Render()
}
