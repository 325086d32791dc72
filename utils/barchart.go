package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"

	ColorAnomaly = ColorRank1
	ColorNormal  = ColorRank5
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

var rankTextColors = map[string]text.Colors{
	ColorRank1: {text.FgHiRed},
	ColorRank2: {text.FgRed},
	ColorRank3: {text.FgHiYellow},
	ColorRank4: {text.FgHiGreen},
	ColorRank5: {text.FgGreen},
	ColorRank6: {text.FgGreen},
}

func rankColor(hex string) text.Colors {
	return rankTextColors[hex]
}

// RenderTrendChart draws one bar per day, anomalous days in red
func RenderTrendChart(resp model.CostTrendResponse) string {
	var b strings.Builder

	anomalies := 0
	for _, p := range resp.Trend {
		if p.IsAnomaly {
			anomalies++
		}
	}

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprintf(" 📈  COST TREND (%s)", resp.Period))
	fmt.Fprintf(&b, " Source: %s\n", sourceLabel(resp.DataSource))
	fmt.Fprintf(&b, " Total: %s   Daily average: %s   Anomalous days: %s\n",
		text.FgHiGreen.Sprint(FormatMoney(resp.TotalAmount)),
		FormatMoney(resp.AverageDaily),
		text.FgHiRed.Sprint(anomalies))
	if resp.Anomaly.IsAnomaly {
		fmt.Fprintf(&b, " Max z-score: %.2f (threshold %.2f)\n", resp.Anomaly.ZScore, resp.Anomaly.Threshold)
	}
	fmt.Fprintln(&b, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	if len(resp.Trend) == 0 {
		return b.String()
	}

	bc := barchart.New(130, 20)
	for _, p := range resp.Trend {
		color := ColorNormal
		if p.IsAnomaly {
			color = ColorAnomaly
		}
		bc.Push(barchart.BarData{
			Label: dayLabel(p.Date),
			Values: []barchart.BarValue{
				{
					Name:  p.Date,
					Value: p.Amount,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
				},
			},
		})
	}
	bc.Draw()

	fmt.Fprintln(&b, lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
	return b.String()
}

func DrawTrendChart(resp model.CostTrendResponse) {
	fmt.Print(RenderTrendChart(resp))
	fmt.Println(RenderAnomalyTable(resp.Trend))
}

func dayLabel(date string) string {
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return parsed.Format("02")
}

// RenderBreakdownChart draws one bar per breakdown row, coloured by rank
func RenderBreakdownChart(breakdowns []model.CostBreakdown) string {
	if len(breakdowns) == 0 {
		return ""
	}

	bc := barchart.New(130, 15)
	colors := assignRankedColors(breakdowns)
	for idx, entry := range breakdowns {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%s: %s", entry.Value, FormatMoney(entry.Amount)),
			Values: []barchart.BarValue{
				{
					Name:  entry.Value,
					Value: entry.Amount,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(colors[idx])),
				},
			},
		})
	}
	bc.Draw()

	return lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View()))
}

// assignRankedColors colours the six largest entries from red to green; the rest stay blank
func assignRankedColors(entries []model.CostBreakdown) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type costWithIndex struct {
		index int
		value float64
	}

	costsToSort := make([]costWithIndex, len(entries))
	for i, entry := range entries {
		costsToSort[i] = costWithIndex{
			index: i,
			value: entry.Amount,
		}
	}

	sort.SliceStable(costsToSort, func(i, j int) bool {
		return costsToSort[i].value > costsToSort[j].value
	})

	resultColors := make([]string, len(entries))
	for rank, sortedCost := range costsToSort {
		if rank < len(palette) {
			resultColors[sortedCost.index] = palette[rank]
		}
	}

	return resultColors
}
