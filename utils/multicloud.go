package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/waste"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderMultiCloudInventory renders the per-provider inventory summary followed by the
// error of each provider that could not be listed
func RenderMultiCloudInventory(results []model.ProviderInventoryResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprint(" ☁  MULTI-CLOUD INVENTORY"))
	fmt.Fprintln(&b, text.FgHiBlue.Sprint(" ------------------------------------------------"))
	fmt.Fprintln(&b, renderInventorySummaryTable(results))

	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(&b, "\n %s %s: %s\n",
				text.FgHiRed.Sprint("⚠"),
				text.FgHiYellow.Sprint(strings.ToUpper(result.Provider)),
				text.FgRed.Sprint(result.Error.Error()))
		}
	}
	return b.String()
}

func renderInventorySummaryTable(results []model.ProviderInventoryResult) string {
	tw := table.NewWriter()
	tw.SetTitle("Inventory by Provider")
	tw.AppendHeader(table.Row{"Provider", "Account/Project ID", "Instances", "Running", "Critical Waste", "Est. Monthly"})
	tw.SetStyle(table.StyleRounded)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter},
		{Number: 5, Align: text.AlignCenter},
		{Number: 6, Align: text.AlignRight},
	})

	var totalInstances, totalRunning, totalCritical int
	var totalMonthly float64

	for _, result := range results {
		if result.Error != nil {
			tw.AppendRow(table.Row{
				text.FgHiYellow.Sprint(strings.ToUpper(result.Provider)),
				text.FgRed.Sprint("Error"),
				"-",
				"-",
				"-",
				text.FgRed.Sprint("Failed to retrieve"),
			})
			continue
		}

		running, critical := 0, 0
		for _, i := range result.Instances {
			if i.State == model.StateRunning {
				running++
			}
			if waste.ScoreInstance(i).Level == model.WasteCritical {
				critical++
			}
		}
		monthly := costs.Total(result.Breakdown)

		totalInstances += len(result.Instances)
		totalRunning += running
		totalCritical += critical
		totalMonthly += monthly

		tw.AppendRow(table.Row{
			text.FgHiCyan.Sprint(strings.ToUpper(result.Provider)),
			result.AccountID,
			len(result.Instances),
			running,
			formatWasteCount(critical),
			FormatMoney(monthly),
		})
	}

	if len(results) > 1 {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{
			text.FgHiWhite.Sprint("TOTAL"),
			"",
			totalInstances,
			totalRunning,
			formatWasteCount(totalCritical),
			FormatMoney(totalMonthly),
		})
	}

	return tw.Render()
}

func formatWasteCount(count int) string {
	if count == 0 {
		return text.FgGreen.Sprint("0")
	}
	return text.FgHiRed.Sprintf("%d", count)
}

// SortProviderInventoryResults sorts results by provider for consistent display
func SortProviderInventoryResults(results []model.ProviderInventoryResult) {
	providerOrder := map[string]int{"aws": 1, "gcp": 2, "azure": 3}
	sort.SliceStable(results, func(i, j int) bool {
		return providerOrder[results[i].Provider] < providerOrder[results[j].Provider]
	})
}

func DrawMultiCloudInventory(results []model.ProviderInventoryResult) {
	SortProviderInventoryResults(results)
	fmt.Print(RenderMultiCloudInventory(results))
}
