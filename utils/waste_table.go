package utils

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func wasteColor(level model.WasteLevel) text.Colors {
	switch level {
	case model.WasteCritical:
		return text.Colors{text.FgHiRed}
	case model.WasteWarning:
		return text.Colors{text.FgHiYellow}
	default:
		return text.Colors{text.FgGreen}
	}
}

// RenderWasteTable renders ranked recommendations, worst first
func RenderWasteTable(report model.RecommendationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprint(" 🏥  WASTE REPORT"))
	fmt.Fprintf(&b, " Source: %s\n", sourceLabel(report.DataSource))
	fmt.Fprintln(&b, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Instance", "Type", "Score", "Level", "Daily Cost", "Reasons"})

	for _, rec := range report.Recommendations {
		color := wasteColor(rec.Waste.Level)
		reasons := strings.Join(rec.Waste.Reasons, "\n")
		if reasons == "" {
			reasons = "-"
		}
		tw.AppendRow(table.Row{
			fmt.Sprintf("%s\n%s", rec.Instance.Name, text.FgHiBlack.Sprint(rec.Instance.ID)),
			rec.Instance.Type,
			color.Sprint(rec.Waste.Score),
			color.Sprint(strings.ToUpper(string(rec.Waste.Level))),
			FormatMoney(rec.Instance.CostPerHour * 24),
			reasons,
		})
		tw.AppendSeparator()
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	fmt.Fprintln(&b, tw.Render())
	return b.String()
}

func DrawWasteTable(report model.RecommendationReport) {
	fmt.Print(RenderWasteTable(report))
}
