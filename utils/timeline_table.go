package utils

import (
	"fmt"
	"strings"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func timestampLayout(period model.TimelinePeriod) string {
	if period == model.Period7d {
		return "Mon 02 Jan"
	}
	return "15:04"
}

// RenderTimeline renders the summary and the samples of an instance timeline
func RenderTimeline(timeline model.InstanceTimeline) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprintf(" ⏱   UTILIZATION %s (%s)", timeline.InstanceName, timeline.Period))
	fmt.Fprintf(&b, " Instance: %s   Source: %s\n", text.FgBlue.Sprint(timeline.InstanceID), sourceLabel(timeline.DataSource))
	fmt.Fprintln(&b, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	s := timeline.Summary
	summary := table.NewWriter()
	summary.SetTitle("Summary")
	summary.AppendHeader(table.Row{"", "CPU", "RAM", "GPU"})
	summary.AppendRow(table.Row{"Average", FormatPercent(s.AvgCPU, 2), FormatPercent(s.AvgRAM, 2), FormatPercent(s.AvgGPU, 2)})
	summary.AppendRow(table.Row{"Peak", FormatPercent(s.PeakCPU, 2), FormatPercent(s.PeakRAM, 2), FormatPercent(s.PeakGPU, 2)})
	summary.AppendSeparator()

	spiky := text.FgGreen.Sprint("no")
	if s.SpikyBehavior {
		spiky = text.FgHiRed.Sprint("yes")
	}
	summary.AppendRow(table.Row{"Idle time", FormatPercent(s.IdleTime, 2), "Spiky", spiky})
	summary.SetStyle(table.StyleRounded)
	fmt.Fprintln(&b, summary.Render())

	samples := table.NewWriter()
	samples.SetTitle("Samples")
	samples.AppendHeader(table.Row{"Time", "CPU", "RAM", "GPU", "Net In", "Net Out", "Disk R", "Disk W"})
	layout := timestampLayout(timeline.Period)
	for _, p := range timeline.DataPoints {
		cpu := FormatPercent(p.CPU, 1)
		if p.CPU < 10 {
			cpu = text.FgHiBlack.Sprint(cpu)
		} else if p.CPU > 80 {
			cpu = text.FgHiRed.Sprint(cpu)
		}
		samples.AppendRow(table.Row{
			p.Timestamp.Format(layout),
			cpu,
			FormatPercent(p.RAM, 1),
			FormatPercent(p.GPU, 1),
			fmt.Sprintf("%.0f", p.NetworkIn),
			fmt.Sprintf("%.0f", p.NetworkOut),
			fmt.Sprintf("%.1f", p.DiskRead),
			fmt.Sprintf("%.1f", p.DiskWrite),
		})
	}
	samples.SetStyle(table.StyleRounded)
	fmt.Fprintln(&b, samples.Render())
	return b.String()
}

func DrawTimeline(timeline model.InstanceTimeline) {
	fmt.Print(RenderTimeline(timeline))
}
