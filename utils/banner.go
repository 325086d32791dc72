package utils

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

func DrawBanner() {
	banner := figure.NewColorFigure("ec2-observe", "", "cyan", true)
	banner.Print()
	fmt.Println(text.FgHiBlue.Sprint(" compute cost & utilization observability"))
	fmt.Println()
}
