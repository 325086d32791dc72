package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/elC0mpa/ec2-observe/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

func RenderCredentialCheck(provider string, check model.CredentialCheck) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", text.FgHiWhite.Sprintf(" 🔑  %s CREDENTIALS", strings.ToUpper(provider)))
	if !check.Success {
		fmt.Fprintf(&b, " %s %s\n", text.FgHiRed.Sprint("✗"), check.Message)
		if check.Details != "" {
			fmt.Fprintf(&b, "   %s\n", text.FgRed.Sprint(check.Details))
		}
		return b.String()
	}

	fmt.Fprintf(&b, " %s %s\n", text.FgHiGreen.Sprint("✓"), check.Message)
	fmt.Fprintf(&b, "   Account: %s\n", text.FgBlue.Sprint(check.AccountID))
	if check.Region != "" {
		fmt.Fprintf(&b, "   Region:  %s\n", check.Region)
	}
	fmt.Fprintf(&b, "   Checked: %s\n", check.Timestamp.Format(time.RFC3339))
	return b.String()
}

func DrawCredentialCheck(provider string, check model.CredentialCheck) {
	fmt.Print(RenderCredentialCheck(provider, check))
}
