package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"webpify/internal/report"
)

func RenderSummary(rows []report.Row) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderReport is the summary table followed by the failed files, if any.
func RenderReport(r report.Report) string {
	var sb strings.Builder
	if r.Success {
		sb.WriteString(successStyle.Render("Conversion complete."))
	} else {
		sb.WriteString(warnStyle.Render("Conversion finished with errors."))
	}
	sb.WriteString("\n")
	sb.WriteString(RenderSummary(r.Rows()))

	if len(r.Failed) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(warnStyle.Render(report.FailureNote))
		for _, path := range r.Failed {
			sb.WriteString("\n  ")
			sb.WriteString(dimStyle.Render("-"))
			sb.WriteString(" ")
			sb.WriteString(labelStyle.Render(path))
		}
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(ColorConverted).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorFailed).Bold(true)
)
