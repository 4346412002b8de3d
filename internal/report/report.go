// Package report turns a finished run into the figures shown to the user.
package report

import (
	"fmt"
	"strings"

	"webpify/internal/processor"
)

const bytesPerMB = 1024 * 1024

// Report is a display-ready view of a processor.Result.
type Report struct {
	Success          bool
	Converted        int
	Skipped          int
	Unprocessed      int
	OriginalMB       float64
	WebPMB           float64
	SavedMB          float64
	ReductionPercent float64
	ElapsedSeconds   float64
	Failed           []string
	OutputDir        string
}

type Row struct {
	Label string
	Value string
}

func Build(res processor.Result, outputDir string) Report {
	r := Report{
		Success:        res.Success,
		Converted:      res.Converted,
		Skipped:        res.Skipped,
		Unprocessed:    res.Unprocessed,
		OriginalMB:     float64(res.TotalOriginalSize) / bytesPerMB,
		WebPMB:         float64(res.TotalWebPSize) / bytesPerMB,
		SavedMB:        float64(res.SpaceSaved()) / bytesPerMB,
		ElapsedSeconds: res.ElapsedSeconds(),
		Failed:         append([]string(nil), res.Failed...),
		OutputDir:      outputDir,
	}
	if res.TotalOriginalSize > 0 {
		r.ReductionPercent = float64(res.SpaceSaved()) / float64(res.TotalOriginalSize) * 100
	}
	return r
}

func (r Report) Rows() []Row {
	rows := []Row{
		{Label: "Files converted", Value: fmt.Sprintf("%d", r.Converted)},
		{Label: "Files skipped", Value: fmt.Sprintf("%d", r.Skipped)},
		{Label: "Files failed", Value: fmt.Sprintf("%d", len(r.Failed))},
	}
	if r.Unprocessed > 0 {
		rows = append(rows, Row{Label: "Files not started", Value: fmt.Sprintf("%d", r.Unprocessed)})
	}
	rows = append(rows,
		Row{Label: "Original size", Value: fmt.Sprintf("%.2f MB", r.OriginalMB)},
		Row{Label: "WebP size", Value: fmt.Sprintf("%.2f MB", r.WebPMB)},
		Row{Label: "Space saved", Value: fmt.Sprintf("%.2f MB (%.2f%%)", r.SavedMB, r.ReductionPercent)},
		Row{Label: "Elapsed", Value: fmt.Sprintf("%.2f s", r.ElapsedSeconds)},
	)
	if r.OutputDir != "" {
		rows = append(rows, Row{Label: "Output directory", Value: r.OutputDir})
	}
	return rows
}

// FailureNote heads the list of failed files.
const FailureNote = "Failed to convert (originals copied to the output directory):"

// Text renders the report as plain lines, for dialogs and logs.
func (r Report) Text() string {
	var sb strings.Builder
	if r.Success {
		sb.WriteString("Conversion complete.\n\n")
	} else {
		sb.WriteString("Conversion finished with errors.\n\n")
	}
	for _, row := range r.Rows() {
		fmt.Fprintf(&sb, "%s: %s\n", row.Label, row.Value)
	}
	if len(r.Failed) > 0 {
		sb.WriteString("\n")
		sb.WriteString(FailureNote)
		sb.WriteString("\n")
		for _, path := range r.Failed {
			fmt.Fprintf(&sb, "  %s\n", path)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
