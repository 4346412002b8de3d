package tui

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// BarSink is a processor.ProgressSink drawing a single-line progress bar,
// for pipes and terminals where the full-screen view is unwanted.
type BarSink struct {
	bar *progressbar.ProgressBar
	max int
}

func NewBarSink(w io.Writer, description string) *BarSink {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
	)
	return &BarSink{bar: bar, max: -1}
}

func (s *BarSink) Progress(done, total int) {
	if total != s.max {
		s.bar.ChangeMax(total)
		s.max = total
	}
	_ = s.bar.Set(done)
}

// Finish completes the bar and moves the cursor to a fresh line.
func (s *BarSink) Finish() {
	_ = s.bar.Finish()
}
