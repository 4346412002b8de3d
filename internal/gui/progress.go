package gui

import (
	"fmt"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
)

type dialog interface {
	Text(string) error
	Value(int) error
}

// ProgressSink shows progress in a native dialog. It satisfies
// processor.ProgressSink.
type ProgressSink struct {
	dlg     dialog
	closer  zenity.ProgressDialog
	percent int
}

// OpenProgress opens the progress window. Pressing Cancel calls cancel.
func OpenProgress(cancel func()) (*ProgressSink, error) {
	dlg, err := zenity.Progress(
		zenity.Title("Converting to WebP"),
		zenity.MaxValue(100),
	)
	if err != nil {
		return nil, fmt.Errorf("progress dialog: %w", err)
	}
	go func() {
		<-dlg.Done()
		if cancel != nil {
			cancel()
		}
	}()
	return &ProgressSink{dlg: dlg, closer: dlg, percent: -1}, nil
}

func (s *ProgressSink) Progress(done, total int) {
	if err := s.dlg.Text(progressText(done, total)); err != nil {
		log.Debug().Err(err).Msg("progress text")
	}
	p := percent(done, total)
	if p == s.percent {
		return
	}
	s.percent = p
	if err := s.dlg.Value(p); err != nil {
		log.Debug().Err(err).Msg("progress value")
	}
}

// Close completes and dismisses the window.
func (s *ProgressSink) Close() {
	if s.closer == nil {
		return
	}
	_ = s.closer.Complete()
	_ = s.closer.Close()
}

func progressText(done, total int) string {
	return fmt.Sprintf("Converted %d of %d files", done, total)
}

func percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	p := done * 100 / total
	if p > 100 {
		return 100
	}
	return p
}
