package processor

import (
	"context"
	"time"

	"webpify/internal/codec"
	"webpify/internal/planner"
)

// Codec converts a single task. Implementations must be safe for concurrent use.
type Codec interface {
	Convert(ctx context.Context, task planner.Task) codec.Outcome
}

type Options struct {
	OutputDir string
	// Workers bounds the pool; zero means one per CPU.
	Workers int
	Codec   Codec
}

// Result aggregates one directory conversion run.
type Result struct {
	Success           bool
	TotalOriginalSize uint64
	TotalWebPSize     uint64
	Converted         int
	Skipped           int
	// Unprocessed counts tasks that were never started because the run was cancelled.
	Unprocessed int
	Failed      []string
	Elapsed     time.Duration
}

// Total is every eligible file the run saw.
func (r Result) Total() int {
	return r.Converted + len(r.Failed) + r.Skipped + r.Unprocessed
}

// Submitted is the number of tasks that produced an outcome.
func (r Result) Submitted() int {
	return r.Converted + len(r.Failed)
}

func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// SpaceSaved is the byte difference between originals and their WebP
// versions. Negative when the WebP files came out larger.
func (r Result) SpaceSaved() int64 {
	return int64(r.TotalOriginalSize) - int64(r.TotalWebPSize)
}

// ProgressSink receives "done of total" updates. Run calls it from a single
// goroutine.
type ProgressSink interface {
	Progress(done, total int)
}

// ProgressFunc adapts a plain function to ProgressSink.
type ProgressFunc func(done, total int)

func (f ProgressFunc) Progress(done, total int) {
	f(done, total)
}

type ProgressUpdate struct {
	Done  int
	Total int
}

// ChannelSink forwards progress onto Updates, typically read by the TUI.
// Once Closed is closed, updates are dropped instead of blocking the run.
type ChannelSink struct {
	Updates chan<- ProgressUpdate
	Closed  <-chan struct{}
}

func (c ChannelSink) Progress(done, total int) {
	select {
	case c.Updates <- ProgressUpdate{Done: done, Total: total}:
	case <-c.Closed:
	}
}
