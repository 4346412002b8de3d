package codec

import (
	"errors"

	"webpify/internal/planner"
)

var (
	// ErrSourceMissing means the planned source vanished before conversion.
	ErrSourceMissing = errors.New("source file missing")
	// ErrCodec wraps any decode, orientation or encode failure.
	ErrCodec = errors.New("conversion failed")
)

// Outcome is the result of attempting one task.
type Outcome struct {
	Task         planner.Task
	OK           bool
	OriginalSize uint64
	WebPSize     uint64
	Err          error
}

func (o Outcome) Source() string {
	return o.Task.Source
}

func failure(task planner.Task, err error) Outcome {
	return Outcome{Task: task, Err: err}
}
