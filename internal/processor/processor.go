// Package processor drives a directory conversion: plan, convert in
// parallel, account for every outcome and fall back to copying originals
// that could not be converted.
package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"webpify/internal/planner"
)

// Run converts every eligible image under inputDir into opts.OutputDir.
//
// Per-file failures never abort the run; they are listed in Result.Failed
// and their originals are copied into the destination tree. The only
// errors returned are planning errors (planner.ErrInvalidInput among them)
// and ctx.Err() when the run was cancelled, in which case the partial
// Result is still returned.
func Run(ctx context.Context, inputDir string, opts Options, sink ProgressSink) (Result, error) {
	var result Result
	if opts.Codec == nil {
		return result, errors.New("processor: no codec configured")
	}
	if opts.OutputDir == "" {
		return result, errors.New("processor: output directory required")
	}
	if sink == nil {
		sink = ProgressFunc(func(int, int) {})
	}

	plan, err := planner.Run(inputDir, opts.OutputDir, planner.Options{})
	if err != nil {
		return result, err
	}

	result.Skipped = plan.Skipped
	total := plan.Total()
	sink.Progress(result.Skipped, total)

	pool := NewPool(opts.Workers)
	log.Info().
		Int("tasks", len(plan.Tasks)).
		Int("skipped", plan.Skipped).
		Int("workers", pool.Workers()).
		Msg("starting conversion")

	started := time.Now()
	received := 0
	for outcome := range pool.Run(ctx, plan.Tasks, opts.Codec.Convert) {
		received++
		if outcome.OK {
			result.TotalOriginalSize += outcome.OriginalSize
			result.TotalWebPSize += outcome.WebPSize
			result.Converted++
		} else {
			result.Failed = append(result.Failed, outcome.Source())
			log.Error().
				Err(outcome.Err).
				Str("path", outcome.Source()).
				Msg("conversion failed")
			if dest, err := copyOriginal(outcome.Source(), outcome.Task.DestDir); err != nil {
				log.Error().
					Err(err).
					Str("path", outcome.Source()).
					Str("dest_dir", outcome.Task.DestDir).
					Msg("fallback copy failed")
			} else {
				log.Warn().
					Str("path", outcome.Source()).
					Str("dest", dest).
					Msg("copied original after failed conversion")
			}
		}
		sink.Progress(result.Converted+result.Skipped, total)
	}
	result.Elapsed = time.Since(started)
	result.Unprocessed = len(plan.Tasks) - received
	result.Success = len(result.Failed) == 0

	log.Info().
		Int("converted", result.Converted).
		Int("skipped", result.Skipped).
		Int("failed", len(result.Failed)).
		Int("unprocessed", result.Unprocessed).
		Dur("elapsed", result.Elapsed).
		Msg("conversion finished")

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("conversion interrupted: %w", err)
	}
	return result, nil
}
