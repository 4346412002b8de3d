// Package codec turns JPEG and PNG files into upright WebP files.
package codec

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"webpify/internal/planner"
	"webpify/pkg/imgutil"
)

// DefaultQuality matches the lossy quality most WebP tooling defaults to.
const DefaultQuality = 80

type Options struct {
	Quality  float32
	Lossless bool
}

// WebP converts one task at a time. It holds no mutable state and is safe
// for concurrent use by the worker pool.
type WebP struct {
	opts Options
}

func New(opts Options) *WebP {
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}
	if opts.Quality > 100 {
		opts.Quality = 100
	}
	return &WebP{opts: opts}
}

// Convert decodes task.Source, rotates it upright according to its EXIF
// orientation and writes it to task.Dest(). Failures are reported in the
// returned Outcome, never as a panic or a separate error. A conversion that
// has started always runs to completion.
func (c *WebP) Convert(_ context.Context, task planner.Task) Outcome {
	src, err := os.Open(task.Source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failure(task, fmt.Errorf("%w: %s", ErrSourceMissing, task.Source))
		}
		return failure(task, fmt.Errorf("%w: open: %v", ErrCodec, err))
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return failure(task, fmt.Errorf("%w: stat: %v", ErrCodec, err))
	}

	img, err := decode(src)
	if err != nil {
		return failure(task, fmt.Errorf("%w: %v", ErrCodec, err))
	}

	orientation, err := readOrientation(src)
	if err != nil {
		log.Debug().Err(err).Str("path", task.Source).Msg("could not read EXIF orientation, assuming upright")
		orientation = 1
	}
	img = applyOrientation(img, orientation)

	dest := task.Dest()
	written, err := c.encodeTo(img, task.DestDir, dest)
	if err != nil {
		return failure(task, fmt.Errorf("%w: %v", ErrCodec, err))
	}

	log.Info().
		Str("path", task.Source).
		Str("dest", dest).
		Int("orientation", orientation).
		Int64("original_bytes", info.Size()).
		Int64("webp_bytes", written).
		Msg("converted")

	return Outcome{
		Task:         task,
		OK:           true,
		OriginalSize: uint64(info.Size()),
		WebPSize:     uint64(written),
	}
}

func decode(rs io.ReadSeeker) (image.Image, error) {
	kind, err := imgutil.SniffReader(rs)
	if err != nil {
		return nil, fmt.Errorf("sniff: %w", err)
	}
	if !kind.Decodable() {
		return nil, fmt.Errorf("unsupported image content (%s)", kind)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// EXIF orientation is read with go-exif and applied by the caller.
	img, err := imaging.Decode(bufio.NewReader(rs), imaging.AutoOrientation(false))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return img, nil
}

// encodeTo writes img into a temp file beside dest and renames it into place,
// so an interrupted encode never leaves a file that looks converted.
func (c *WebP) encodeTo(img image.Image, destDir, dest string) (int64, error) {
	tmpFile, err := os.CreateTemp(destDir, ".webpify-*.tmp")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmpFile.Name())

	bw := bufio.NewWriter(tmpFile)
	if err := webp.Encode(bw, img, &webp.Options{Lossless: c.opts.Lossless, Quality: c.opts.Quality}); err != nil {
		_ = tmpFile.Close()
		return 0, fmt.Errorf("encode webp: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return 0, err
	}

	if err := replaceFile(tmpFile.Name(), dest); err != nil {
		return 0, err
	}

	outInfo, err := os.Stat(dest)
	if err != nil {
		return 0, err
	}
	return outInfo.Size(), nil
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
