// Package planner discovers eligible images under an input tree and maps each
// one onto its mirrored location in the output tree.
package planner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DirSuffix is appended to every directory segment of the mirrored tree.
const DirSuffix = "_webp"

// FileSuffix is appended to the full source file name, extension included.
const FileSuffix = ".webp"

// ErrInvalidInput reports an input root that is missing or not a directory.
var ErrInvalidInput = errors.New("invalid input directory")

var eligibleExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Task is one source image and the directory its WebP is written into.
type Task struct {
	Source  string
	DestDir string
}

// Dest returns the path the converted file is written to.
func (t Task) Dest() string {
	return DestinationPath(t.DestDir, t.Source)
}

// Plan is the outcome of walking an input tree.
type Plan struct {
	Tasks   []Task
	Skipped int
	// Entries lists every eligible file in walk order, converted or not.
	Entries []Entry
}

// Total is the number of eligible files found, skipped ones included.
func (p Plan) Total() int {
	return len(p.Tasks) + p.Skipped
}

// Entry records the decision made for one eligible file.
type Entry struct {
	Task
	Skip bool
}

type Options struct {
	// DryRun plans without creating any directory.
	DryRun bool
}

// IsEligible reports whether name has a .jpg, .jpeg or .png extension, ignoring case.
func IsEligible(name string) bool {
	return eligibleExtensions[strings.ToLower(filepath.Ext(name))]
}

// DestinationDir maps the parent of a file at rel (relative to the input root)
// onto the output root, suffixing each intermediate segment with DirSuffix.
func DestinationDir(outputDir, rel string) string {
	parent := filepath.Dir(filepath.FromSlash(rel))
	if parent == "." {
		return outputDir
	}
	parts := strings.Split(parent, string(filepath.Separator))
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, outputDir)
	for _, part := range parts {
		segments = append(segments, part+DirSuffix)
	}
	return filepath.Join(segments...)
}

// DestinationPath is the converted file path for source inside destDir. Skip
// detection and the codec both go through here so they cannot disagree.
func DestinationPath(destDir, source string) string {
	return filepath.Join(destDir, filepath.Base(source)+FileSuffix)
}

// Run walks inputDir and plans one Task per eligible image whose destination
// does not exist yet. Destination directories are created for every eligible
// file, skipped ones included, unless opts.DryRun is set.
func Run(inputDir, outputDir string, opts Options) (Plan, error) {
	var plan Plan

	info, err := os.Stat(inputDir)
	if err != nil {
		return plan, fmt.Errorf("%w: %s: %v", ErrInvalidInput, inputDir, err)
	}
	if !info.IsDir() {
		return plan, fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, inputDir)
	}

	absRoot, err := filepath.Abs(inputDir)
	if err != nil {
		return plan, err
	}
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return plan, err
	}
	outputInsideRoot := absOut != absRoot && isWithin(absOut, absRoot)

	if !opts.DryRun {
		if err := os.MkdirAll(absOut, 0o755); err != nil {
			return plan, err
		}
	}

	fsys := os.DirFS(absRoot)
	err = fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if rel == "." {
				return fmt.Errorf("%w: %v", ErrInvalidInput, walkErr)
			}
			log.Warn().Err(walkErr).Str("path", rel).Msg("unreadable entry, skipping")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if outputInsideRoot && rel != "." && isWithin(filepath.Join(absRoot, rel), absOut) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsEligible(d.Name()) {
			return nil
		}

		task := Task{
			Source:  filepath.Join(absRoot, filepath.FromSlash(rel)),
			DestDir: DestinationDir(absOut, rel),
		}
		if !opts.DryRun {
			if err := os.MkdirAll(task.DestDir, 0o755); err != nil {
				return err
			}
		}

		skip, err := exists(task.Dest())
		if err != nil {
			return err
		}
		plan.Entries = append(plan.Entries, Entry{Task: task, Skip: skip})
		if skip {
			plan.Skipped++
			log.Debug().Str("path", task.Source).Msg("already converted, skipping")
			return nil
		}
		plan.Tasks = append(plan.Tasks, task)
		return nil
	})
	if err != nil {
		return plan, err
	}

	log.Info().
		Str("input", absRoot).
		Str("output", absOut).
		Int("tasks", len(plan.Tasks)).
		Int("skipped", plan.Skipped).
		Msg("plan complete")

	return plan, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
