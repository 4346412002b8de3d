package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webpify/internal/config"
	"webpify/internal/logging"
	"webpify/internal/planner"
)

var rootCmd = &cobra.Command{
	Use:          "webpify",
	Short:        "webpify - convert a folder of JPEG/PNG images to WebP",
	Long:         "webpify mirrors a directory tree of JPEG and PNG images into WebP, in parallel, skipping files already converted.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SilenceErrors = true
}

func userMessage(err error) string {
	if errors.Is(err, planner.ErrInvalidInput) {
		return fmt.Sprintf("Please select a valid directory (%v)", err)
	}
	return err.Error()
}

// setupLogging points the global logger at stderr, or at the log file when
// the terminal is taken by the live view. It returns the file path in use,
// or "" for stderr.
func setupLogging(cfg config.Config, toFile bool) (string, func(), error) {
	if !toFile {
		logging.Init(cfg.LogLevel, os.Stderr)
		return "", func() {}, nil
	}
	path := cfg.LogFile
	if path == "" {
		path = config.DefaultLogFile()
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("open log file: %w", err)
	}
	logging.Init(cfg.LogLevel, f)
	return path, func() { _ = f.Close() }, nil
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
