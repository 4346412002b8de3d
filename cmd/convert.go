package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"webpify/internal/codec"
	"webpify/internal/config"
	"webpify/internal/processor"
	"webpify/internal/report"
	"webpify/internal/tui"
)

var (
	convertCfg   = config.DefaultConfig()
	convertPlain bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <dir>",
	Short: "Convert every JPEG/PNG under a directory to WebP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := convertCfg
		cfg.InputDir = args[0]
		if convertPlain || !stdoutIsTerminal() {
			cfg.UI = config.UIPlain
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.ResolveOutputDir(); err != nil {
			return err
		}

		logPath, closeLog, err := setupLogging(cfg, cfg.UI == config.UITUI)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		opts := processor.Options{
			OutputDir: cfg.OutputDir,
			Workers:   cfg.Workers,
			Codec:     codec.New(cfg.CodecOptions()),
		}

		var result processor.Result
		var runErr error
		if cfg.UI == config.UIPlain {
			bar := tui.NewBarSink(os.Stderr, "Converting")
			result, runErr = processor.Run(ctx, cfg.InputDir, opts, bar)
			bar.Finish()
		} else {
			updates := make(chan processor.ProgressUpdate, 64)
			program := tea.NewProgram(tui.NewModel("Converting to WebP", updates, cancel))

			uiDone := make(chan struct{})
			go func() {
				defer close(uiDone)
				if _, err := program.Run(); err != nil {
					log.Error().Err(err).Msg("terminal view stopped")
				}
			}()

			sink := processor.ChannelSink{Updates: updates, Closed: uiDone}
			result, runErr = processor.Run(ctx, cfg.InputDir, opts, sink)
			close(updates)
			<-uiDone
		}

		interrupted := errors.Is(runErr, context.Canceled)
		if runErr != nil && !interrupted {
			return runErr
		}

		fmt.Fprintln(os.Stdout, tui.RenderReport(report.Build(result, cfg.OutputDir)))
		if logPath != "" {
			fmt.Fprintf(os.Stdout, "Log written to: %s\n", logPath)
		}
		if interrupted {
			return fmt.Errorf("interrupted with %d files not started; run again to resume", result.Unprocessed)
		}
		return nil
	},
}

func init() {
	flags := convertCmd.Flags()
	flags.StringVarP(&convertCfg.OutputDir, "output", "o", "", "destination folder (default: <dir>_webp next to the input)")
	flags.IntVarP(&convertCfg.Workers, "workers", "w", convertCfg.Workers, "parallel conversions (0 = one per CPU)")
	flags.Float32VarP(&convertCfg.Quality, "quality", "q", convertCfg.Quality, "WebP quality 1-100")
	flags.BoolVar(&convertCfg.Lossless, "lossless", false, "encode lossless WebP")
	flags.BoolVar(&convertPlain, "plain", false, "print a simple progress bar instead of the live view")
	flags.StringVar(&convertCfg.LogLevel, "log-level", convertCfg.LogLevel, "debug, info, warn or error")
	flags.StringVar(&convertCfg.LogFile, "log-file", "", "log destination while the live view is shown")

	rootCmd.AddCommand(convertCmd)
}
