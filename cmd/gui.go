package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"webpify/internal/codec"
	"webpify/internal/config"
	"webpify/internal/gui"
	"webpify/internal/processor"
	"webpify/internal/report"
)

var guiCfg = config.DefaultConfig()

var guiCmd = &cobra.Command{
	Use:   "gui [dir]",
	Short: "Pick a folder and convert it using native dialogs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := guiCfg
		cfg.UI = config.UIGUI

		_, closeLog, err := setupLogging(cfg, true)
		if err != nil {
			return err
		}
		defer closeLog()

		if len(args) == 1 {
			cfg.InputDir = args[0]
		} else {
			dir, err := gui.PickDirectory()
			if errors.Is(err, gui.ErrCanceled) {
				return nil
			}
			if err != nil {
				return err
			}
			cfg.InputDir = dir
		}

		if err := cfg.Validate(); err != nil {
			gui.ShowError(err)
			return err
		}
		if err := cfg.ResolveOutputDir(); err != nil {
			gui.ShowError(err)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		sink, err := gui.OpenProgress(cancel)
		if err != nil {
			return err
		}
		result, runErr := processor.Run(ctx, cfg.InputDir, processor.Options{
			OutputDir: cfg.OutputDir,
			Workers:   cfg.Workers,
			Codec:     codec.New(cfg.CodecOptions()),
		}, sink)
		sink.Close()

		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			gui.ShowError(errors.New(userMessage(runErr)))
			return runErr
		}
		if err := gui.ShowResult(report.Build(result, cfg.OutputDir)); err != nil && !errors.Is(err, zenity.ErrCanceled) {
			return err
		}
		return nil
	},
}

func init() {
	flags := guiCmd.Flags()
	flags.StringVarP(&guiCfg.OutputDir, "output", "o", "", "destination folder (default: <dir>_webp next to the input)")
	flags.IntVarP(&guiCfg.Workers, "workers", "w", guiCfg.Workers, "parallel conversions (0 = one per CPU)")
	flags.Float32VarP(&guiCfg.Quality, "quality", "q", guiCfg.Quality, "WebP quality 1-100")
	flags.BoolVar(&guiCfg.Lossless, "lossless", false, "encode lossless WebP")
	flags.StringVar(&guiCfg.LogFile, "log-file", "", "log destination")

	rootCmd.AddCommand(guiCmd)
}
