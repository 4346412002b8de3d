package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"webpify/internal/config"
	"webpify/internal/logging"
	"webpify/internal/planner"
	"webpify/internal/tui"
)

var planOutputDir string

var planCmd = &cobra.Command{
	Use:   "plan [flags] <dir>",
	Short: "List what convert would do without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		cfg.InputDir = args[0]
		cfg.OutputDir = planOutputDir
		if err := cfg.ResolveOutputDir(); err != nil {
			return err
		}
		logging.Init(cfg.LogLevel, os.Stderr)

		plan, err := planner.Run(cfg.InputDir, cfg.OutputDir, planner.Options{DryRun: true})
		if err != nil {
			return err
		}

		root, _ := filepath.Abs(cfg.InputDir)
		for _, entry := range plan.Entries {
			rel, relErr := filepath.Rel(root, entry.Source)
			if relErr != nil {
				rel = entry.Source
			}
			action := planConvertStyle.Render("convert")
			if entry.Skip {
				action = planSkipStyle.Render("skip   ")
			}
			fmt.Fprintf(os.Stdout, "  %s %s %s %s\n",
				action,
				planFileStyle.Render(rel),
				planDimStyle.Render("->"),
				planDimStyle.Render(entry.Dest()),
			)
		}

		fmt.Fprintf(os.Stdout, "%s %d to convert, %d already converted\n",
			planHeadStyle.Render(cfg.OutputDir+":"),
			len(plan.Tasks),
			plan.Skipped,
		)
		return nil
	},
}

var (
	planHeadStyle    = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorHeading)
	planConvertStyle = lipgloss.NewStyle().Foreground(tui.ColorConverted)
	planSkipStyle    = lipgloss.NewStyle().Foreground(tui.ColorSkipped)
	planFileStyle    = lipgloss.NewStyle().Foreground(tui.ColorText)
	planDimStyle     = lipgloss.NewStyle().Foreground(tui.ColorMuted)
)

func init() {
	planCmd.Flags().StringVarP(&planOutputDir, "output", "o", "", "destination folder (default: <dir>_webp next to the input)")
	rootCmd.AddCommand(planCmd)
}
