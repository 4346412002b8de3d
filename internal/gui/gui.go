// Package gui drives a conversion through native dialogs: a folder picker,
// a progress window that can cancel the run, and a result message.
package gui

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"

	"webpify/internal/report"
)

const dialogTitle = "webpify"

// ErrCanceled is returned when the user dismisses the folder picker.
var ErrCanceled = errors.New("selection canceled")

// PickDirectory asks for the folder to convert.
func PickDirectory() (string, error) {
	dir, err := zenity.SelectFile(
		zenity.Directory(),
		zenity.Title("Select a folder to convert to WebP"),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("folder picker: %w", err)
	}
	return dir, nil
}

// ShowResult presents the run summary, as a warning when any file failed.
func ShowResult(r report.Report) error {
	text := r.Text()
	if r.Success {
		return zenity.Info(text, zenity.Title(dialogTitle), zenity.InfoIcon)
	}
	return zenity.Warning(text, zenity.Title(dialogTitle), zenity.WarningIcon)
}

// ShowError reports a failure that stopped the run before it started.
func ShowError(err error) {
	if dlgErr := zenity.Error(err.Error(), zenity.Title(dialogTitle), zenity.ErrorIcon); dlgErr != nil {
		log.Error().Err(dlgErr).Msg("error dialog")
	}
}
