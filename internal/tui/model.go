package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webpify/internal/processor"
)

type Model struct {
	updates  <-chan processor.ProgressUpdate
	title    string
	started  time.Time
	bar      progress.Model
	width    int
	done     int
	total    int
	cancel   func()
	stopping bool
	quitting bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

// NewModel renders updates until the channel is closed. cancel, if set, is
// called on ctrl+c or q; the view keeps draining updates until the run stops.
func NewModel(title string, updates <-chan processor.ProgressUpdate, cancel func()) Model {
	bar := progress.New(progress.WithGradient(barGradientFrom, barGradientTo))
	bar.Width = 40
	return Model{updates: updates, title: title, started: time.Now(), bar: bar, cancel: cancel}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.stopping && m.cancel != nil {
				m.cancel()
			}
			m.stopping = true
		}
		return m, nil
	case updateMsg:
		m.done = msg.Done
		m.total = msg.Total
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = barWidth(msg.Width)
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render(m.title),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.done, m.total)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		m.bar.ViewAs(ratio(m.done, m.total)),
	}
	if m.stopping {
		lines = append(lines, warnStyle.Render("Stopping, waiting for running conversions..."))
	} else {
		lines = append(lines, dimStyle.Render("Press q to stop."))
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(done) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}

func barWidth(termWidth int) int {
	w := termWidth - 10
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeading)
	labelStyle = lipgloss.NewStyle().Foreground(ColorText)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)
