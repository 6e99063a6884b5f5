package controller

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// runModel handles the TUI display while the rewrite engine is running.
type runModel struct {
	width      int
	bar        progress.Model
	totalFiles int
	percent    int
	cancel     context.CancelFunc
}

func newRunModel(totalFiles int, cancel context.CancelFunc) runModel {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return runModel{
		bar:        bar,
		totalFiles: totalFiles,
		cancel:     cancel,
	}
}

func (m runModel) Init() tea.Cmd {
	return nil
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		m.bar.Width = m.width - 8
		if m.bar.Width < 20 {
			m.bar.Width = 20
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Stop the run between files; the engine owner closes the
			// program once it has wound down.
			if m.cancel != nil {
				m.cancel()
			}
		}

	case progressMsg:
		m.percent = msg.percent

	case doneMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m runModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("resub")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s  •  Files: %s",
		accentStyle.Render(fmt.Sprintf("%d%%", m.percent)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalFiles)),
	))

	barStyle := lipgloss.NewStyle().Padding(0, 2)
	barView := barStyle.Render(m.bar.ViewAs(float64(m.percent) / 100))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Padding(1, 0, 0, 2)

	footer := footerStyle.Render("Press q to stop")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		barView,
		footer,
	) + "\n"
}
