package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message types for updating the model
type (
	StageMsg    string
	TotalMsg    int
	FileDoneMsg string
	DoneMsg     struct{ Err error }
)

// Model is the Bubbletea model for progress display
type Model struct {
	stage     string
	spinner   spinner.Model
	progress  progress.Model
	lastFile  string
	total     int
	filesDone int
	width     int
	quitting  bool
	err       error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		stage:    "Starting",
		spinner:  s,
		progress: p,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = string(msg)
		return m, nil

	case TotalMsg:
		m.total = int(msg)
		m.filesDone = 0
		return m, nil

	case FileDoneMsg:
		m.filesDone++
		m.lastFile = string(msg)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// Percent is the share of files processed so far.
func (m Model) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.filesDone) / float64(m.total)
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	if m.total > 0 && m.filesDone < m.total {
		sb.WriteString(m.progress.ViewAs(m.Percent()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(m.stage)
	if m.total > 0 {
		sb.WriteString(fmt.Sprintf(" (%d/%d)", m.filesDone, m.total))
	}
	if m.lastFile != "" && m.filesDone < m.total {
		sb.WriteString(" ")
		sb.WriteString(filepath.Base(m.lastFile))
	}

	return sb.String()
}
