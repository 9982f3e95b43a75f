// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     tui
// Description: Terminal front end for recording and transcription
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/transkriptor/internal/coordinator"
	"github.com/msto63/transkriptor/pkg/core/config"
)

// Coordinator is the part of the pipeline the UI talks to
type Coordinator interface {
	Toggle() error
	SubmitFile(path string) error
	SubmitURL(url string) error
	Poll() (coordinator.Outcome, bool)
	State() coordinator.State
	Mode() coordinator.TriggerMode
	Status() string
}

// inputMode selects what the text input is collecting
type inputMode int

const (
	inputNone inputMode = iota
	inputFile
	inputURL
)

// Options configures the model
type Options struct {
	// PollInterval is the outcome poll cadence (default 200ms)
	PollInterval time.Duration

	// Shortcut describes the hold hotkey; empty when disabled
	Shortcut string

	// Summary is shown under the title, e.g. API base and format
	Summary string
}

// Model is the main TUI model
type Model struct {
	coord        Coordinator
	pollInterval time.Duration
	shortcut     string
	summary      string

	// State
	width  int
	height int
	ready  bool
	err    error
	mode   inputMode

	// Components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	entries []entry
}

// NewModel creates a new TUI model
func NewModel(coord Coordinator, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 2048
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	interval := opts.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	return Model{
		coord:        coord,
		pollInterval: interval,
		shortcut:     opts.Shortcut,
		summary:      opts.Summary,
		input:        ti,
		spinner:      sp,
		viewport:     viewport.New(80, 20),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.poll(),
	)
}

func (m Model) poll() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		footerHeight := 5
		viewportHeight := max(msg.Height-headerHeight-footerHeight, 3)

		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = viewportHeight
		m.input.Width = max(msg.Width-10, 20)
		m.ready = true
		m.updateContent()

	case pollMsg:
		if m.drain() {
			m.updateContent()
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, m.poll())

	case NotifyMsg:
		m.err = msg.Err

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// drain moves every queued outcome into the transcript log
func (m *Model) drain() bool {
	changed := false
	for {
		out, ok := m.coord.Poll()
		if !ok {
			return changed
		}
		changed = true
		if out.Succeeded() {
			m.err = nil
			m.entries = append(m.entries, entry{
				at:      out.FinishedAt,
				ok:      true,
				title:   out.Message,
				content: out.DisplayText,
			})
		} else {
			m.entries = append(m.entries, entry{
				at:      out.FinishedAt,
				title:   "Transkription fehlgeschlagen",
				content: out.Message,
			})
		}
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r", " ":
		m.err = m.coord.Toggle()
		return m, nil

	case "f":
		if m.coord.State() == coordinator.StateIdle {
			return m.openInput(inputFile, "Pfad zur Audiodatei...")
		}

	case "u":
		if m.coord.State() == coordinator.StateIdle {
			return m.openInput(inputURL, "Öffentliche URL...")
		}

	case "ctrl+l":
		m.entries = nil
		m.err = nil
		m.updateContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) openInput(mode inputMode, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.err = nil
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.closeInput()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		if mode == inputFile {
			m.err = m.coord.SubmitFile(value)
		} else {
			m.err = m.coord.SubmitURL(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) updateContent() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(SubtitleStyle.Render("Noch keine Transkripte."))
		return
	}

	width := max(m.viewport.Width-2, 10)
	var s strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			s.WriteString("\n")
		}
		stamp := e.at.Format("15:04:05")
		if e.ok {
			s.WriteString(SuccessTitleStyle.Render(fmt.Sprintf("[%s] %s", stamp, e.title)))
			s.WriteString("\n")
			s.WriteString(TranscriptStyle.Width(width).Render(e.content))
		} else {
			s.WriteString(ErrorMessageStyle.Render(fmt.Sprintf("[%s] %s", stamp, e.title)))
			s.WriteString("\n")
			s.WriteString(ErrorMessageStyle.Width(width).Render(e.content))
		}
		s.WriteString("\n")
	}
	m.viewport.SetContent(s.String())
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade..."
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	box := BoxStyle
	if m.coord.State() == coordinator.StateRecording {
		box = RecordingBoxStyle
	}
	s.WriteString(box.Render(m.viewport.View()))
	s.WriteString("\n")

	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderHeader() string {
	title := TitleStyle.Render("Lemonfox Transkriptor")
	if m.summary == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(m.summary))
}

func (m *Model) renderFooter() string {
	var s strings.Builder

	if m.mode != inputNone {
		label := "Datei"
		if m.mode == inputURL {
			label = "URL"
		}
		s.WriteString(FocusedInputStyle.Render(label + ": " + m.input.View()))
		s.WriteString("\n")
		s.WriteString(RenderHelp("Enter: Transkribieren • Esc: Abbrechen"))
		return s.String()
	}

	s.WriteString(StatusBarStyle.Render(m.renderStatus()))
	s.WriteString("\n")
	if m.err != nil {
		s.WriteString(RenderError(m.err.Error()))
		s.WriteString("\n")
	}

	help := "r/Leertaste: Aufnahme an/aus • f: Datei • u: URL • Ctrl+L: Leeren • q: Beenden"
	if m.shortcut != "" {
		help = m.shortcut + " halten: Aufnahme • " + help
	}
	s.WriteString(RenderHelp(help))

	return s.String()
}

func (m *Model) renderStatus() string {
	state := m.coord.State()
	status := m.coord.Status()

	switch state {
	case coordinator.StateRecording:
		label := fmt.Sprintf("%s %s (%s)", state.Icon(), state.String(), m.coord.Mode().String())
		return RecordingStyle.Render(label) + "  " + status
	case coordinator.StateProcessing:
		return ProcessingStyle.Render(m.spinner.View()+" "+state.String()) + "  " + status
	default:
		return state.Icon() + " " + status
	}
}
