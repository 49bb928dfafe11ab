package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	outcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	scenario *Scenario
	frames   []Frame
	leaked   []string
	view     viewport.Model
	current  int
	ready    bool
}

type framesMsg struct {
	err    error
	frames []Frame
	leaked []string
}

func newInteractiveModel(sc *Scenario) *interactiveModel {
	return &interactiveModel{scenario: sc}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.runScenario
}

// runScenario executes all steps up front; the TUI then steps through
// the recorded frames.
func (m *interactiveModel) runScenario() tea.Msg {
	runner := NewRunner()
	defer runner.Close()

	frames, err := runner.Run(m.scenario)
	return framesMsg{
		frames: frames,
		leaked: runner.Leaked(),
		err:    err,
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case framesMsg:
		m.frames = msg.frames
		m.leaked = msg.leaked
		m.err = msg.err
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - 4
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.current < len(m.frames)-1 {
				m.current++
				m.refresh()
			}
		case "left", "h", "p":
			if m.current > 0 {
				m.current--
				m.refresh()
			}
		default:
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *interactiveModel) refresh() {
	if !m.ready || len(m.frames) == 0 {
		return
	}
	f := m.frames[m.current]

	var b strings.Builder
	b.WriteString(stepStyle.Render(f.Step) + "\n")
	b.WriteString(outcomeStyle.Render(f.Outcome) + "\n\n")
	for _, line := range f.State {
		b.WriteString(stateStyle.Render("  "+line) + "\n")
	}
	if len(f.Events) > 0 {
		b.WriteString("\n")
		for _, ev := range f.Events {
			b.WriteString(eventStyle.Render("  "+ev) + "\n")
		}
	}
	if m.current == len(m.frames)-1 {
		b.WriteString("\n")
		if len(m.leaked) > 0 {
			for _, l := range m.leaked {
				b.WriteString(errorStyle.Render("  leaked: "+l) + "\n")
			}
		} else {
			b.WriteString(stateStyle.Render("  all lineages destroyed") + "\n")
		}
	}
	m.view.SetContent(b.String())
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			helpStyle.Render("q: quit")
	}
	if !m.ready || len(m.frames) == 0 {
		return "loading...\n"
	}

	header := titleStyle.Render(fmt.Sprintf(" %s — step %d/%d ",
		m.scenario.Name, m.current+1, len(m.frames)))
	help := helpStyle.Render("←/→: step · q: quit")
	return header + "\n\n" + m.view.View() + "\n" + help
}

func runInteractive(sc *Scenario) error {
	p := tea.NewProgram(newInteractiveModel(sc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
