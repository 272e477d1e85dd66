package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumen-engine/lumen/boot"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// frameMsg is the per-frame heartbeat; each one drives at most one Iterate.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// debugModel steps one lifecycle cycle per run: Init on startup, then one
// Iterate per frame until the driver goes terminal, then Quit. While a
// restart is pending it can start the next cycle on demand.
type debugModel struct {
	env  *boot.Env
	argv []string
	out  *bytes.Buffer

	st     *boot.State
	spin   spinner.Model
	frames int
	cycles int
	final  boot.Result
	done   bool
	paused bool
}

func newDebugModel(env *boot.Env, argv []string) *debugModel {
	out := &bytes.Buffer{}
	env.Out = out

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = stateStyle

	return &debugModel{env: env, argv: argv, out: out, spin: sp}
}

func (m *debugModel) Init() tea.Cmd {
	m.startCycle()
	return tea.Batch(m.spin.Tick, frameTick())
}

func (m *debugModel) startCycle() {
	m.cycles++
	m.frames = 0
	st, res := m.env.Init(context.Background(), m.argv)
	if st == nil {
		m.done = true
		m.final = res
		return
	}
	m.st = st
	m.done = false
}

func (m *debugModel) step() {
	res := m.st.Iterate(context.Background())
	m.frames++
	if res == boot.Continue {
		return
	}
	m.st.Quit(context.Background())
	m.st = nil
	m.done = true
	m.final = res
}

func (m *debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.st != nil {
				m.st.Quit(context.Background())
				m.st = nil
			}
			return m, tea.Quit

		case " ":
			if !m.done {
				m.paused = !m.paused
			}

		case "s":
			if m.paused && !m.done {
				m.step()
			}

		case "r":
			if m.done && m.env.RestartPending() {
				m.startCycle()
			}

		default:
			if m.st != nil {
				m.st.Event(context.Background(), msg)
			}
		}

	case frameMsg:
		if !m.paused && !m.done {
			m.step()
		}
		return m, frameTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *debugModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lumen debugger"))
	b.WriteString(fmt.Sprintf("  cycle %d, frame %d\n\n", m.cycles, m.frames))

	switch {
	case m.done && m.final == boot.Success:
		b.WriteString(okStyle.Render("completed"))
	case m.done:
		b.WriteString(errorStyle.Render("failed"))
	case m.paused:
		b.WriteString(stateStyle.Render("paused"))
	default:
		b.WriteString(m.spin.View())
		b.WriteString(stateStyle.Render("running"))
	}
	if m.st != nil {
		if d := m.st.Driver(); d != nil {
			b.WriteString("  driver: ")
			b.WriteString(stateStyle.Render(d.State().String()))
		}
	}
	b.WriteString("\n")

	if m.done && m.env.RestartPending() {
		b.WriteString("\nrestart pending\n")
	}

	if m.out.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(tail(m.out.String(), 8)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause • s step • r restart • q quit"))
	b.WriteString("\n")

	return b.String()
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func runInteractive(env *boot.Env, argv []string) error {
	p := tea.NewProgram(newDebugModel(env, argv), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
