// Package tui provides the live terminal view: it steps an integration
// forward in real time and graphs one state component.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mseri/owl-ode/ode"
)

const (
	graphWidth      = 70
	graphHeight     = 16
	historyCapacity = 600
	stepsPerTick    = 4
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the integration on every tick and keeps a sliding history
// of the selected component for the graph.
type Model struct {
	name     string
	stepper  ode.Stepper
	f        ode.RHS
	initial  ode.State
	state    ode.State
	t, dt    float64
	selected int
	history  []float64
	running  bool
	failed   error
}

func NewModel(name string, stepper ode.Stepper, f ode.RHS, init ode.State, dt float64, component int) Model {
	return Model{
		name:     name,
		stepper:  stepper,
		f:        f,
		initial:  init.Clone(),
		state:    init.Clone(),
		dt:       dt,
		selected: component,
		history:  make([]float64, 0, historyCapacity),
		running:  true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "tab":
			m.selected = (m.selected + 1) % len(m.state)
			m.history = m.history[:0]
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.history = m.history[:0]
			m.failed = nil
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && m.failed == nil {
			for i := 0; i < stepsPerTick; i++ {
				next, tNext, err := m.stepper.Step(m.f, m.state, m.t, m.dt)
				if err != nil {
					m.failed = err
					break
				}
				if !next.IsValid() {
					m.failed = ode.ErrDiverged
					break
				}
				m.state = next
				m.t = tNext
			}
			m.history = append(m.history, m.state[m.selected])
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("odeint live · %s", m.name)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("t"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f", m.t)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("component"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("y[%d] = %.6f", m.selected, m.state[m.selected])))
	b.WriteString("\n")
	if m.failed != nil {
		b.WriteString(labelStyle.Render("status"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("stopped: %v", m.failed)))
		b.WriteString("\n")
	}

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · tab component · r reset · q quit"))
	return b.String()
}

// Run starts the live view and blocks until it exits.
func Run(name string, stepper ode.Stepper, f ode.RHS, init ode.State, dt float64, component int) error {
	_, err := tea.NewProgram(NewModel(name, stepper, f, init, dt, component)).Run()
	return err
}
