// Package tui steps a simulation interactively and shows every tracked cell
// as it is written.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tracksim/internal/report"
	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/units"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model advances the simulator by speed steps per tick while running.
type Model struct {
	title     string
	simulator *sim.Simulator
	cfg       sim.Config
	watch     []string
	frameRate int

	step    int
	t       units.Time
	speed   int
	running bool
	done    bool
	last    sim.Snapshot
	history map[string][]float64
}

// New builds a live view. watch lists the snapshot keys drawn as
// sparklines, e.g. "battery.temperature".
func New(title string, s *sim.Simulator, cfg sim.Config, frameRate int, watch ...string) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		title:     title,
		simulator: s,
		cfg:       cfg,
		watch:     watch,
		frameRate: frameRate,
		speed:     1,
		running:   true,
		history:   make(map[string][]float64, len(watch)),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			m.advance()
		case "+", "=":
			m.speed *= 2
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.speed && !m.done; i++ {
				m.advance()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	if m.done {
		return
	}
	if m.t+m.cfg.Dt > m.cfg.Duration+1e-9 {
		m.done = true
		m.running = false
		return
	}

	env := sim.Env{Inputs: m.simulator.Profile().At(m.t), Step: m.step, Time: m.t, Dt: m.cfg.Dt}
	m.last = m.simulator.Step(env)
	m.t = m.last.Time
	m.step++

	for _, key := range m.watch {
		v, ok := m.last.Get(key)
		if !ok {
			continue
		}
		h := append(m.history[key], v)
		if len(h) > historyCapacity {
			h = h[len(h)-historyCapacity:]
		}
		m.history[key] = h
	}
}

func (m Model) View() string {
	var b strings.Builder

	status := "running"
	switch {
	case m.done:
		status = "done"
	case !m.running:
		status = "paused"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  step %d  t=%v  x%d  [%s]", m.title, m.step, m.t, m.speed, status)))
	b.WriteString("\n")

	groups := make([]*tracked.Group, 0, len(m.simulator.Components()))
	for _, c := range m.simulator.Components() {
		groups = append(groups, c.Cells())
	}
	b.WriteString(report.Cells(groups...))
	b.WriteString("\n")

	for _, key := range m.watch {
		b.WriteString(labelStyle.Render(key))
		b.WriteString(report.Sparkline(m.history[key], 50))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · s step · +/- speed · q quit"))
	return b.String()
}

// Run starts the program full screen and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
