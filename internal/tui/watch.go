// Package tui renders a running scene in the terminal: an interactive
// bubbletea view and a plain ANSI renderer for non-interactive runs.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/viz"
	"github.com/san-kum/scenekit/internal/window"
)

const speedHistory = 120

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Watch is the bubbletea model behind the watch command. It owns the
// driving loop: every frame advances the driver by one tick. Arrow keys and
// terminal resizes are forwarded to the focused scene as window events.
type Watch struct {
	eng   *engine.Engine
	drv   *driver.Driver
	queue *window.Queue
	scene uint64
	title string

	interval time.Duration
	running  bool
	showHelp bool
	speeds   []float64
}

func NewWatch(eng *engine.Engine, drv *driver.Driver, queue *window.Queue, scene uint64, title string) Watch {
	return Watch{
		eng:      eng,
		drv:      drv,
		queue:    queue,
		scene:    scene,
		title:    title,
		interval: time.Second / 60,
		running:  true,
		speeds:   make([]float64, 0, speedHistory),
	}
}

func (m Watch) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Watch) Init() tea.Cmd {
	return m.tick()
}

func (m Watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "t":
			viz.NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		case "up", "down", "left", "right":
			m.queue.Push(window.KeyInput{Key: key, State: window.Pressed})
		}
	case tea.WindowSizeMsg:
		m.queue.Push(window.Resized{Width: msg.Width, Height: msg.Height})
	case TickMsg:
		if m.running {
			m.step()
		}
		if m.drv.Closing() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Watch) step() {
	m.drv.Step()
	if st, ok := m.watched(); ok {
		m.speeds = append(m.speeds, st)
		if len(m.speeds) > speedHistory {
			m.speeds = m.speeds[1:]
		}
	}
}

func (m Watch) watched() (float64, bool) {
	id, ok := m.eng.Watcher()
	if !ok {
		return 0, false
	}
	b, ok := m.eng.Body(id)
	if !ok {
		return 0, false
	}
	st, ok := m.eng.Handle(b.Scene).BodyState(id)
	if !ok {
		return 0, false
	}
	return st.Velocity.Length(), true
}

func (m Watch) Running() bool { return m.running }

func (m Watch) View() string {
	if _, ok := m.eng.Scene(m.scene); !ok {
		return viz.StatusClosed.Render("scene removed") + "\n"
	}
	frame := viz.RenderScene(m.eng, m.scene, width, height)

	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render(strings.ToUpper(m.title)) + "\n")
	switch {
	case m.drv.Closing():
		s.WriteString(viz.StatusClosed.Render("CLOSING"))
	case m.running:
		s.WriteString(viz.StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(viz.StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")
	s.WriteString(viz.Metric("Tick", fmt.Sprintf("%d", m.drv.Tick())) + "\n")
	s.WriteString(viz.Metric("Time", fmt.Sprintf("%.2fs", m.drv.Time())) + "\n")
	s.WriteString(viz.Metric("Bodies", fmt.Sprintf("%d", len(m.eng.BodyIDs(m.scene)))) + "\n")
	s.WriteString(viz.Metric("Joints", fmt.Sprintf("%d", m.eng.JointCount())) + "\n")
	if len(m.speeds) > 0 {
		s.WriteString(viz.Metric("Speed", fmt.Sprintf("%.2f", m.speeds[len(m.speeds)-1])) + "\n")
		s.WriteString(viz.SparklineChart(m.speeds, 30) + "\n")
	}
	s.WriteString("\n" + viz.Separator(30) + "\n")
	for _, l := range frame.Legend {
		s.WriteString(l + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause N:Step T:Theme ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(frame.Canvas.String()), statsStyle.Render(s.String()))
	if m.showHelp {
		help := viz.Panel.Render(strings.Join([]string{
			"Space   pause or resume",
			"N       single tick while paused",
			"Arrows  send key events to the scene",
			"T       cycle themes",
			"Q       quit",
		}, "\n"))
		return help + "\n" + main
	}
	return main
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m Watch) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
