package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/physics/memworld"
	"github.com/san-kum/scenekit/internal/window"
)

func setup(t *testing.T) (*engine.Engine, *driver.Driver, *window.Queue) {
	t.Helper()
	w, err := memworld.New(physics.Settings{Integrator: "euler"})
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New(nil)
	if err := e.AddScene(0, w); err != nil {
		t.Fatal(err)
	}
	h := e.Handle(0)
	id := h.AddBody(engine.BodyBuilder{Name: "puck", Rigid: physics.RigidBodyDesc{Mass: 1, Velocity: physics.Vec2{X: 3, Y: 4}}})
	h.BindWatcher(id)

	q := window.NewQueue()
	d, err := driver.New(e, q, driver.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return e, d, q
}

func update(t *testing.T, m Watch, msg tea.Msg) (Watch, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	w, ok := next.(Watch)
	if !ok {
		t.Fatalf("model type %T", next)
	}
	return w, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWatchStepsOnTick(t *testing.T) {
	e, d, q := setup(t)
	m := NewWatch(e, d, q, 0, "demo")

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if d.Tick() != 1 {
		t.Errorf("driver tick = %d", d.Tick())
	}
	if len(m.speeds) != 1 || m.speeds[0] != 5 {
		t.Errorf("speeds = %v", m.speeds)
	}
	if !strings.Contains(m.View(), "DEMO") {
		t.Error("view missing title")
	}
}

func TestWatchPause(t *testing.T) {
	e, d, q := setup(t)
	m := NewWatch(e, d, q, 0, "demo")

	m, _ = update(t, m, runes(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, TickMsg{})
	if d.Tick() != 0 {
		t.Error("paused watch stepped")
	}
	m, _ = update(t, m, runes("n"))
	if d.Tick() != 1 {
		t.Error("n should single-step while paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show paused")
	}
}

func TestWatchForwardsKeys(t *testing.T) {
	e, d, q := setup(t)
	var got []window.Event
	e.Handle(0).SetEventListener(func(_ *engine.SceneHandle, ev window.Event) { got = append(got, ev) })
	m := NewWatch(e, d, q, 0, "demo")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if q.Len() != 2 {
		t.Fatalf("queued = %d", q.Len())
	}
	update(t, m, TickMsg{})
	if len(got) != 2 {
		t.Fatalf("got = %v", got)
	}
	if k, ok := got[0].(window.KeyInput); !ok || k.Key != "left" {
		t.Errorf("first event = %v", got[0])
	}
	if r, ok := got[1].(window.Resized); !ok || r.Width != 80 {
		t.Errorf("second event = %v", got[1])
	}
}

func TestWatchQuit(t *testing.T) {
	e, d, q := setup(t)
	m := NewWatch(e, d, q, 0, "demo")
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestWatchQuitsOnClose(t *testing.T) {
	e, d, q := setup(t)
	m := NewWatch(e, d, q, 0, "demo")
	q.Push(window.CloseRequested{})
	_, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("close request should quit")
	}
}

func TestLiveRenderer(t *testing.T) {
	e, _, _ := setup(t)
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0, 1000)
	r.Start()
	r.OnTick(e, 3, 0.05)
	r.Stop()

	out := buf.String()
	if r.Frames() != 1 {
		t.Errorf("frames = %d", r.Frames())
	}
	if !strings.Contains(out, "tick 3") || !strings.Contains(out, "puck") {
		t.Errorf("output = %q", out)
	}
	if !strings.HasPrefix(out, hideCursor) || !strings.HasSuffix(out, showCursor) {
		t.Error("cursor not hidden and restored")
	}
}
