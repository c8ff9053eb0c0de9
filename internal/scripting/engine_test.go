package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/physics/memworld"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap/zaptest"
)

func setup(t *testing.T) (*engine.Engine, *engine.SceneHandle) {
	t.Helper()
	w, err := memworld.New(physics.Settings{Integrator: "euler"})
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New(zaptest.NewLogger(t))
	if err := e.AddScene(0, w); err != nil {
		t.Fatal(err)
	}
	return e, e.Handle(0)
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	se := NewEngine(dir, zaptest.NewLogger(t))
	t.Cleanup(se.Close)
	return se
}

func TestLoadFileAndStep(t *testing.T) {
	dir := t.TempDir()
	src := `
calls = 0
function on_step(id, tick)
  calls = calls + 1
  last_tick = tick
  last_name = scene.name(id)
  scene.impulse(id, 2, 0)
  scene.watch(id)
end
`
	if err := os.WriteFile(filepath.Join(dir, "kick.lua"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	se := newEngine(t, dir)
	b, err := se.Load("kick.lua")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	eng, h := setup(t)
	id := h.AddBody(engine.BodyBuilder{
		Rigid:      physics.RigidBodyDesc{Mass: 2},
		Name:       "kicker",
		LifeStepOp: b,
	})

	b.Step(h, id, 7)

	if got := lua.LVAsNumber(b.Get("calls")); got != 1 {
		t.Errorf("calls = %v", got)
	}
	if got := lua.LVAsNumber(b.Get("last_tick")); got != 7 {
		t.Errorf("last_tick = %v", got)
	}
	if got := lua.LVAsString(b.Get("last_name")); got != "kicker" {
		t.Errorf("last_name = %q", got)
	}
	st, _ := h.BodyState(id)
	if st.Velocity.X != 1 {
		t.Errorf("vx = %v, want 1 after impulse 2 on mass 2", st.Velocity.X)
	}
	if w, ok := eng.Watcher(); !ok || w != id {
		t.Errorf("watcher = %d, %v", w, ok)
	}
	if b.Errors() != 0 {
		t.Errorf("errors = %d", b.Errors())
	}
}

func TestLoadIsCached(t *testing.T) {
	se := newEngine(t, t.TempDir())
	a, err := se.LoadString("noop", "function on_step(id, tick) end")
	if err != nil {
		t.Fatal(err)
	}
	b, err := se.LoadString("noop", "this is not lua")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || se.Loaded() != 1 {
		t.Error("expected cached behaviour")
	}
}

func TestScriptsHaveSeparateEnvironments(t *testing.T) {
	se := newEngine(t, "")
	a, err := se.LoadString("a", `label = "a"; function on_step(id, tick) seen = label end`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := se.LoadString("b", `label = "b"; function on_step(id, tick) seen = label end`)
	if err != nil {
		t.Fatal(err)
	}
	_, h := setup(t)
	a.Step(h, 0, 0)
	b.Step(h, 0, 0)
	if lua.LVAsString(a.Get("seen")) != "a" || lua.LVAsString(b.Get("seen")) != "b" {
		t.Errorf("seen = %v / %v", a.Get("seen"), b.Get("seen"))
	}
}

func TestLoadErrors(t *testing.T) {
	se := newEngine(t, t.TempDir())
	tests := map[string]string{
		"syntax":     "function on_step(",
		"no on_step": "x = 1",
		"top error":  "error('boom')",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := se.LoadString(name, src); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := se.Load("missing.lua"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRuntimeErrorIsCounted(t *testing.T) {
	se := newEngine(t, "")
	b, err := se.LoadString("bad", `function on_step(id, tick) error("nope") end`)
	if err != nil {
		t.Fatal(err)
	}
	_, h := setup(t)
	b.Step(h, 0, 0)
	b.Step(h, 0, 1)
	if b.Errors() != 2 {
		t.Errorf("errors = %d, want 2", b.Errors())
	}
}

func TestRemoveAndMissingBody(t *testing.T) {
	se := newEngine(t, "")
	b, err := se.LoadString("reaper", `
function on_step(id, tick)
  missing = scene.position(999) == nil
  removed = scene.remove(id)
  again = scene.remove(id)
  sid = scene.scene_id()
end`)
	if err != nil {
		t.Fatal(err)
	}
	eng, h := setup(t)
	id := h.AddBody(engine.BodyBuilder{LifeStepOp: b})
	b.Step(h, id, 0)

	if b.Get("missing") != lua.LTrue || b.Get("removed") != lua.LTrue || b.Get("again") != lua.LFalse {
		t.Errorf("missing=%v removed=%v again=%v", b.Get("missing"), b.Get("removed"), b.Get("again"))
	}
	if lua.LVAsNumber(b.Get("sid")) != 0 {
		t.Errorf("sid = %v", b.Get("sid"))
	}
	if _, ok := eng.Body(id); ok {
		t.Error("body not removed")
	}
}

func TestSceneAPIOutsideStep(t *testing.T) {
	se := newEngine(t, "")
	if err := se.vm.DoString(`scene.watch(1)`); err == nil {
		t.Error("expected error when no step is running")
	}
}

func TestEngineFatalEscapesStep(t *testing.T) {
	se := newEngine(t, "")
	b, err := se.LoadString("late", `function on_step(id, tick) scene.remove(id) end`)
	if err != nil {
		t.Fatal(err)
	}
	eng, h := setup(t)
	id := h.AddBody(engine.BodyBuilder{LifeStepOp: b})
	eng.RemoveScene(0)

	func() {
		defer func() {
			fe, ok := engine.AsFatal(recover())
			if !ok {
				t.Fatal("expected a FatalError panic")
			}
			if !errors.Is(fe, engine.ErrUnknownScene) {
				t.Errorf("err = %v, want ErrUnknownScene", fe)
			}
		}()
		b.Step(h, id, 0)
	}()
	if b.Errors() != 0 {
		t.Errorf("fatal counted as a script error: %d", b.Errors())
	}

	// the VM stays usable after the fatal
	next, err := se.LoadString("next", `function on_step(id, tick) ran = true end`)
	if err != nil {
		t.Fatal(err)
	}
	_, h2 := setup(t)
	next.Step(h2, 0, 0)
	if next.Get("ran") != lua.LTrue || next.Errors() != 0 {
		t.Errorf("ran=%v errors=%d", next.Get("ran"), next.Errors())
	}
}
