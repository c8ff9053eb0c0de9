package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/physics/memworld"
)

const blank = '⠀'

func lit(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				n++
			}
		}
	}
	return n
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("cell = %U", c.Grid[0][0])
	}
	c.Set(-1, 0)
	c.Set(100, 100)
	if lit(c) != 1 {
		t.Errorf("lit cells = %d", lit(c))
	}
	c.Clear()
	if lit(c) != 0 {
		t.Error("canvas not cleared")
	}
}

func TestCanvasShapes(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawLine(0, 0, 39, 0)
	for col := 0; col < 20; col++ {
		if c.Grid[0][col] == blank {
			t.Fatalf("line gap at column %d", col)
		}
	}
	c.Clear()
	c.DrawCircle(20, 20, 6)
	if c.Grid[5][10] != blank {
		t.Error("circle centre should be empty")
	}
	if lit(c) == 0 {
		t.Error("circle not drawn")
	}
	if got := strings.Count(c.String(), "\n"); got != 10 {
		t.Errorf("rows = %d", got)
	}
}

func TestViewport(t *testing.T) {
	vp := FitViewport([]physics.Vec2{{X: -5, Y: 0}, {X: 5, Y: 10}}, 120, 120)
	if vp.Center != (physics.Vec2{X: 0, Y: 5}) {
		t.Errorf("center = %v", vp.Center)
	}
	x, y := vp.Project(vp.Center)
	if x != 60 || y != 60 {
		t.Errorf("center projects to %d,%d", x, y)
	}
	_, top := vp.Project(physics.Vec2{Y: 10})
	_, bottom := vp.Project(physics.Vec2{Y: 0})
	if top >= bottom {
		t.Error("y axis should point up")
	}

	empty := FitViewport(nil, 100, 50)
	if empty.Scale != 5 {
		t.Errorf("empty scale = %v", empty.Scale)
	}
}

func TestRenderScene(t *testing.T) {
	w, _ := memworld.New(physics.DefaultSettings())
	e := engine.New(nil)
	e.AddScene(0, w)
	h := e.Handle(0)
	a := h.AddBody(engine.BodyBuilder{Name: "anchor", Rigid: physics.RigidBodyDesc{Kind: physics.Static}})
	b := h.AddBody(engine.BodyBuilder{Rigid: physics.RigidBodyDesc{Position: physics.Vec2{X: 3, Y: -2}}})
	h.AddJoint(engine.Joint{Body1: a, Body2: b})
	h.BindWatcher(b)

	f := RenderScene(e, 0, 30, 12)
	if lit(f.Canvas) == 0 {
		t.Error("nothing drawn")
	}
	if len(f.Legend) != 2 {
		t.Fatalf("legend = %v", f.Legend)
	}
	if !strings.Contains(f.Legend[0], "anchor") || !strings.Contains(f.Legend[1], "#1") {
		t.Errorf("legend = %q", f.Legend)
	}
}

func TestPlots(t *testing.T) {
	if out := PlotSamples(nil, 40, 5); !strings.Contains(out, "not enough") {
		t.Errorf("empty plot = %q", out)
	}
	samples := make([]driver.Sample, 20)
	for i := range samples {
		samples[i].State.Position = physics.Vec2{X: float64(i), Y: float64(20 - i)}
		samples[i].State.Velocity = physics.Vec2{X: 1}
	}
	if out := PlotSamples(samples, 40, 5); !strings.Contains(out, "position") {
		t.Errorf("plot missing caption:\n%s", out)
	}
	if out := PlotSpeed(samples, 40, 5); !strings.Contains(out, "speed") {
		t.Errorf("speed plot missing caption:\n%s", out)
	}
}

func TestSparklineAndThemes(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	if SparklineChart([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4) == "" {
		t.Error("sparkline empty")
	}

	SetTheme("retro")
	defer SetTheme("cyberpunk")
	if CurrentTheme.Name != "retro" {
		t.Errorf("theme = %s", CurrentTheme.Name)
	}
	if NextTheme().Name != "sunset" || NextTheme().Name != "cyberpunk" {
		t.Error("themes do not cycle")
	}
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("unknown theme should fall back to cyberpunk")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
