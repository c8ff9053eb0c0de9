package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/viz"
)

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasSVG(c, 10, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("circles = %d, want 2", n)
	}
	if !strings.Contains(svg, `width="40" height="40"`) {
		t.Errorf("bad size in %q", svg[:200])
	}
	if !strings.Contains(svg, `cx="35.0" cy="35.0"`) {
		t.Error("missing dot at sub-pixel (3,3)")
	}
	if CanvasSVG(nil, 1, "") != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestTrajectorySVG(t *testing.T) {
	var samples []driver.Sample
	for i := range 5 {
		samples = append(samples, driver.Sample{
			Tick:  uint64(i),
			State: physics.BodyState{Position: physics.Vec2{X: float64(i), Y: float64(i * i)}},
		})
	}
	svg := TrajectorySVG(samples, 200, 100, "#ff00ff")
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, `stroke="#ff00ff"`) {
		t.Error("missing header or stroke")
	}
	if n := strings.Count(svg, " L"); n != 4 {
		t.Errorf("segments = %d, want 4", n)
	}
	// first point sits at the padded lower left corner
	if !strings.Contains(svg, `d="M16.7,91.7`) {
		t.Errorf("unexpected start in %s", svg)
	}
	if TrajectorySVG(samples[:1], 10, 10, "red") != "" {
		t.Error("single sample should give empty output")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := WriteFile(path, ""); err == nil {
		t.Error("expected error for empty svg")
	}
	if err := WriteFile(path, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("read %q, %v", data, err)
	}
}
