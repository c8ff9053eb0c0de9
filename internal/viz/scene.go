package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/scenekit/internal/config"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
)

const minExtent = 10.0

// Viewport maps world coordinates (y up) onto canvas sub-pixels (y down).
type Viewport struct {
	Center physics.Vec2
	Scale  float64 // sub-pixels per world unit
	W, H   int
}

// FitViewport frames points on a w x h sub-pixel canvas with a margin.
func FitViewport(points []physics.Vec2, w, h int) Viewport {
	vp := Viewport{W: w, H: h}
	if len(points) == 0 {
		vp.Scale = float64(min(w, h)) / minExtent
		return vp
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = physics.Vec2{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = physics.Vec2{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	vp.Center = lo.Add(hi).Scale(0.5)
	dx := math.Max(hi.X-lo.X, minExtent) * 1.2
	dy := math.Max(hi.Y-lo.Y, minExtent) * 1.2
	vp.Scale = math.Min(float64(w)/dx, float64(h)/dy)
	return vp
}

func (v Viewport) Project(p physics.Vec2) (int, int) {
	x := float64(v.W)/2 + (p.X-v.Center.X)*v.Scale
	y := float64(v.H)/2 - (p.Y-v.Center.Y)*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

// Frame is one rendered scene: the canvas plus the per-body legend.
type Frame struct {
	Canvas *Canvas
	Legend []string
}

func (f Frame) String() string {
	return f.Canvas.String() + strings.Join(f.Legend, "\n")
}

// RenderScene draws every body of a scene and the joints between them on a
// w x h cell canvas. The watched body is drawn larger.
func RenderScene(e *engine.Engine, scene uint64, w, h int) Frame {
	c := NewCanvas(w, h)
	hnd := e.Handle(scene)
	watched, hasWatch := e.Watcher()

	ids := e.BodyIDs(scene)
	pos := make(map[uint64]physics.Vec2, len(ids))
	points := make([]physics.Vec2, 0, len(ids))
	for _, id := range ids {
		if st, ok := hnd.BodyState(id); ok {
			pos[id] = st.Position
			points = append(points, st.Position)
		}
	}
	vp := FitViewport(points, c.SubWidth(), c.SubHeight())

	seen := make(map[uint64]bool)
	for _, id := range ids {
		for _, jid := range e.JointIDs(id) {
			if seen[jid] {
				continue
			}
			seen[jid] = true
			j, _ := e.Joint(jid)
			a, okA := pos[j.Body1]
			b, okB := pos[j.Body2]
			if okA && okB {
				x0, y0 := vp.Project(a)
				x1, y1 := vp.Project(b)
				c.DrawLine(x0, y0, x1, y1)
			}
		}
	}

	legend := make([]string, 0, len(ids))
	for _, id := range ids {
		p, ok := pos[id]
		if !ok {
			continue
		}
		isWatched := hasWatch && watched == id
		x, y := vp.Project(p)
		r := 1
		if isWatched {
			r = 3
		}
		c.DrawCircle(x, y, r)

		b, _ := e.Body(id)
		glyph, color := "•", ""
		if look, ok := b.Look.(config.LookSpec); ok {
			if look.Glyph != "" {
				glyph = look.Glyph
			}
			color = look.Color
		}
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("#%d", id)
		}
		legend = append(legend, BodyStyle(color, isWatched).Render(fmt.Sprintf("%s %s (%.2f, %.2f)", glyph, name, p.X, p.Y)))
	}
	return Frame{Canvas: c, Legend: legend}
}
