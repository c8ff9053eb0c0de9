package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a driver observer that redraws one scene to a terminal at
// most frameRate times per second.
type LiveRenderer struct {
	out       io.Writer
	scene     uint64
	frameRate int
	lastFrame time.Time
	frames    int
}

func NewLiveRenderer(out io.Writer, scene uint64, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{out: out, scene: scene, frameRate: frameRate}
}

func (r *LiveRenderer) OnTick(e *engine.Engine, tick uint64, t float64) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.frames++

	if _, ok := e.Scene(r.scene); !ok {
		return
	}
	frame := viz.RenderScene(e, r.scene, width, height)

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(frame.Canvas.String())
	b.WriteString(fmt.Sprintf("tick %d  t=%.2fs  bodies=%d  joints=%d\n", tick, t, len(e.BodyIDs(r.scene)), e.JointCount()))
	for _, l := range frame.Legend {
		b.WriteString(l + "\n")
	}
	fmt.Fprint(r.out, b.String())
}

// Frames is the number of frames drawn so far.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
