package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/scenekit/internal/driver"
)

// PlotSamples charts the x and y position of a recorded body over time.
func PlotSamples(samples []driver.Sample, width, height int) string {
	if len(samples) < 2 {
		return Subtle.Render("not enough samples to plot")
	}
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.State.Position.X
		ys[i] = s.State.Position.Y
	}
	return asciigraph.PlotMany([][]float64{xs, ys},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("position x (red), y (blue)"))
}

// PlotSpeed charts the speed of a recorded body.
func PlotSpeed(samples []driver.Sample, width, height int) string {
	if len(samples) < 2 {
		return Subtle.Render("not enough samples to plot")
	}
	speeds := make([]float64, len(samples))
	for i, s := range samples {
		speeds[i] = s.State.Velocity.Length()
	}
	return PlotSeries(speeds, "speed", width, height)
}

func PlotSeries(values []float64, caption string, width, height int) string {
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
}
