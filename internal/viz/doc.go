// Package viz draws scenes and recorded runs in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 sub-pixels per cell
//   - [Viewport]: maps world coordinates onto a canvas
//   - [RenderScene]: one frame of a live scene
//   - [PlotSamples]: asciigraph charts of a watched body's trajectory
//   - Theme selection with built-in color schemes
package viz
