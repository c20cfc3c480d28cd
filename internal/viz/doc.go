// Package viz renders the drop scene in a terminal.
//
// The live view is a Bubble Tea program whose tick command plays the role of
// the display refresh: every tick schedules the next one and then runs one
// frame of the loop.
//
//   - [Model]: live view with a wireframe scene, stats and a height graph
//   - [Canvas]: Braille canvas, 2x4 sub-pixels per cell
//   - [Camera]: orbit camera projecting world points onto the canvas
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the scene from its config
//	T     - Cycle color themes
//	x/y/z - Rotate camera (shift reverses)
//	+/-   - Zoom
//	?     - Show help
package viz
