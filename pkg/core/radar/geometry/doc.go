// Package geometry maps ring and quadrant indices to radii and angles.
//
// # Coordinate System
//
// All coordinates are relative to the chart center with y growing downward,
// matching SVG. Angles are in radians. Sector 0 starts at the top of the
// chart (-π/2) and sectors proceed clockwise, so quadrant i occupies
//
//	[i·step − π/2, (i+1)·step − π/2)   where step = 2π / Q
//
// and together the Q sectors tile [−π/2, 3π/2).
//
// # Rings
//
// The chart radius is half the smaller viewport dimension times [FillFactor].
// [Model.RingScale] maps the ring domain [0, N] linearly onto [0, radius].
// [Model.RingBounds] returns contiguous annuli; ring 0 has no inner hole.
//
// # Idle Models
//
// A model built from a zero-sized viewport, an empty ring list or an empty
// quadrant list is idle: there is nothing to draw and callers skip layout.
package geometry
