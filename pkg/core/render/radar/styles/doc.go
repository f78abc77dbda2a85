// Package styles defines visual styles for radar rendering.
//
// # Overview
//
// A [Style] writes the SVG for each scene element. The sink decides what is
// drawn and in which order ([chart.DrawOrder]); the style decides how it looks.
//
//   - [Simple]: the interactive screen style with drop shadows, hover
//     enlargement and a tooltip script
//   - [Print]: a flat style for paper with no filters or script. It keeps
//     blips clear of the quadrant dividers.
//
// # Coordinates
//
// Styles receive scene coordinates, which are relative to the chart center.
// The sink wraps all elements in a group translated to the center.
//
// # Creating Custom Styles
//
// Implement [Style] and pass it to the sink:
//
//	svg := sink.RenderSVG(scene, sink.WithStyle(MyStyle{}))
//
// [chart.DrawOrder]: github.com/matzehuels/techradar/pkg/core/radar/chart.DrawOrder
package styles
