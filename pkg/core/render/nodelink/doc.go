// Package nodelink renders a radar as a grouped list diagram using Graphviz.
//
// The radar chart scatters blips inside their cells, which is good for an
// overview but hard to scan. The nodelink view lays the same data out as a
// left-to-right graph: one cluster per quadrant, a ring node inside each
// cluster, and an edge from every ring node to its entries. Entry nodes are
// filled with their ring color and new entries get a yellow outline.
//
// # Architecture
//
// Graphviz handles layout and rendering in one step, so the DOT string is the
// intermediate representation:
//
//	Radar:    Dataset → chart.Build() → Scene → sink.RenderSVG() → SVG
//	Nodelink: Dataset → ToDOT() → DOT → RenderSVG() → SVG
//
// [Export] wraps the DOT string for JSON output and [Parse] reads it back.
//
// # Usage
//
//	dot := nodelink.ToDOT(dataset, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// PDF and PNG go through rsvg-convert like the radar sink.
package nodelink
