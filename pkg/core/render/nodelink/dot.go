package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/techradar/pkg/core/render"
	"github.com/matzehuels/techradar/pkg/radar"
)

// Options configures the grouped list diagram.
type Options struct {
	// Detailed adds status and extra columns to entry labels.
	// When false, only the entry name is shown.
	Detailed bool
}

// ToDOT converts a dataset to a Graphviz digraph: one cluster per quadrant,
// one node per ring inside it, and an edge from each ring node to its entries.
// Entries with an unknown quadrant or ring are left out, as on the chart.
func ToDOT(d *radar.Dataset, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")

	for q, rings := range d.ByQuadrant() {
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_q%d\" {\n", q)
		fmt.Fprintf(&buf, "    label=%q;\n", radar.DisplayName(d.Quadrants[q]))
		buf.WriteString("    style=\"rounded\";\n    color=\"#cccccc\";\n")
		for r, entries := range rings {
			if len(entries) == 0 {
				continue
			}
			ringID := ringNodeID(q, r)
			color := radar.RingColor(d.Rings[r])
			fmt.Fprintf(&buf, "    %q [label=%q, shape=ellipse, color=%q, penwidth=2];\n", ringID, d.Rings[r], color)
			for _, i := range entries {
				e := d.Entries[i]
				fmt.Fprintf(&buf, "    %q [%s];\n", entryNodeID(i), strings.Join(fmtAttrs(e, fmtLabel(e, opts.Detailed)), ", "))
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for q, rings := range d.ByQuadrant() {
		for r, entries := range rings {
			for _, i := range entries {
				fmt.Fprintf(&buf, "  %q -> %q;\n", ringNodeID(q, r), entryNodeID(i))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func ringNodeID(q, r int) string { return fmt.Sprintf("q%d/r%d", q, r) }

func entryNodeID(i int) string { return "e" + strconv.Itoa(i) }

func fmtLabel(e radar.Entry, detailed bool) string {
	if !detailed {
		return e.Name
	}
	var parts []string
	if e.Status != "" {
		parts = append(parts, "status: "+e.Status)
	}
	for _, k := range slices.Sorted(maps.Keys(e.Extra)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Extra[k]))
	}
	if len(parts) == 0 {
		return e.Name
	}
	return e.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(e radar.Entry, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", radar.RingColor(e.Ring)),
		"fontcolor=white",
	}
	if e.IsNew {
		attrs = append(attrs, fmt.Sprintf("color=%q", radar.NewColor), "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
