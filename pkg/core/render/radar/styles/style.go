package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
	"github.com/matzehuels/techradar/pkg/errors"
)

// Style names.
const (
	StyleSimple = "simple"
	StylePrint  = "print"
)

// Style renders scene elements as SVG fragments.
type Style interface {
	Name() string
	// Interactive reports whether the style carries hover state and the
	// tooltip script.
	Interactive() bool
	// DividerClearance is the minimum distance searched blips keep from
	// quadrant divider lines. Zero disables the check.
	DividerClearance() float64

	RenderDefs(buf *bytes.Buffer)
	RenderWedge(buf *bytes.Buffer, w chart.Wedge, radius float64)
	RenderRing(buf *bytes.Buffer, r chart.Ring)
	RenderDivider(buf *bytes.Buffer, d chart.Divider)
	RenderQuadrantLabel(buf *bytes.Buffer, l labels.QuadrantLabel)
	RenderRingLabel(buf *bytes.Buffer, l labels.RingLabel)
	RenderBlip(buf *bytes.Buffer, b chart.Blip)
}

// ByName returns the style registered under name.
func ByName(name string) (Style, error) {
	switch name {
	case StyleSimple, "":
		return Simple{}, nil
	case StylePrint:
		return Print{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (must be one of: simple, print)", name)
}

// LayoutOptions returns the chart options a style needs at layout time.
func LayoutOptions(s Style) []chart.Option {
	if d := s.DividerClearance(); d > 0 {
		return []chart.Option{chart.WithDividerClearance(d)}
	}
	return nil
}

// =============================================================================
// Shared element writers
// =============================================================================

func writeWedge(buf *bytes.Buffer, w chart.Wedge, radius float64) {
	fmt.Fprintf(buf, `    <path class="wedge" d="%s" fill="%s" fill-opacity="%.1f"/>`+"\n",
		SectorPath(radius, w.Sector.Start, w.Sector.End), w.Fill, chart.WedgeOpacity)
}

func writeRing(buf *bytes.Buffer, r chart.Ring) {
	fmt.Fprintf(buf, `    <path class="ring" d="%s" fill="%s" fill-opacity="%.1f" fill-rule="evenodd" stroke="%s" stroke-width="%.1f" stroke-opacity="%.1f"/>`+"\n",
		AnnulusPath(r.Band.Inner, r.Band.Outer), r.Color, chart.RingFillOpacity,
		r.Color, chart.RingStrokeWidth, chart.RingStrokeOpacity)
}

func writeDivider(buf *bytes.Buffer, d chart.Divider) {
	fmt.Fprintf(buf, `    <line class="divider" x1="0" y1="0" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-opacity="%.1f"/>`+"\n",
		d.End.X, d.End.Y, chart.DividerColor, chart.DividerWidth, chart.DividerOpacity)
}

func writeQuadrantLabel(buf *bytes.Buffer, l labels.QuadrantLabel, filter string) {
	attr := ""
	if filter != "" {
		attr = fmt.Sprintf(` filter="url(#%s)"`, filter)
	}
	buf.WriteString(`    <g class="quadrant-label">` + "\n")
	fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f" fill="white" stroke="%s" stroke-width="%.0f"%s/>`+"\n",
		l.Box.X, l.Box.Y, l.Box.W, l.Box.H, TileRadius, TileStroke, TileStrokeWidth, attr)
	for i, line := range l.Lines {
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s">%s</text>`+"\n",
			l.Anchor.X, l.LineY(i), FontFamily, QuadrantFontSize, LabelColor, EscapeXML(line))
	}
	buf.WriteString("    </g>\n")
}

func writeRingLabel(buf *bytes.Buffer, l labels.RingLabel) {
	buf.WriteString(`    <g class="ring-label">` + "\n")
	fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f" fill="white" fill-opacity="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		l.Box.X, l.Box.Y, l.Box.W, l.Box.H, RingBoxRadius, RingBoxOpacity, l.Color, RingBoxStrokeWidth)
	fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s" stroke="white" stroke-width="%.1f" paint-order="stroke">%s</text>`+"\n",
		l.Anchor.X, l.Anchor.Y, FontFamily, RingFontSize, l.Color, RingHaloWidth, EscapeXML(l.Name))
	buf.WriteString("    </g>\n")
}

func writeBlipShape(buf *bytes.Buffer, b chart.Blip, indent string) {
	fmt.Fprintf(buf, `%s<circle cx="%.2f" cy="%.2f" r="%.0f" fill="%s" stroke="%s" stroke-width="%.0f"/>`+"\n",
		indent, b.Point.X, b.Point.Y, chart.BlipRadius, b.Fill, b.Stroke, b.StrokeWidth)
	if b.New {
		fmt.Fprintf(buf, `%s<text x="%.2f" y="%.2f" text-anchor="middle" font-size="%.0f" font-weight="bold" fill="%s">%s</text>`+"\n",
			indent, b.Point.X, b.Point.Y-chart.NewGlyphOffset, GlyphFontSize, b.Stroke, chart.NewGlyph)
	}
}

// Compile-time checks.
var (
	_ Style = Simple{}
	_ Style = Print{}
)
