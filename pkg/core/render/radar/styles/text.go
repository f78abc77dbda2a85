package styles

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/matzehuels/techradar/pkg/fonts"
)

// Label and glyph metrics.
const (
	QuadrantFontSize   = 14.0
	RingFontSize       = 18.0
	GlyphFontSize      = 12.0
	LabelColor         = "#333"
	TileRadius         = 8.0
	TileStroke         = "#ccc"
	TileStrokeWidth    = 2.0
	RingBoxRadius      = 6.0
	RingBoxOpacity     = 0.9
	RingBoxStrokeWidth = 1.5
	RingHaloWidth      = 0.7
)

// FontFamily is the CSS font stack for all chart text.
const FontFamily = fonts.FontFamily

// EscapeXML escapes text for use in SVG content and attribute values.
func EscapeXML(s string) string {
	return html.EscapeString(s)
}

// SectorPath returns a closed pie-slice path from the origin between two
// angles, clockwise in screen coordinates.
func SectorPath(r, start, end float64) string {
	x1, y1 := r*math.Cos(start), r*math.Sin(start)
	x2, y2 := r*math.Cos(end), r*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	if end-start >= 2*math.Pi-1e-9 {
		// A single quadrant covers the full disc; SVG cannot draw a
		// closed arc with coincident endpoints.
		return AnnulusPath(0, r)
	}
	return fmt.Sprintf("M0,0 L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f Z", x1, y1, r, r, large, x2, y2)
}

// AnnulusPath returns a ring between inner and outer radii, meant for
// fill-rule="evenodd". An inner radius of zero yields a full disc.
func AnnulusPath(inner, outer float64) string {
	var b strings.Builder
	b.WriteString(circlePath(outer))
	if inner > 0 {
		b.WriteString(" ")
		b.WriteString(circlePath(inner))
	}
	return b.String()
}

func circlePath(r float64) string {
	return fmt.Sprintf("M%.2f,0 A%.2f,%.2f 0 1 1 %.2f,0 A%.2f,%.2f 0 1 1 %.2f,0 Z", r, r, r, -r, r, r, r)
}
