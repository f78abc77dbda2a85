package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/fonts"
)

// DefaultScale is the PNG pixel density.
const DefaultScale = 2.0

type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	title    string
	subtitle string
}

// WithScale sets the pixel density. Values <= 0 are ignored.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGHeader adds a title block above the chart.
func WithPNGHeader(title, subtitle string) PNGOption {
	return func(r *pngRenderer) { r.title, r.subtitle = title, subtitle }
}

// RenderPNG rasterizes the scene natively. The output matches the print
// look: no shadows and no hover state.
func RenderPNG(s chart.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}

	top := 0.0
	if r.title != "" {
		top = HeaderHeight
	}
	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil((s.Height + top) * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	if r.title != "" {
		if err := drawHeader(dc, s.Width, r.title, r.subtitle); err != nil {
			return nil, err
		}
	}
	if !s.Idle {
		dc.Translate(s.Geometry.CenterX, s.Geometry.CenterY+top)
		for _, layer := range chart.DrawOrder {
			if err := drawLayer(dc, s, layer); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLayer(dc *gg.Context, s chart.Scene, layer chart.Layer) error {
	switch layer {
	case chart.LayerWedges:
		for _, w := range s.Wedges {
			dc.MoveTo(0, 0)
			dc.DrawArc(0, 0, s.Geometry.Radius, w.Sector.Start, w.Sector.End)
			dc.ClosePath()
			dc.SetColor(hexColor(w.Fill, chart.WedgeOpacity))
			dc.Fill()
		}
	case chart.LayerRings:
		dc.SetFillRuleEvenOdd()
		for _, ring := range s.Rings {
			dc.DrawCircle(0, 0, ring.Band.Outer)
			if ring.Band.Inner > 0 {
				dc.NewSubPath()
				dc.DrawCircle(0, 0, ring.Band.Inner)
			}
			dc.SetColor(hexColor(ring.Color, chart.RingFillOpacity))
			dc.FillPreserve()
			dc.SetColor(hexColor(ring.Color, chart.RingStrokeOpacity))
			dc.SetLineWidth(chart.RingStrokeWidth)
			dc.Stroke()
		}
		dc.SetFillRuleWinding()
	case chart.LayerDividers:
		dc.SetColor(hexColor(chart.DividerColor, chart.DividerOpacity))
		dc.SetLineWidth(chart.DividerWidth)
		for _, d := range s.Dividers {
			dc.DrawLine(0, 0, d.End.X, d.End.Y)
			dc.Stroke()
		}
	case chart.LayerQuadrantLabels:
		face, err := fonts.Face(fonts.Bold, styles.QuadrantFontSize)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		for _, l := range s.Labels.Quadrants {
			dc.DrawRoundedRectangle(l.Box.X, l.Box.Y, l.Box.W, l.Box.H, styles.TileRadius)
			dc.SetColor(color.White)
			dc.FillPreserve()
			dc.SetColor(hexColor(styles.TileStroke, 1))
			dc.SetLineWidth(styles.TileStrokeWidth)
			dc.Stroke()
			dc.SetColor(hexColor(styles.LabelColor, 1))
			for i, line := range l.Lines {
				dc.DrawStringAnchored(line, l.Anchor.X, l.LineY(i), 0.5, 0.35)
			}
		}
	case chart.LayerRingLabels:
		face, err := fonts.Face(fonts.Bold, styles.RingFontSize)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		for _, l := range s.Labels.Rings {
			dc.DrawRoundedRectangle(l.Box.X, l.Box.Y, l.Box.W, l.Box.H, styles.RingBoxRadius)
			dc.SetColor(color.NRGBA{255, 255, 255, alpha(styles.RingBoxOpacity)})
			dc.FillPreserve()
			dc.SetColor(hexColor(l.Color, 1))
			dc.SetLineWidth(styles.RingBoxStrokeWidth)
			dc.Stroke()
			dc.DrawStringAnchored(l.Name, l.Anchor.X, l.Anchor.Y, 0.5, 0.35)
		}
	case chart.LayerBlips:
		for _, b := range s.Blips {
			dc.DrawCircle(b.Point.X, b.Point.Y, chart.BlipRadius)
			dc.SetColor(hexColor(b.Fill, 1))
			dc.FillPreserve()
			dc.SetColor(hexColor(b.Stroke, 1))
			dc.SetLineWidth(b.StrokeWidth)
			dc.Stroke()
			if b.New {
				drawStar(dc, b.Point.X, b.Point.Y-chart.NewGlyphOffset, styles.GlyphFontSize/2)
				dc.SetColor(hexColor(b.Stroke, 1))
				dc.Fill()
			}
		}
	}
	return nil
}

func drawHeader(dc *gg.Context, width float64, title, subtitle string) error {
	face, err := fonts.Face(fonts.Bold, 24)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(hexColor("#333", 1))
	dc.DrawStringAnchored(title, width/2, 32, 0.5, 0)
	if subtitle == "" {
		return nil
	}
	face, err = fonts.Face(fonts.Regular, 14)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(hexColor("#666", 1))
	dc.DrawStringAnchored(subtitle, width/2, 54, 0.5, 0)
	return nil
}

// drawStar traces a five-pointed star of outer radius r centered on (x, y).
func drawStar(dc *gg.Context, x, y, r float64) {
	for i := 0; i < 10; i++ {
		rad := r
		if i%2 == 1 {
			rad = r * 0.4
		}
		theta := -math.Pi/2 + float64(i)*math.Pi/5
		dc.LineTo(x+rad*math.Cos(theta), y+rad*math.Sin(theta))
	}
	dc.ClosePath()
}

// hexColor parses #rgb or #rrggbb with the given opacity. Malformed input
// yields opaque gray.
func hexColor(s string, opacity float64) color.NRGBA {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if len(h) != 6 || err != nil {
		return color.NRGBA{0x99, 0x99, 0x99, 0xff}
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), alpha(opacity)}
}

func alpha(opacity float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
}
