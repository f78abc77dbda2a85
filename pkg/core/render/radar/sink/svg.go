package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
)

// HeaderHeight is the space reserved above the chart for a title block.
const HeaderHeight = 70.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	header     bool
	title      string
	subtitle   string
	noTooltips bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithHeader adds a title block above the chart. An empty title falls back
// to the scene title.
func WithHeader(title, subtitle string) SVGOption {
	return func(r *svgRenderer) {
		r.header = true
		r.title = title
		r.subtitle = subtitle
	}
}

// WithoutTooltips drops the tooltip script from interactive styles.
func WithoutTooltips() SVGOption { return func(r *svgRenderer) { r.noTooltips = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s chart.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	title := r.headerTitle(s)
	top := 0.0
	if title != "" {
		top = HeaderHeight
	}
	width, height := s.Width, s.Height+top

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	r.style.RenderDefs(&buf)

	if title != "" {
		renderHeader(&buf, width, title, r.subtitle)
	}
	if !s.Idle {
		fmt.Fprintf(&buf, `  <g class="radar" transform="translate(%.2f, %.2f)">`+"\n",
			s.Geometry.CenterX, s.Geometry.CenterY+top)
		for _, layer := range chart.DrawOrder {
			renderLayer(&buf, r.style, s, layer)
		}
		buf.WriteString("  </g>\n")

		if r.style.Interactive() && !r.noTooltips && len(s.Blips) > 0 {
			renderTooltip(&buf)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) headerTitle(s chart.Scene) string {
	switch {
	case !r.header:
		return ""
	case r.title != "":
		return r.title
	}
	return s.Title
}

func renderLayer(buf *bytes.Buffer, st styles.Style, s chart.Scene, layer chart.Layer) {
	fmt.Fprintf(buf, `   <g class="%s">`+"\n", layer)
	switch layer {
	case chart.LayerWedges:
		for _, w := range s.Wedges {
			st.RenderWedge(buf, w, s.Geometry.Radius)
		}
	case chart.LayerRings:
		for _, ring := range s.Rings {
			st.RenderRing(buf, ring)
		}
	case chart.LayerDividers:
		for _, d := range s.Dividers {
			st.RenderDivider(buf, d)
		}
	case chart.LayerQuadrantLabels:
		for _, l := range s.Labels.Quadrants {
			st.RenderQuadrantLabel(buf, l)
		}
	case chart.LayerRingLabels:
		for _, l := range s.Labels.Rings {
			st.RenderRingLabel(buf, l)
		}
	case chart.LayerBlips:
		for _, b := range s.Blips {
			st.RenderBlip(buf, b)
		}
	}
	buf.WriteString("   </g>\n")
}

func renderHeader(buf *bytes.Buffer, width float64, title, subtitle string) {
	fmt.Fprintf(buf, `  <text class="title" x="%.1f" y="32" text-anchor="middle" font-family="%s" font-size="24" font-weight="bold" fill="#333">%s</text>`+"\n",
		width/2, styles.FontFamily, styles.EscapeXML(title))
	if subtitle != "" {
		fmt.Fprintf(buf, `  <text class="subtitle" x="%.1f" y="54" text-anchor="middle" font-family="%s" font-size="14" fill="#666">%s</text>`+"\n",
			width/2, styles.FontFamily, styles.EscapeXML(subtitle))
	}
}
