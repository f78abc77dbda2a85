package sink

import (
	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render"
)

type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options to the intermediate SVG.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = append(r.svgOpts, opts...) }
}

// RenderPDF renders the scene as SVG and converts it with rsvg-convert.
// Tooltips are always dropped.
func RenderPDF(s chart.Scene, opts ...PDFOption) ([]byte, error) {
	var r pdfRenderer
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(s, append(r.svgOpts, WithoutTooltips())...)
	return render.ToPDF(svg)
}
