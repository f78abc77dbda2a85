package pipeline

import (
	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render/nodelink"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/radar"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ChartOptions returns the chart.Build options for opts: seed or random
// source, the style's layout tweaks, and the logger.
func ChartOptions(opts Options) []chart.Option {
	var copts []chart.Option
	if opts.Rand != nil {
		copts = append(copts, chart.WithRand(opts.Rand))
	} else if opts.Seed != 0 {
		copts = append(copts, chart.WithSeed(opts.Seed))
	}
	if st, err := styles.ByName(opts.Style); err == nil {
		copts = append(copts, styles.LayoutOptions(st)...)
	}
	if opts.Logger != nil {
		copts = append(copts, chart.WithLogger(opts.Logger))
	}
	return copts
}

// BuildScene runs one radar layout pass over d.
func BuildScene(d *radar.Dataset, opts Options) chart.Scene {
	return chart.Build(chart.InputFrom(d, opts.Width, opts.Height), ChartOptions(opts)...)
}

// BuildDOT produces the nodelink graph for d.
func BuildDOT(d *radar.Dataset, opts Options) string {
	return nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})
}
