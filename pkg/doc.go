// Package pkg holds the techradar libraries.
//
// # Overview
//
// techradar renders a technology radar: entries sorted into four quadrants
// and a handful of concentric rings, drawn as colored blips. The pkg
// directory splits into three areas:
//
//  1. [core] - layout (geometry, labels, blip placement, scene assembly)
//     and the renderers that draw a scene
//  2. data plumbing - [source] loaders, [cache], [httputil], [config]
//  3. orchestration - [pipeline] (load → layout → render) and [server]
//
// # Architecture
//
//	spreadsheet / file / MongoDB
//	         ↓
//	    [source] package (parse rows into entries, fallback chain)
//	         ↓
//	    [radar] package (dataset: rings, quadrants, entries)
//	         ↓
//	    [core/radar/chart] package (geometry → labels → blips → scene)
//	         ↓
//	    [core/render/radar/sink] package → SVG/PNG/PDF/JSON
//
// The layout core never performs I/O. It receives a resolved dataset and a
// viewport and returns a [chart.Scene], a plain value that every sink and
// the HTTP server consume.
//
// # Quick Start
//
//	d, _ := source.Dataset(doc, source.Options{})
//	scene := chart.Build(chart.InputFrom(d, 800, 600), chart.WithSeed(7))
//	svg := sink.RenderSVG(scene)
//
// Or through the pipeline, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//		Source:  source.SampleSource{},
//		Seed:    7,
//		Formats: []string{"svg", "png"},
//	})
//
// [core]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core
// [source]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/server
// [chart.Scene]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/radar/chart#Scene
//
// [radar]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/radar
// [core/radar/chart]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/radar/chart
// [core/render/radar/sink]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/render/radar/sink
package pkg
