// Package sink provides output format renderers for radar scenes.
//
// # Overview
//
// A "sink" turns a [chart.Scene] into a final output format:
//
//   - SVG: vector output, interactive with the [styles.Simple] style
//   - PNG: native raster output drawn with github.com/fogleman/gg
//   - PDF: print output (requires rsvg-convert)
//   - JSON: the scene itself, for clients that draw on their own
//
// # SVG Output
//
// [RenderSVG] stacks the scene layers in [chart.DrawOrder]. With an
// interactive style it also embeds the tooltip: hovering a blip shows its
// name, badges and description below the pointer, or above it when the box
// would run past the bottom of the chart. Clicking a blip dispatches a
// "radar:select" event carrying the entry index.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithStyle(styles.Print{}),
//	    sink.WithHeader("Tech Radar", "Q3 review"),
//	)
//
// An idle scene renders as an empty canvas of the scene size.
//
// # PDF and PNG Output
//
// [RenderPDF] converts the SVG with [render.ToPDF] and needs librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [RenderPNG] has no external requirements; it draws with the embedded Go
// fonts from [fonts].
//
// [chart.Scene]: github.com/matzehuels/techradar/pkg/core/radar/chart.Scene
// [chart.DrawOrder]: github.com/matzehuels/techradar/pkg/core/radar/chart.DrawOrder
// [styles.Simple]: github.com/matzehuels/techradar/pkg/core/render/radar/styles.Simple
// [render.ToPDF]: github.com/matzehuels/techradar/pkg/core/render.ToPDF
// [fonts]: github.com/matzehuels/techradar/pkg/fonts
package sink
