package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render/nodelink"
	"github.com/matzehuels/techradar/pkg/core/render/radar/sink"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/errors"
)

// renderFunc renders one format.
type renderFunc func(format string) ([]byte, error)

// renderAll runs fn for every format concurrently.
func renderAll(ctx context.Context, formats []string, fn renderFunc) (map[string][]byte, error) {
	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fn(format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderScene renders a radar scene in the requested formats.
func RenderScene(ctx context.Context, s chart.Scene, opts Options) (map[string][]byte, error) {
	st, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(st, opts)

	return renderAll(ctx, opts.Formats, func(format string) ([]byte, error) {
		switch format {
		case FormatSVG:
			return sink.RenderSVG(s, svgOpts...), nil
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
			if opts.Header {
				pngOpts = append(pngOpts, sink.WithPNGHeader(headerTitle(s, opts), opts.Subtitle))
			}
			return sink.RenderPNG(s, pngOpts...)
		case FormatPDF:
			return sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			return sink.RenderJSON(s)
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported radar format: %s", format)
	})
}

// RenderNodelink renders a nodelink DOT graph in the requested formats.
func RenderNodelink(ctx context.Context, dot string, quadrants, entries int, opts Options) (map[string][]byte, error) {
	if dot == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nodelink layout missing DOT string")
	}
	return renderAll(ctx, opts.Formats, func(format string) ([]byte, error) {
		switch format {
		case FormatSVG:
			return nodelink.RenderSVG(dot)
		case FormatPNG:
			return nodelink.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			return nodelink.RenderPDF(dot)
		case FormatJSON:
			return nodelink.Export(dot, quadrants, entries).Marshal()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
	})
}

func buildSVGOptions(st styles.Style, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(st)}
	if opts.Header {
		svgOpts = append(svgOpts, sink.WithHeader(opts.Title, opts.Subtitle))
	}
	if opts.NoTooltips {
		svgOpts = append(svgOpts, sink.WithoutTooltips())
	}
	return svgOpts
}

func headerTitle(s chart.Scene, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	return s.Title
}
