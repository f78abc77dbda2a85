package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/config"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// renderOpts holds the render command flags that have no config equivalent.
type renderOpts struct {
	output     string
	vizType    string
	formats    string
	header     bool
	noTooltips bool
	scale      float64
	detailed   bool
	noCache    bool
	src        sourceFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts renderOpts
		cfgF config.RenderConfig
		rad  config.RadarConfig
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the radar to SVG, PNG, PDF or JSON",
		Example: `  techradar render --url "https://docs.google.com/spreadsheets/d/<id>/export?format=csv"
  techradar render --file radar.csv -f svg,png -o out/radar --seed 7
  techradar render -t nodelink --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.src.apply(&cfg.Source); err != nil {
				return err
			}
			overrideRender(cmd, &cfg, cfgF, rad, opts.formats)
			return c.runRender(cmd.Context(), cfg, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default ./radar)")
	f.StringVarP(&opts.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: radar, nodelink")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated)")
	f.Float64Var(&cfgF.Width, "width", 0, "viewport width")
	f.Float64Var(&cfgF.Height, "height", 0, "viewport height")
	f.StringVar(&cfgF.Style, "style", "", "visual style: simple, print")
	f.Uint64Var(&cfgF.Seed, "seed", 0, "placement seed; 0 picks a fresh layout each run")
	f.StringVar(&rad.Title, "title", "", "radar title")
	f.StringVar(&rad.Subtitle, "subtitle", "", "subtitle shown in the header")
	f.StringSliceVar(&rad.Rings, "rings", nil, "ring names, innermost first")
	f.BoolVar(&opts.header, "header", false, "draw a title block above the chart")
	f.BoolVar(&opts.noTooltips, "no-tooltips", false, "omit hover tooltips from SVG output")
	f.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	f.BoolVar(&opts.detailed, "detailed", false, "show status and extra fields (nodelink)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	opts.src.register(cmd)

	return cmd
}

// overrideRender copies explicitly set flags over the loaded config.
func overrideRender(cmd *cobra.Command, cfg *config.Config, r config.RenderConfig, rad config.RadarConfig, formats string) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Render.Width = r.Width
	}
	if flags.Changed("height") {
		cfg.Render.Height = r.Height
	}
	if flags.Changed("style") {
		cfg.Render.Style = r.Style
	}
	if flags.Changed("seed") {
		cfg.Render.Seed = r.Seed
	}
	if flags.Changed("title") {
		cfg.Radar.Title = rad.Title
	}
	if flags.Changed("subtitle") {
		cfg.Radar.Subtitle = rad.Subtitle
	}
	if flags.Changed("rings") {
		cfg.Radar.Rings = rad.Rings
	}
	if formats != "" {
		cfg.Render.Formats = pipeline.ParseFormats(formats)
	}
}

func (c *CLI) runRender(ctx context.Context, cfg config.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, cleanup := c.newSource(ctx, cfg.Source, runner, opts.src.refresh)
	defer cleanup()

	popts := baseOptions(cfg)
	popts.VizType = opts.vizType
	popts.Header = opts.header
	popts.NoTooltips = opts.noTooltips
	popts.Scale = opts.scale
	popts.Detailed = opts.detailed
	popts.Source = src
	popts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering radar...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(opts.output)
	formats := sortedKeys(result.Artifacts)
	for _, format := range formats {
		path := outputPath(opts.output, base, format, len(formats))
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}

	title := result.Dataset.Title
	if title == "" {
		title = "radar"
	}
	printSuccess("Rendered %s", StyleHighlight.Render(title))
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	for _, s := range result.Scene.Skipped {
		printWarning("Skipped %q: %s", s.Name, s.Reason)
	}
	logger.Debug("timings", "load", result.Stats.LoadTime, "layout", result.Stats.LayoutTime, "render", result.Stats.RenderTime)
	return nil
}

// basePath strips a known format extension from output. Empty output maps to
// "radar".
func basePath(output string) string {
	if output == "" {
		return "radar"
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath keeps an explicit single-format output path as given and
// otherwise appends the format extension to base.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
