// Package pipeline runs the load → layout → render sequence shared by the
// CLI and the server.
//
// # Stages
//
//  1. Load: pull a Document from a source.Source and validate it into a
//     radar.Dataset
//  2. Layout: build a chart.Scene (radar view) or a DOT graph (nodelink view)
//  3. Render: write the requested formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run on its own through the [Runner]:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  source.SampleSource{},
//	    Formats: []string{"svg", "png"},
//	    Seed:    7,
//	})
//	svg := result.Artifacts["svg"]
//
// # Caching
//
// Placement is random. Scenes and artifacts are therefore cached only for
// seeded runs, where the same input always produces the same output.
// Unseeded runs recompute every time.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/radar/placement"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0

	// DefaultStyle is the default visual style.
	DefaultStyle = styles.StyleSimple
)

// Visualization types.
const (
	VizTypeRadar    = "radar"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeRadar

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	styles.StyleSimple: true,
	styles.StylePrint:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeRadar:    true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It supports JSON for server requests.
type Options struct {
	// Load options
	Title     string   `json:"title,omitempty"`
	Rings     []string `json:"rings,omitempty"`
	Quadrants []string `json:"quadrants,omitempty"`

	// Layout options
	VizType string  `json:"viz_type,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Seed    uint64  `json:"seed,omitempty"` // 0 = time-seeded, not reproducible
	Style   string  `json:"style,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Subtitle   string   `json:"subtitle,omitempty"`
	Header     bool     `json:"header,omitempty"`
	NoTooltips bool     `json:"no_tooltips,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // nodelink labels with status and extras

	// Runtime options (not serialized)
	Source source.Source  `json:"-"`
	Logger *log.Logger    `json:"-"`
	Rand   placement.Rand `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset     *radar.Dataset
	DatasetHash string

	// Scene is set for the radar view, DOT for the nodelink view.
	Scene chart.Scene
	DOT   string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entries    int
	Placed     int
	Skipped    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, print)", style)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: radar, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all stages and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the fields needed to load a dataset.
func (o *Options) ValidateForLoad() error {
	if o.Source == nil {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if len(o.Rings) > 0 {
		if err := errors.ValidateRings(o.Rings); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = DefaultWidth, DefaultHeight
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
// A zero viewport is valid and yields an idle scene; a negative one is not.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return errors.ValidateViewport(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsNodelink reports whether this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// Reproducible reports whether the same input always renders the same
// output, which makes scenes and artifacts cacheable. Nodelink output has no
// random placement; the radar view needs a seed and the built-in source.
func (o *Options) Reproducible() bool {
	if o.IsNodelink() {
		return true
	}
	return o.Seed != 0 && o.Rand == nil
}

// SourceOptions returns the dataset overrides for source.Dataset.
func (o *Options) SourceOptions() source.Options {
	return source.Options{Title: o.Title, Rings: o.Rings, Quadrants: o.Quadrants}
}

// SceneKeyOpts returns cache key options for layout computation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
		Style:  o.Style,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Scene:    o.SceneKeyOpts(),
		VizType:  o.VizType,
		Format:   format,
		Tooltips: !o.NoTooltips,
	}
	if o.Header {
		k.Title, k.Subtitle = o.Title, o.Subtitle
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if o.IsNodelink() {
		k.Detailed = o.Detailed
	}
	return k
}
