package chart

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
	"github.com/matzehuels/techradar/pkg/core/radar/placement"
	"github.com/matzehuels/techradar/pkg/radar"
)

// Skip reasons.
const (
	ReasonUnknownQuadrant = "unknown quadrant"
	ReasonUnknownRing     = "unknown ring"
)

// Input is the full input tuple of a render pass.
type Input struct {
	Title     string
	Entries   []radar.Entry
	Rings     []string
	Quadrants []string
	Width     float64
	Height    float64
}

// InputFrom builds an Input from a dataset and viewport.
func InputFrom(d *radar.Dataset, width, height float64) Input {
	if d == nil {
		return Input{Width: width, Height: height}
	}
	return Input{
		Title:     d.Title,
		Entries:   d.Entries,
		Rings:     d.Rings,
		Quadrants: d.Quadrants,
		Width:     width,
		Height:    height,
	}
}

type config struct {
	rand             placement.Rand
	seed             uint64
	dividerClearance float64
	strategies       []placement.Strategy
	logger           *log.Logger
}

// Option configures Build.
type Option func(*config)

// WithRand sets the placement random source.
func WithRand(r placement.Rand) Option {
	return func(c *config) { c.rand = r }
}

// WithSeed gives every pass its own PCG source seeded with seed, so repeated
// passes over the same input produce the same scene. Zero keeps the
// process-wide source.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithDividerClearance keeps searched blips away from divider lines.
func WithDividerClearance(d float64) Option {
	return func(c *config) { c.dividerClearance = d }
}

// WithStrategies replaces the placement tier list.
func WithStrategies(s ...placement.Strategy) Option {
	return func(c *config) { c.strategies = s }
}

// WithLogger sets the logger for skip and tier reports.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.rand == nil {
		if c.seed != 0 {
			c.rand = placement.NewRand(c.seed)
		} else {
			c.rand = placement.Default()
		}
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Build runs geometry, label placement and blip placement for one pass.
func Build(in Input, opts ...Option) Scene {
	cfg := newConfig(opts)
	rings := dedupe(in.Rings)
	quadrants := dedupe(in.Quadrants)

	m := geometry.New(in.Width, in.Height, len(rings), len(quadrants))
	s := Scene{
		ID:       uuid.NewString(),
		Width:    in.Width,
		Height:   in.Height,
		Title:    in.Title,
		Geometry: m,
		Idle:     m.Idle(),
	}
	if s.Idle {
		cfg.logger.Debug("idle render pass", "width", in.Width, "height", in.Height,
			"rings", len(rings), "quadrants", len(quadrants))
		return s
	}

	for i, name := range rings {
		band, _ := m.RingBounds(i)
		s.Rings = append(s.Rings, Ring{Index: i, Name: name, Color: radar.RingColor(name), Band: band})
	}
	for i, name := range quadrants {
		sector, _ := m.QuadrantAngle(i)
		s.Wedges = append(s.Wedges, Wedge{Index: i, Name: name, Fill: wedgeFill(i), Sector: sector})
		s.Dividers = append(s.Dividers, Divider{
			Index: i,
			Angle: sector.Start,
			End:   geometry.Polar(m.Radius, sector.Start),
		})
	}
	s.Labels = labels.Place(m, quadrants, rings)

	qIndex, rIndex := indexOf(quadrants), indexOf(rings)
	var cells []placement.Cell
	for i, e := range in.Entries {
		q, okQ := qIndex[e.Quadrant]
		r, okR := rIndex[e.Ring]
		switch {
		case !okQ:
			s.Skipped = append(s.Skipped, Skip{Index: i, Name: e.Name, Reason: ReasonUnknownQuadrant})
		case !okR:
			s.Skipped = append(s.Skipped, Skip{Index: i, Name: e.Name, Reason: ReasonUnknownRing})
		default:
			cells = append(cells, placement.Cell{Entry: i, Quadrant: q, Ring: r})
			continue
		}
		cfg.logger.Debug("skipping entry", "name", e.Name, "quadrant", e.Quadrant, "ring", e.Ring,
			"reason", s.Skipped[len(s.Skipped)-1].Reason)
	}

	popts := []placement.Option{
		placement.WithRand(cfg.rand),
		placement.WithDividerClearance(cfg.dividerClearance),
	}
	if len(cfg.strategies) > 0 {
		popts = append(popts, placement.WithStrategies(cfg.strategies...))
	}
	placed := placement.New(m, s.Labels.Exclusions(), popts...).Place(cells)

	s.Blips = make([]Blip, 0, len(placed))
	for _, p := range placed {
		s.Blips = append(s.Blips, newBlip(p.Entry, p.Quadrant, p.Ring, in.Entries[p.Entry], p.Point, p.Tier))
	}

	tally := placement.Tally(placed)
	cfg.logger.Debug("placed blips",
		"blips", len(s.Blips),
		"skipped", len(s.Skipped),
		placement.TierStrict, tally[placement.TierStrict],
		placement.TierRelaxed, tally[placement.TierRelaxed],
		placement.TierFallback, tally[placement.TierFallback])
	return s
}

// dedupe keeps the first occurrence of each name.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func indexOf(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}
