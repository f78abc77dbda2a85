package placement

import (
	"math"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
)

// Placement constants.
const (
	DefaultMinDistance = 15.0
	StrictAttempts     = 100
	RelaxedAttempts    = 50

	// TopAvoidance is the angular margin cut from quadrants that touch the
	// 12 o'clock seam, where ring labels sit.
	TopAvoidance = math.Pi / 6

	// AngleSpread is the share of a sector used around its bisector.
	AngleSpread = 0.8

	// RingInset and RingSpan bound the radial sample to [0.3, 0.7] of a ring.
	RingInset = 0.3
	RingSpan  = 0.4

	// FallbackJitter is the width, in radians, of the fallback wedge around
	// the bottom of the chart.
	FallbackJitter = 1.0

	// PrintDividerClearance keeps blips off quadrant divider lines in the
	// print variant.
	PrintDividerClearance = 8.0
)

// Tier names recorded on each placement.
const (
	TierStrict   = "strict"
	TierRelaxed  = "relaxed"
	TierFallback = "fallback"
)

// Cell identifies the entry to place and its resolved indices.
type Cell struct {
	Entry    int `json:"entry"`
	Quadrant int `json:"quadrant"`
	Ring     int `json:"ring"`
}

// Placement is the accepted position of one cell.
type Placement struct {
	Cell
	Point geometry.Point `json:"point"`
	Tier  string         `json:"tier"`
}

// Engine places blips for one render pass. Its inputs are read-only; the
// only state threaded between cells is the accumulator passed to Step.
type Engine struct {
	Model            geometry.Model
	Exclusions       []labels.Circle
	MinDistance      float64
	DividerClearance float64
	Strategies       []Strategy
	Rand             Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.Rand = r
		}
	}
}

// WithMinDistance sets the blip separation required by the strict tier.
func WithMinDistance(d float64) Option {
	return func(e *Engine) { e.MinDistance = d }
}

// WithDividerClearance keeps searched positions at least d away from every
// quadrant divider line. Zero disables the check.
func WithDividerClearance(d float64) Option {
	return func(e *Engine) { e.DividerClearance = d }
}

// WithStrategies replaces the tier list.
func WithStrategies(s ...Strategy) Option {
	return func(e *Engine) { e.Strategies = s }
}

// New creates an engine for a model and its label exclusion zones.
func New(m geometry.Model, exclusions []labels.Circle, opts ...Option) *Engine {
	e := &Engine{
		Model:       m,
		Exclusions:  exclusions,
		MinDistance: DefaultMinDistance,
		Strategies:  DefaultStrategies(),
		Rand:        Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Place folds Step over cells in order.
func (e *Engine) Place(cells []Cell) []Placement {
	acc := make([]Placement, 0, len(cells))
	for _, c := range cells {
		acc = e.Step(acc, c)
	}
	return acc
}

// Step places c against the accumulated placements and returns acc extended
// by the new placement.
func (e *Engine) Step(acc []Placement, c Cell) []Placement {
	for _, s := range e.Strategies {
		if p, ok := s.Place(e, c, acc); ok {
			return append(acc, Placement{Cell: c, Point: p, Tier: s.Name()})
		}
	}
	p, _ := Fallback{}.Place(e, c, acc)
	return append(acc, Placement{Cell: c, Point: p, Tier: TierFallback})
}

// Sample draws one candidate position inside cell c.
func (e *Engine) Sample(c Cell) geometry.Point {
	theta := e.sampleAngle(c.Quadrant)
	return geometry.Polar(e.sampleRadius(c.Ring), theta)
}

func (e *Engine) sampleAngle(q int) float64 {
	step := e.Model.AngleStep()
	base := e.Model.DividerAngle(q)
	top := q == 0 || q == e.Model.Quadrants-1
	if span := step - TopAvoidance; top && span > 0 {
		if e.Rand() < 0.5 {
			return base + span*e.Rand()
		}
		return base + TopAvoidance + span*e.Rand()
	}
	return base + step/2 + step*AngleSpread*(e.Rand()-0.5)
}

func (e *Engine) sampleRadius(ring int) float64 {
	return e.Model.RingScale(float64(ring) + RingInset + RingSpan*e.Rand())
}

// TooClose reports whether p is nearer than MinDistance to any placement.
func (e *Engine) TooClose(p geometry.Point, acc []Placement) bool {
	for _, q := range acc {
		if q.Point.Dist(p) < e.MinDistance {
			return true
		}
	}
	return false
}

// Excluded reports whether p falls inside a label exclusion zone.
func (e *Engine) Excluded(p geometry.Point) bool {
	for _, c := range e.Exclusions {
		if c.Contains(p) {
			return true
		}
	}
	return false
}

// NearDivider reports whether p is within DividerClearance of the line
// through any quadrant divider.
func (e *Engine) NearDivider(p geometry.Point) bool {
	if e.DividerClearance <= 0 {
		return false
	}
	for i := 0; i < e.Model.Quadrants; i++ {
		theta := e.Model.DividerAngle(i)
		if math.Abs(p.X*math.Sin(theta)-p.Y*math.Cos(theta)) < e.DividerClearance {
			return true
		}
	}
	return false
}

// Tally counts placements per tier.
func Tally(ps []Placement) map[string]int {
	out := make(map[string]int, 3)
	for _, p := range ps {
		out[p.Tier]++
	}
	return out
}
