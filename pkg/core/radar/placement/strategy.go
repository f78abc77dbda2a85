package placement

import (
	"math"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
)

// Strategy is one tier of the placement fallback chain.
type Strategy interface {
	Name() string
	Place(e *Engine, c Cell, acc []Placement) (geometry.Point, bool)
}

// DefaultStrategies returns the strict, relaxed and fallback tiers.
func DefaultStrategies() []Strategy {
	return []Strategy{StrictSearch(), RelaxedSearch(), Fallback{}}
}

// Search samples up to Attempts candidates and accepts the first that clears
// exclusion zones, divider clearance and, when Separate is set, every placed
// blip.
type Search struct {
	Label    string
	Attempts int
	Separate bool
}

// StrictSearch requires blip separation.
func StrictSearch() Search {
	return Search{Label: TierStrict, Attempts: StrictAttempts, Separate: true}
}

// RelaxedSearch drops blip separation.
func RelaxedSearch() Search {
	return Search{Label: TierRelaxed, Attempts: RelaxedAttempts}
}

// Name implements Strategy.
func (s Search) Name() string { return s.Label }

// Place implements Strategy.
func (s Search) Place(e *Engine, c Cell, acc []Placement) (geometry.Point, bool) {
	for range s.Attempts {
		p := e.Sample(c)
		if s.Separate && e.TooClose(p, acc) {
			continue
		}
		if e.Excluded(p) || e.NearDivider(p) {
			continue
		}
		return p, true
	}
	return geometry.Point{}, false
}

// Fallback places the blip near the bottom of the chart inside the cell's
// ring. It always succeeds and may overlap other blips.
type Fallback struct{}

// Name implements Strategy.
func (Fallback) Name() string { return TierFallback }

// Place implements Strategy.
func (Fallback) Place(e *Engine, c Cell, _ []Placement) (geometry.Point, bool) {
	theta := math.Pi/2 + FallbackJitter*(e.Rand()-0.5)
	return geometry.Polar(e.sampleRadius(c.Ring), theta), true
}
