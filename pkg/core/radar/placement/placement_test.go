package placement

import (
	"math"
	"testing"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
	"github.com/matzehuels/techradar/pkg/radar"
)

const eps = 1e-9

func newEngine(w, h float64, rings, quadrants []string, opts ...Option) *Engine {
	m := geometry.New(w, h, len(rings), len(quadrants))
	set := labels.Place(m, quadrants, rings)
	return New(m, set.Exclusions(), opts...)
}

func cells(n, quadrant, ring int) []Cell {
	out := make([]Cell, n)
	for i := range out {
		out[i] = Cell{Entry: i, Quadrant: quadrant, Ring: ring}
	}
	return out
}

func TestSequenceCycles(t *testing.T) {
	r := Sequence(0.1, 0.2)
	got := []float64{r(), r(), r()}
	want := []float64{0.1, 0.2, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d = %v, want %v", i, got[i], want[i])
		}
	}
	if v := Sequence()(); v != 0.5 {
		t.Errorf("empty Sequence() = %v, want 0.5", v)
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 10; i++ {
		if x, y := a(), b(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestStepExactCoordinates(t *testing.T) {
	// Quadrant 1 of 4 is not a top quadrant: angle = bisector + 0.8·step·(r−0.5).
	// With every draw at 0.5 the blip sits on the bisector (π/4) halfway
	// through ring 0: radius = ringScale(0.5) = 55 for a 1000x1000 viewport.
	e := newEngine(1000, 1000, radar.DefaultRings, []string{"a", "b", "c", "d"}, WithRand(Sequence(0.5)))

	got := e.Place([]Cell{{Entry: 0, Quadrant: 1, Ring: 0}})
	if len(got) != 1 {
		t.Fatalf("got %d placements, want 1", len(got))
	}
	want := geometry.Polar(55, math.Pi/4)
	if math.Abs(got[0].Point.X-want.X) > eps || math.Abs(got[0].Point.Y-want.Y) > eps {
		t.Errorf("point = %+v, want %+v", got[0].Point, want)
	}
	if got[0].Tier != TierStrict {
		t.Errorf("tier = %q, want %q", got[0].Tier, TierStrict)
	}
}

func TestStepRelaxedWhenCrowded(t *testing.T) {
	// A constant source always proposes the same point, so the second blip
	// can never satisfy separation and drops to the relaxed tier.
	e := newEngine(1000, 1000, radar.DefaultRings, []string{"a", "b", "c", "d"}, WithRand(Sequence(0.5)))

	got := e.Place(cells(2, 1, 0))
	if got[0].Tier != TierStrict || got[1].Tier != TierRelaxed {
		t.Errorf("tiers = %q, %q; want strict, relaxed", got[0].Tier, got[1].Tier)
	}
	if got[0].Point != got[1].Point {
		t.Errorf("relaxed placement moved: %+v vs %+v", got[0].Point, got[1].Point)
	}
}

func TestStepFallback(t *testing.T) {
	m := geometry.New(1000, 1000, 4, 4)
	everywhere := []labels.Circle{{Center: geometry.Point{}, R: 10000}}
	e := New(m, everywhere, WithRand(Sequence(0.5)))

	got := e.Place(cells(1, 0, 0))
	if got[0].Tier != TierFallback {
		t.Fatalf("tier = %q, want %q", got[0].Tier, TierFallback)
	}
	// Fallback angle π/2 (straight down), radius ringScale(0.5) = 55.
	if math.Abs(got[0].Point.X) > eps || math.Abs(got[0].Point.Y-55) > eps {
		t.Errorf("fallback point = %+v, want (0, 55)", got[0].Point)
	}
}

func TestStepAppendsFallbackToCustomStrategies(t *testing.T) {
	m := geometry.New(1000, 1000, 4, 4)
	everywhere := []labels.Circle{{Center: geometry.Point{}, R: 10000}}
	e := New(m, everywhere, WithRand(Sequence(0.5)), WithStrategies(StrictSearch()))

	got := e.Place(cells(1, 2, 1))
	if len(got) != 1 || got[0].Tier != TierFallback {
		t.Errorf("got %+v, want one fallback placement", got)
	}
}

func TestDividerClearance(t *testing.T) {
	// Draws of 0 put the angle 0.4·step before the bisector of quadrant 1,
	// about 5px below the horizontal divider at radius 33.
	quadrants := []string{"a", "b", "c", "d"}

	plain := newEngine(1000, 1000, radar.DefaultRings, quadrants, WithRand(Sequence(0)))
	if got := plain.Place(cells(1, 1, 0)); got[0].Tier != TierStrict {
		t.Errorf("without clearance tier = %q, want strict", got[0].Tier)
	}

	printed := newEngine(1000, 1000, radar.DefaultRings, quadrants,
		WithRand(Sequence(0)), WithDividerClearance(PrintDividerClearance))
	got := printed.Place(cells(1, 1, 0))
	if got[0].Tier != TierFallback {
		t.Errorf("with clearance tier = %q, want fallback", got[0].Tier)
	}
}

func TestNearDivider(t *testing.T) {
	e := New(geometry.New(1000, 1000, 4, 4), nil, WithDividerClearance(8))
	tests := []struct {
		p    geometry.Point
		want bool
	}{
		{geometry.Point{X: 100, Y: 5}, true},   // near the horizontal divider
		{geometry.Point{X: -7, Y: -100}, true}, // near the vertical divider
		{geometry.Point{X: 50, Y: 50}, false},
	}
	for _, tt := range tests {
		if got := e.NearDivider(tt.p); got != tt.want {
			t.Errorf("NearDivider(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	e.DividerClearance = 0
	if e.NearDivider(geometry.Point{X: 100, Y: 0}) {
		t.Error("NearDivider with zero clearance should be false")
	}
}

func TestSampleStaysInCell(t *testing.T) {
	quadrants := []string{"a", "b", "c", "d", "e"}
	e := newEngine(800, 600, radar.DefaultRings, quadrants, WithRand(NewRand(3)))

	for q := range quadrants {
		sector, _ := e.Model.QuadrantAngle(q)
		for r := range radar.DefaultRings {
			band, _ := e.Model.RingBounds(r)
			lo := e.Model.RingScale(float64(r) + RingInset)
			hi := e.Model.RingScale(float64(r) + RingInset + RingSpan)
			for i := 0; i < 200; i++ {
				p := e.Sample(Cell{Quadrant: q, Ring: r})
				if !sector.Contains(p.Angle()) {
					t.Fatalf("q=%d r=%d: angle %v outside %+v", q, r, p.Angle(), sector)
				}
				rad := p.Radius()
				if !band.Contains(rad) || rad < lo-eps || rad > hi+eps {
					t.Fatalf("q=%d r=%d: radius %v outside [%v, %v]", q, r, rad, lo, hi)
				}
			}
		}
	}
}

func TestPlacementSeparation(t *testing.T) {
	quadrants := []string{"a", "b", "c", "d"}
	for _, k := range []int{1, 5, 20} {
		e := newEngine(1200, 1200, radar.DefaultRings, quadrants, WithRand(NewRand(42)))
		got := e.Place(cells(k, 1, 3))
		if len(got) != k {
			t.Fatalf("k=%d: got %d placements", k, len(got))
		}
		for i := range got {
			if got[i].Tier != TierStrict {
				t.Errorf("k=%d: placement %d used tier %q", k, i, got[i].Tier)
			}
			for j := i + 1; j < len(got); j++ {
				if d := got[i].Point.Dist(got[j].Point); d < DefaultMinDistance {
					t.Errorf("k=%d: placements %d and %d are %v apart", k, i, j, d)
				}
			}
		}
	}
}

func TestPlacementStress(t *testing.T) {
	// One ring, one quadrant, 200 entries in the same cell.
	e := newEngine(400, 400, []string{"now"}, []string{"all"}, WithRand(NewRand(1)))
	got := e.Place(cells(200, 0, 0))
	if len(got) != 200 {
		t.Fatalf("got %d placements, want 200", len(got))
	}
	for i, p := range got {
		if !p.Point.IsFinite() {
			t.Fatalf("placement %d is not finite: %+v", i, p.Point)
		}
		if p.Entry != i {
			t.Fatalf("placement %d belongs to entry %d", i, p.Entry)
		}
	}
	tally := Tally(got)
	if tally[TierStrict]+tally[TierRelaxed]+tally[TierFallback] != 200 {
		t.Errorf("tally = %v, want 200 total", tally)
	}
}

func TestPlacementAvoidsExclusions(t *testing.T) {
	quadrants := []string{"legacy", "platforms"}
	e := newEngine(800, 600, radar.DefaultRings, quadrants, WithRand(NewRand(9)))
	got := e.Place(cells(30, 0, 0))
	for i, p := range got {
		if p.Tier == TierFallback {
			continue
		}
		if e.Excluded(p.Point) {
			t.Errorf("placement %d at %+v is inside an exclusion zone", i, p.Point)
		}
	}
}
