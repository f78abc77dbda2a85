package chart

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/techradar/pkg/core/radar/placement"
	"github.com/matzehuels/techradar/pkg/radar"
)

func scenarioInput(entries ...radar.Entry) Input {
	return Input{
		Entries:   entries,
		Rings:     []string{"0-6m", "6-12m", "1-2y", "3y+"},
		Quadrants: []string{"legacy", "platforms"},
		Width:     800,
		Height:    600,
	}
}

func TestBuildSingleLegacyEntry(t *testing.T) {
	s := Build(scenarioInput(radar.Entry{Name: "X", Quadrant: "legacy", Ring: "0-6m"}), WithSeed(42))

	if s.Idle {
		t.Fatal("scene is idle")
	}
	if len(s.Blips) != 1 {
		t.Fatalf("got %d blips, want 1", len(s.Blips))
	}
	b := s.Blips[0]
	m := s.Geometry

	r := b.Point.Radius()
	if r < m.RingScale(0) || r > m.RingScale(0.7)+1e-9 {
		t.Errorf("radius %v outside ringScale([0, 0.7]) = [0, %v]", r, m.RingScale(0.7))
	}
	sector, _ := m.QuadrantAngle(0)
	if !sector.Contains(b.Point.Angle()) {
		t.Errorf("angle %v outside legacy sector %+v", b.Point.Angle(), sector)
	}
	for _, ex := range s.Labels.Exclusions() {
		if ex.Contains(b.Point) {
			t.Errorf("blip %+v inside exclusion zone %+v", b.Point, ex)
		}
	}
	if b.Fill != "#ff3333" || b.Stroke != BlipStroke || b.StrokeWidth != BlipStrokeWidth {
		t.Errorf("blip style = %s/%s/%v", b.Fill, b.Stroke, b.StrokeWidth)
	}
}

func TestBuildSkipsUnknownRing(t *testing.T) {
	s := Build(scenarioInput(
		radar.Entry{Name: "Lost", Quadrant: "legacy", Ring: "unknown-ring"},
		radar.Entry{Name: "Kept", Quadrant: "platforms", Ring: "1-2y"},
		radar.Entry{Name: "Nowhere", Quadrant: "unknown", Ring: "0-6m"},
	), WithSeed(1))

	if len(s.Blips) != 1 || s.Blips[0].Entry.Name != "Kept" {
		t.Fatalf("blips = %+v, want only Kept", s.Blips)
	}
	if s.Blips[0].Index != 1 {
		t.Errorf("Kept index = %d, want 1", s.Blips[0].Index)
	}
	want := []Skip{
		{Index: 0, Name: "Lost", Reason: ReasonUnknownRing},
		{Index: 2, Name: "Nowhere", Reason: ReasonUnknownQuadrant},
	}
	if !reflect.DeepEqual(s.Skipped, want) {
		t.Errorf("Skipped = %+v, want %+v", s.Skipped, want)
	}
}

func TestBuildOnlyUnknownRing(t *testing.T) {
	s := Build(scenarioInput(radar.Entry{Name: "Lost", Quadrant: "legacy", Ring: "unknown-ring"}))
	if len(s.Blips) != 0 {
		t.Errorf("got %d blips, want 0", len(s.Blips))
	}
	if s.Idle {
		t.Error("scene with valid geometry should not be idle")
	}
}

func TestBuildIdle(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"zero viewport", Input{Rings: radar.DefaultRings, Quadrants: []string{"a"}}},
		{"zero width", Input{Rings: radar.DefaultRings, Quadrants: []string{"a"}, Height: 600}},
		{"no quadrants", Input{Rings: radar.DefaultRings, Width: 800, Height: 600}},
		{"no rings", Input{Quadrants: []string{"a"}, Width: 800, Height: 600}},
	}
	for _, tt := range tests {
		tt.in.Entries = []radar.Entry{{Name: "X", Quadrant: "a", Ring: "0-6m"}}
		s := Build(tt.in)
		if !s.Idle {
			t.Errorf("%s: Idle = false, want true", tt.name)
		}
		if len(s.Blips)+len(s.Rings)+len(s.Wedges)+len(s.Labels.Quadrants) != 0 {
			t.Errorf("%s: idle scene has layers", tt.name)
		}
	}
}

func TestBuildLayers(t *testing.T) {
	in := scenarioInput()
	in.Quadrants = []string{"a", "b", "c"}
	s := Build(in)

	if len(s.Rings) != 4 || len(s.Wedges) != 3 || len(s.Dividers) != 3 {
		t.Fatalf("rings=%d wedges=%d dividers=%d", len(s.Rings), len(s.Wedges), len(s.Dividers))
	}
	fills := []string{WedgeFillEven, WedgeFillOdd, WedgeFillEven}
	for i, w := range s.Wedges {
		if w.Fill != fills[i] {
			t.Errorf("wedge %d fill = %s, want %s", i, w.Fill, fills[i])
		}
	}
	for i, d := range s.Dividers {
		if math.Abs(d.End.Radius()-s.Geometry.Radius) > 1e-9 {
			t.Errorf("divider %d ends at radius %v", i, d.End.Radius())
		}
	}
	if s.Rings[0].Band.Inner != 0 {
		t.Errorf("innermost ring has a hole: %+v", s.Rings[0].Band)
	}
	if DrawOrder[0] != LayerWedges || DrawOrder[len(DrawOrder)-1] != LayerBlips {
		t.Errorf("DrawOrder = %v", DrawOrder)
	}
}

func TestBuildDedupesRings(t *testing.T) {
	in := scenarioInput(radar.Entry{Name: "X", Quadrant: "legacy", Ring: "1-2y"})
	in.Rings = []string{"0-6m", "1-2y", "0-6m"}
	s := Build(in)
	if s.Geometry.Rings != 2 {
		t.Errorf("rings = %d, want 2", s.Geometry.Rings)
	}
	if len(s.Blips) != 1 || s.Blips[0].Ring != 1 {
		t.Errorf("blips = %+v", s.Blips)
	}
}

func TestBuildNewEntryStyle(t *testing.T) {
	s := Build(scenarioInput(radar.Entry{Name: "N", Quadrant: "platforms", Ring: "6-12m", IsNew: true}))
	b := s.Blips[0]
	if !b.New || b.Stroke != radar.NewColor || b.StrokeWidth != NewStrokeWidth {
		t.Errorf("new blip = %+v", b)
	}
}

func TestBuildSeedReproducible(t *testing.T) {
	in := scenarioInput(
		radar.Entry{Name: "A", Quadrant: "legacy", Ring: "0-6m"},
		radar.Entry{Name: "B", Quadrant: "platforms", Ring: "3y+"},
	)
	a := Build(in, WithSeed(7))
	b := Build(in, WithSeed(7))
	for i := range a.Blips {
		if a.Blips[i].Point != b.Blips[i].Point {
			t.Errorf("blip %d differs between seeded passes", i)
		}
	}
	if a.ID == b.ID {
		t.Error("every pass should get its own scene ID")
	}
}

func TestBuildInjectedRand(t *testing.T) {
	in := scenarioInput(radar.Entry{Name: "A", Quadrant: "platforms", Ring: "0-6m"})
	in.Quadrants = []string{"a", "platforms", "c", "d"}
	in.Width, in.Height = 1000, 1000
	s := Build(in, WithRand(placement.Sequence(0.5)))

	got := s.Blips[0].Point
	want := 55 * math.Cos(math.Pi/4)
	if math.Abs(got.X-want) > 1e-9 || math.Abs(got.Y-want) > 1e-9 {
		t.Errorf("point = %+v, want (%v, %v)", got, want, want)
	}
}

func TestBuildPrintClearance(t *testing.T) {
	in := scenarioInput(radar.Entry{Name: "A", Quadrant: "b", Ring: "0-6m"})
	in.Quadrants = []string{"a", "b", "c", "d"}
	in.Width, in.Height = 1000, 1000
	s := Build(in, WithRand(placement.Sequence(0)), WithDividerClearance(placement.PrintDividerClearance))
	if s.Blips[0].Tier != placement.TierFallback {
		t.Errorf("tier = %q, want fallback", s.Blips[0].Tier)
	}
}

func TestBlipsByQuadrant(t *testing.T) {
	s := Build(scenarioInput(
		radar.Entry{Name: "A", Quadrant: "platforms", Ring: "0-6m"},
		radar.Entry{Name: "B", Quadrant: "legacy", Ring: "0-6m"},
		radar.Entry{Name: "C", Quadrant: "platforms", Ring: "3y+"},
	))
	groups := s.BlipsByQuadrant()
	if len(groups) != 2 || len(groups[0]) != 1 || len(groups[1]) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[1][0].Entry.Name != "A" || groups[1][1].Entry.Name != "C" {
		t.Errorf("order within quadrant not preserved")
	}
	if b, ok := s.Find(2); !ok || b.Entry.Name != "C" {
		t.Errorf("Find(2) = %+v, %v", b, ok)
	}
	if _, ok := s.Find(9); ok {
		t.Error("Find(9) should miss")
	}
	if got := s.QuadrantName(1); got != "platforms" {
		t.Errorf("QuadrantName(1) = %q", got)
	}
}
