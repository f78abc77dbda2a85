package placement_test

import (
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
	"github.com/matzehuels/techradar/pkg/core/radar/placement"
	"github.com/matzehuels/techradar/pkg/radar"
)

func ExampleEngine_Place() {
	quadrants := []string{"legacy", "platforms", "resiliency", "culture"}
	m := geometry.New(1000, 1000, len(radar.DefaultRings), len(quadrants))
	set := labels.Place(m, quadrants, radar.DefaultRings)

	e := placement.New(m, set.Exclusions(), placement.WithRand(placement.Sequence(0.5)))
	ps := e.Place([]placement.Cell{
		{Entry: 0, Quadrant: 1, Ring: 0},
		{Entry: 1, Quadrant: 1, Ring: 0},
	})
	for _, p := range ps {
		fmt.Printf("entry %d: (%.2f, %.2f) %s\n", p.Entry, p.Point.X, p.Point.Y, p.Tier)
	}
	// Output:
	// entry 0: (38.89, 38.89) strict
	// entry 1: (38.89, 38.89) relaxed
}
