package chart_test

import (
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/radar"
)

func ExampleBuild() {
	d := radar.New([]radar.Entry{
		{Name: "Kubernetes", Quadrant: "platforms", Ring: "1-2y"},
		{Name: "React", Quadrant: "legacy", Ring: "6-12m", IsNew: true},
		{Name: "Lost", Quadrant: "legacy", Ring: "someday"},
	}, nil, nil)

	s := chart.Build(chart.InputFrom(d, 800, 600), chart.WithSeed(42))
	fmt.Println("quadrants:", len(s.Wedges), "rings:", len(s.Rings))
	for _, b := range s.Blips {
		fmt.Printf("%s fill=%s stroke=%s\n", b.Entry.Name, b.Fill, b.Stroke)
	}
	for _, sk := range s.Skipped {
		fmt.Printf("skipped %s: %s\n", sk.Name, sk.Reason)
	}
	// Output:
	// quadrants: 2 rings: 4
	// Kubernetes fill=#9999cc stroke=#fff
	// React fill=#ff6666 stroke=#ffcc00
	// skipped Lost: unknown ring
}

func ExamplePositionTooltip() {
	pos := chart.PositionTooltip(chart.Cursor{X: 300, Y: 700, ViewportHeight: 800})
	fmt.Printf("top=%.0f above=%v\n", pos.Top, pos.Above)
	// Output:
	// top=540 above=true
}
