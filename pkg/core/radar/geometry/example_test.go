package geometry_test

import (
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
)

func ExampleModel_RingBounds() {
	m := geometry.New(1000, 1000, 4, 4)
	for i := 0; i < m.Rings; i++ {
		b, _ := m.RingBounds(i)
		fmt.Printf("ring %d: %.0f-%.0f\n", i, b.Inner, b.Outer)
	}
	// Output:
	// ring 0: 0-110
	// ring 1: 110-220
	// ring 2: 220-330
	// ring 3: 330-440
}

func ExampleModel_QuadrantAngle() {
	m := geometry.New(800, 600, 4, 4)
	s, _ := m.QuadrantAngle(1)
	fmt.Printf("start=%.4f end=%.4f mid=%.4f\n", s.Start, s.End, s.Mid())
	// Output:
	// start=0.0000 end=1.5708 mid=0.7854
}
