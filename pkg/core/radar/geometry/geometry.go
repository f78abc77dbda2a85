package geometry

import (
	"math"

	"github.com/matzehuels/techradar/pkg/errors"
)

// FillFactor is the share of the half-viewport the outermost ring reaches.
const FillFactor = 0.88

// Point is a position relative to the chart center.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polar converts a radius and angle to a point.
func Polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Radius returns the distance from the chart center.
func (p Point) Radius() float64 { return math.Hypot(p.X, p.Y) }

// Angle returns the point's angle normalized to [−π/2, 3π/2).
func (p Point) Angle() float64 { return NormalizeAngle(math.Atan2(p.Y, p.X)) }

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Band is the radial extent of one ring.
type Band struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Contains reports whether r lies in [Inner, Outer).
func (b Band) Contains(r float64) bool { return r >= b.Inner && r < b.Outer }

// Sector is the angular extent of one quadrant.
type Sector struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Mid returns the bisecting angle.
func (s Sector) Mid() float64 { return (s.Start + s.End) / 2 }

// Width returns the angular width.
func (s Sector) Width() float64 { return s.End - s.Start }

// Contains reports whether theta, normalized, lies in [Start, End).
func (s Sector) Contains(theta float64) bool {
	theta = NormalizeAngle(theta)
	return theta >= s.Start && theta < s.End
}

// NormalizeAngle maps theta into [−π/2, 3π/2).
func NormalizeAngle(theta float64) float64 {
	const lo = -math.Pi / 2
	t := math.Mod(theta-lo, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return t + lo
}

// Model holds the constants of one render pass.
type Model struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	CenterX   float64 `json:"center_x"`
	CenterY   float64 `json:"center_y"`
	Radius    float64 `json:"radius"`
	Rings     int     `json:"rings"`
	Quadrants int     `json:"quadrants"`
}

// New derives the model for a viewport and ring/quadrant counts.
func New(width, height float64, rings, quadrants int) Model {
	m := Model{
		Width:     width,
		Height:    height,
		CenterX:   width / 2,
		CenterY:   height / 2,
		Rings:     max(rings, 0),
		Quadrants: max(quadrants, 0),
	}
	if width > 0 && height > 0 {
		m.Radius = min(width, height) / 2 * FillFactor
	}
	return m
}

// Idle reports whether there is nothing to lay out.
func (m Model) Idle() bool {
	return m.Radius <= 0 || m.Rings == 0 || m.Quadrants == 0
}

// RingScale maps the ring domain [0, Rings] linearly onto [0, Radius].
// Fractional values address positions inside a ring.
func (m Model) RingScale(v float64) float64 {
	if m.Rings == 0 {
		return 0
	}
	return v / float64(m.Rings) * m.Radius
}

// RingBounds returns the annulus of ring i. Ring 0 starts at the center.
func (m Model) RingBounds(i int) (Band, error) {
	if i < 0 || i >= m.Rings {
		return Band{}, errors.New(errors.ErrCodeOutOfRange, "ring index %d outside [0, %d)", i, m.Rings)
	}
	b := Band{Outer: m.RingScale(float64(i + 1))}
	if i > 0 {
		b.Inner = m.RingScale(float64(i))
	}
	return b, nil
}

// AngleStep returns the angular width of one quadrant.
func (m Model) AngleStep() float64 {
	if m.Quadrants == 0 {
		return 0
	}
	return 2 * math.Pi / float64(m.Quadrants)
}

// QuadrantAngle returns the sector of quadrant i.
func (m Model) QuadrantAngle(i int) (Sector, error) {
	if i < 0 || i >= m.Quadrants {
		return Sector{}, errors.New(errors.ErrCodeOutOfRange, "quadrant index %d outside [0, %d)", i, m.Quadrants)
	}
	step := m.AngleStep()
	start := float64(i)*step - math.Pi/2
	return Sector{Start: start, End: start + step}, nil
}

// DividerAngle returns the angle of the divider line that opens quadrant i.
func (m Model) DividerAngle(i int) float64 {
	return float64(i)*m.AngleStep() - math.Pi/2
}

// SectorOf returns the quadrant whose sector contains theta.
func (m Model) SectorOf(theta float64) int {
	if m.Quadrants == 0 {
		return -1
	}
	t := NormalizeAngle(theta) + math.Pi/2
	i := int(t / m.AngleStep())
	return min(i, m.Quadrants-1)
}

// RingOf returns the ring whose band contains radius r, or -1 outside the chart.
func (m Model) RingOf(r float64) int {
	if m.Rings == 0 || r < 0 || r >= m.Radius {
		return -1
	}
	return min(int(r/m.Radius*float64(m.Rings)), m.Rings-1)
}

// ToScreen translates a center-relative point to viewport coordinates.
func (m Model) ToScreen(p Point) Point {
	return Point{X: p.X + m.CenterX, Y: p.Y + m.CenterY}
}
