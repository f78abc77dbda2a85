package labels

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
	"github.com/matzehuels/techradar/pkg/radar"
)

// Quadrant label metrics.
const (
	MaxLineLength = 15
	CharWidth     = 8.0
	LineHeight    = 20.0
	Padding       = 15.0
	SafetyMargin  = 1.1
	LabelDistance = 1.3
)

// Ring label metrics.
const (
	RingLabelOffset    = 10.0
	RingLabelCharWidth = 14.0
	RingLabelHeight    = 28.0
	BaseExclusion      = 40.0
	ExclusionGrowth    = 5.0
)

// Size is a box width and height.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Box is an axis-aligned rectangle given by its top-left corner.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Centered returns a box of size s centered on p.
func Centered(p geometry.Point, s Size) Box {
	return Box{X: p.X - s.W/2, Y: p.Y - s.H/2, W: s.W, H: s.H}
}

// Center returns the box center.
func (b Box) Center() geometry.Point {
	return geometry.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports whether two boxes share interior area.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W && b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Circle is an exclusion zone.
type Circle struct {
	Center geometry.Point `json:"center"`
	R      float64        `json:"r"`
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle) Contains(p geometry.Point) bool {
	return c.Center.Dist(p) < c.R
}

// QuadrantLabel is one placed quadrant tile.
type QuadrantLabel struct {
	Index  int            `json:"index"`
	Name   string         `json:"name"`
	Lines  []string       `json:"lines"`
	Anchor geometry.Point `json:"anchor"`
	Box    Box            `json:"box"`
}

// LineY returns the vertical position of line i, centering the block of
// lines on the anchor.
func (l QuadrantLabel) LineY(i int) float64 {
	return l.Anchor.Y + (float64(i)-float64(len(l.Lines)-1)/2)*LineHeight
}

// RingLabel is one placed ring label.
type RingLabel struct {
	Index     int            `json:"index"`
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Anchor    geometry.Point `json:"anchor"`
	Box       Box            `json:"box"`
	Exclusion Circle         `json:"exclusion"`
}

// Set holds every label of a render pass.
type Set struct {
	Tile      Size            `json:"tile"`
	Quadrants []QuadrantLabel `json:"quadrants"`
	Rings     []RingLabel     `json:"rings"`
}

// Exclusions returns the ring label exclusion zones in ring order.
func (s Set) Exclusions() []Circle {
	out := make([]Circle, len(s.Rings))
	for i, r := range s.Rings {
		out[i] = r.Exclusion
	}
	return out
}

// Wrap splits text into lines of at most maxLen characters, appending words
// greedily. A single word longer than maxLen keeps its own line.
func Wrap(text string, maxLen int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+utf8.RuneCountInString(w)+1 <= maxLen {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// BoxSize measures the tile needed for a set of wrapped lines.
func BoxSize(lines []string) Size {
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	return Size{
		W: float64(longest)*CharWidth + 2*Padding,
		H: float64(len(lines))*LineHeight + 1.5*Padding,
	}
}

// TileSize returns the shared quadrant tile size for names: the largest
// individual box inflated by SafetyMargin and rounded up.
func TileSize(names []string) Size {
	var s Size
	for _, n := range names {
		b := BoxSize(Wrap(radar.DisplayName(n), MaxLineLength))
		s.W = max(s.W, b.W)
		s.H = max(s.H, b.H)
	}
	return Size{W: math.Ceil(s.W * SafetyMargin), H: math.Ceil(s.H * SafetyMargin)}
}

// ExclusionRadius returns the exclusion zone radius of ring i.
func ExclusionRadius(i int) float64 {
	return BaseExclusion + float64(i)*ExclusionGrowth
}

// Place computes every label for a render pass. It returns an empty set for
// an idle model.
func Place(m geometry.Model, quadrants, rings []string) Set {
	if m.Idle() {
		return Set{}
	}
	set := Set{
		Tile:      TileSize(quadrants),
		Quadrants: make([]QuadrantLabel, 0, len(quadrants)),
		Rings:     make([]RingLabel, 0, len(rings)),
	}

	for i, q := range quadrants {
		sector, err := m.QuadrantAngle(i)
		if err != nil {
			break
		}
		anchor := geometry.Polar(m.Radius*LabelDistance, sector.Mid())
		set.Quadrants = append(set.Quadrants, QuadrantLabel{
			Index:  i,
			Name:   q,
			Lines:  Wrap(radar.DisplayName(q), MaxLineLength),
			Anchor: anchor,
			Box:    Centered(anchor, set.Tile),
		})
	}

	for i, r := range rings {
		band, err := m.RingBounds(i)
		if err != nil {
			break
		}
		anchor := geometry.Point{X: 0, Y: -band.Outer - RingLabelOffset}
		size := Size{W: float64(utf8.RuneCountInString(r)) * RingLabelCharWidth, H: RingLabelHeight}
		set.Rings = append(set.Rings, RingLabel{
			Index:     i,
			Name:      r,
			Color:     radar.RingColor(r),
			Anchor:    anchor,
			Box:       Centered(anchor, size),
			Exclusion: Circle{Center: anchor, R: ExclusionRadius(i)},
		})
	}
	return set
}
