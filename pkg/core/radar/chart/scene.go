package chart

import (
	"github.com/matzehuels/techradar/pkg/core/radar/geometry"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
	"github.com/matzehuels/techradar/pkg/radar"
)

// Visual constants shared by every sink.
const (
	BlipRadius        = 5.0
	BlipHoverRadius   = 8.0
	BlipStroke        = "#fff"
	BlipStrokeWidth   = 1.0
	NewStrokeWidth    = 2.0
	NewGlyph          = "★"
	NewGlyphOffset    = 10.0
	WedgeFillEven     = "#f8f8f8"
	WedgeFillOdd      = "#f0f0f0"
	WedgeOpacity      = 0.4
	DividerColor      = "#666"
	DividerWidth      = 2.5
	DividerOpacity    = 0.8
	RingFillOpacity   = 0.2
	RingStrokeWidth   = 2.0
	RingStrokeOpacity = 0.7
)

// Layer names one group of scene elements.
type Layer string

// Scene layers.
const (
	LayerWedges         Layer = "wedges"
	LayerRings          Layer = "rings"
	LayerDividers       Layer = "dividers"
	LayerQuadrantLabels Layer = "quadrant-labels"
	LayerRingLabels     Layer = "ring-labels"
	LayerBlips          Layer = "blips"
)

// DrawOrder is the back-to-front stacking order of scene layers.
var DrawOrder = []Layer{
	LayerWedges,
	LayerRings,
	LayerDividers,
	LayerQuadrantLabels,
	LayerRingLabels,
	LayerBlips,
}

// Scene is the drawable output of one render pass. Coordinates are relative
// to the chart center.
type Scene struct {
	ID       string         `json:"id"`
	Pass     uint64         `json:"pass"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Idle     bool           `json:"idle"`
	Title    string         `json:"title,omitempty"`
	Geometry geometry.Model `json:"geometry"`

	Rings    []Ring     `json:"rings,omitempty"`
	Wedges   []Wedge    `json:"wedges,omitempty"`
	Dividers []Divider  `json:"dividers,omitempty"`
	Labels   labels.Set `json:"labels"`
	Blips    []Blip     `json:"blips,omitempty"`
	Skipped  []Skip     `json:"skipped,omitempty"`
}

// Ring is one annulus.
type Ring struct {
	Index int           `json:"index"`
	Name  string        `json:"name"`
	Color string        `json:"color"`
	Band  geometry.Band `json:"band"`
}

// Wedge is one quadrant background.
type Wedge struct {
	Index  int             `json:"index"`
	Name   string          `json:"name"`
	Fill   string          `json:"fill"`
	Sector geometry.Sector `json:"sector"`
}

// Divider is the line opening a quadrant, from the center to End.
type Divider struct {
	Index int            `json:"index"`
	Angle float64        `json:"angle"`
	End   geometry.Point `json:"end"`
}

// Blip is one placed entry.
type Blip struct {
	Index       int            `json:"index"`
	Entry       radar.Entry    `json:"entry"`
	Quadrant    int            `json:"quadrant"`
	Ring        int            `json:"ring"`
	Point       geometry.Point `json:"point"`
	Fill        string         `json:"fill"`
	Stroke      string         `json:"stroke"`
	StrokeWidth float64        `json:"stroke_width"`
	New         bool           `json:"new,omitempty"`
	Tier        string         `json:"tier"`
}

// Skip records an entry left out of the scene.
type Skip struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Find returns the blip for entry index i.
func (s Scene) Find(i int) (Blip, bool) {
	for _, b := range s.Blips {
		if b.Index == i {
			return b, true
		}
	}
	return Blip{}, false
}

// BlipsByQuadrant groups blips by quadrant index, keeping entry order.
func (s Scene) BlipsByQuadrant() [][]Blip {
	out := make([][]Blip, s.Geometry.Quadrants)
	for _, b := range s.Blips {
		out[b.Quadrant] = append(out[b.Quadrant], b)
	}
	return out
}

// QuadrantName returns the name of quadrant i, or "" when unknown.
func (s Scene) QuadrantName(i int) string {
	if i >= 0 && i < len(s.Wedges) {
		return s.Wedges[i].Name
	}
	return ""
}

func wedgeFill(i int) string {
	if i%2 == 0 {
		return WedgeFillEven
	}
	return WedgeFillOdd
}

func newBlip(index, quadrant, ring int, e radar.Entry, p geometry.Point, tier string) Blip {
	b := Blip{
		Index:       index,
		Entry:       e,
		Quadrant:    quadrant,
		Ring:        ring,
		Point:       p,
		Fill:        radar.RingColor(e.Ring),
		Stroke:      BlipStroke,
		StrokeWidth: BlipStrokeWidth,
		New:         bool(e.IsNew),
		Tier:        tier,
	}
	if b.New {
		b.Stroke = radar.NewColor
		b.StrokeWidth = NewStrokeWidth
	}
	return b
}
