package styles

import (
	"bytes"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
	"github.com/matzehuels/techradar/pkg/core/radar/placement"
)

// Print is the flat paper style. It has no filters, hover state or script.
// Searched blips keep PrintDividerClearance away from the divider lines.
type Print struct{}

func (Print) Name() string              { return StylePrint }
func (Print) Interactive() bool         { return false }
func (Print) DividerClearance() float64 { return placement.PrintDividerClearance }

func (Print) RenderDefs(*bytes.Buffer) {}

func (Print) RenderWedge(buf *bytes.Buffer, w chart.Wedge, radius float64) {
	writeWedge(buf, w, radius)
}

func (Print) RenderRing(buf *bytes.Buffer, r chart.Ring) { writeRing(buf, r) }

func (Print) RenderDivider(buf *bytes.Buffer, d chart.Divider) { writeDivider(buf, d) }

func (Print) RenderQuadrantLabel(buf *bytes.Buffer, l labels.QuadrantLabel) {
	writeQuadrantLabel(buf, l, "")
}

func (Print) RenderRingLabel(buf *bytes.Buffer, l labels.RingLabel) { writeRingLabel(buf, l) }

func (Print) RenderBlip(buf *bytes.Buffer, b chart.Blip) {
	writeBlipShape(buf, b, "    ")
}
