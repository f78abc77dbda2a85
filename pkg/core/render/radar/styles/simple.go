package styles

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/radar/labels"
)

const shadowFilter = "tile-shadow"

// Simple is the interactive screen style.
type Simple struct{}

func (Simple) Name() string              { return StyleSimple }
func (Simple) Interactive() bool         { return true }
func (Simple) DividerClearance() float64 { return 0 }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <filter id="%s" x="-20%%" y="-20%%" width="140%%" height="140%%">
      <feDropShadow dx="0" dy="2" stdDeviation="3" flood-color="#000" flood-opacity="0.15"/>
    </filter>
  </defs>
  <style>
    .blip { cursor: pointer; }
    .blip circle { transition: r 0.15s ease; }
    .blip:hover circle, .blip.active circle { r: %.0fpx; }
  </style>
`, shadowFilter, chart.BlipHoverRadius)
}

func (Simple) RenderWedge(buf *bytes.Buffer, w chart.Wedge, radius float64) {
	writeWedge(buf, w, radius)
}

func (Simple) RenderRing(buf *bytes.Buffer, r chart.Ring) { writeRing(buf, r) }

func (Simple) RenderDivider(buf *bytes.Buffer, d chart.Divider) { writeDivider(buf, d) }

func (Simple) RenderQuadrantLabel(buf *bytes.Buffer, l labels.QuadrantLabel) {
	writeQuadrantLabel(buf, l, shadowFilter)
}

func (Simple) RenderRingLabel(buf *bytes.Buffer, l labels.RingLabel) { writeRingLabel(buf, l) }

// RenderBlip writes the blip with the data attributes the tooltip script reads.
func (Simple) RenderBlip(buf *bytes.Buffer, b chart.Blip) {
	e := b.Entry
	fmt.Fprintf(buf, `    <g class="blip" id="blip-%d" data-index="%d" data-name="%s" data-quadrant="%s" data-ring="%s" data-color="%s"`,
		b.Index, b.Index, EscapeXML(e.Name), EscapeXML(e.Quadrant), EscapeXML(e.Ring), b.Fill)
	writeDataAttr(buf, "theme", e.Theme())
	writeDataAttr(buf, "proximity", e.Proximity())
	writeDataAttr(buf, "status", e.Status)
	writeDataAttr(buf, "description", e.Description)
	if b.New {
		buf.WriteString(` data-new="true"`)
	}
	buf.WriteString(">\n")
	writeBlipShape(buf, b, "      ")
	buf.WriteString("    </g>\n")
}

func writeDataAttr(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, ` data-%s="%s"`, key, strings.ReplaceAll(EscapeXML(value), "\n", "&#10;"))
}
