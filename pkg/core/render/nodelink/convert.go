package nodelink

import (
	"encoding/json"
	"fmt"
)

// VizType identifies nodelink layouts in serialized form.
const VizType = "nodelink"

// Layout is the serializable form of a nodelink diagram. Graphviz computes
// positions at render time, so the DOT source is the layout.
type Layout struct {
	VizType   string `json:"viz_type"`
	Engine    string `json:"engine"`
	DOT       string `json:"dot"`
	Quadrants int    `json:"quadrants"`
	Entries   int    `json:"entries"`
}

// Export packages a DOT string with the counts of what it contains.
func Export(dot string, quadrants, entries int) Layout {
	return Layout{
		VizType:   VizType,
		Engine:    "dot",
		DOT:       dot,
		Quadrants: quadrants,
		Entries:   entries,
	}
}

// Marshal serializes the layout as indented JSON.
func (l Layout) Marshal() ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Parse extracts the DOT string from a serialized nodelink layout.
func Parse(data []byte) (string, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return "", fmt.Errorf("decode layout: %w", err)
	}
	if l.VizType != "" && l.VizType != VizType {
		return "", fmt.Errorf("invalid viz_type for nodelink layout: %q", l.VizType)
	}
	if l.DOT == "" {
		return "", fmt.Errorf("nodelink layout must contain DOT string")
	}
	return l.DOT, nil
}
