package chart

import (
	"fmt"
	"html"

	"github.com/matzehuels/techradar/pkg/radar"
)

// Tooltip geometry, in CSS pixels.
const (
	TooltipHeight = 150.0
	TooltipMargin = 20.0
	TooltipOffset = 10.0
)

// TextRenderer converts a raw description into a markup fragment that is
// safe to display.
type TextRenderer interface {
	Render(text string) (string, error)
}

// DetailView opens the detail view for an entry.
type DetailView interface {
	Open(Detail)
}

// DetailFunc adapts a function to DetailView.
type DetailFunc func(Detail)

// Open implements DetailView.
func (f DetailFunc) Open(d Detail) { f(d) }

// Cursor is the pointer position in page coordinates plus the viewport height.
type Cursor struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	ViewportHeight float64 `json:"viewport_height"`
}

// TooltipPosition is where the tooltip box goes.
type TooltipPosition struct {
	Left  float64 `json:"left"`
	Top   float64 `json:"top"`
	Above bool    `json:"above"`
}

// PositionTooltip places the tooltip below the cursor, or above it when the
// estimated box would run past the bottom of the viewport.
func PositionTooltip(c Cursor) TooltipPosition {
	pos := TooltipPosition{Left: c.X + TooltipOffset, Top: c.Y + TooltipOffset}
	if c.Y+TooltipHeight+TooltipMargin > c.ViewportHeight {
		pos.Above = true
		pos.Top = c.Y - TooltipHeight - TooltipOffset
	}
	return pos
}

// Badge is one colored tag in a tooltip.
type Badge struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Color      string `json:"color"`
	Bold       bool   `json:"bold,omitempty"`
}

// Badges returns the tooltip tags for an entry in display order.
func Badges(e radar.Entry) []Badge {
	const plainBG, plainFG = "#f5f5f5", "#666"
	out := []Badge{
		{Text: "Quadrant: " + radar.DisplayName(e.Quadrant), Background: plainBG, Color: plainFG},
		{Text: "Ring: " + e.Ring, Background: radar.RingColor(e.Ring), Color: radar.RingTextColor, Bold: true},
	}
	if v := e.Theme(); v != "" {
		out = append(out, Badge{Text: "Theme: " + v, Background: plainBG, Color: plainFG})
	}
	if v := e.Proximity(); v != "" {
		out = append(out, Badge{Text: "Proximity: " + v, Background: plainBG, Color: plainFG})
	}
	if e.IsNew {
		out = append(out, Badge{Text: "New", Background: radar.NewColor, Color: "#333", Bold: true})
	}
	if e.Status != "" {
		out = append(out, Badge{Text: e.Status, Background: radar.StatusColor, Color: "#fff", Bold: true})
	}
	return out
}

// Tooltip is the hover payload.
type Tooltip struct {
	Name            string          `json:"name"`
	Badges          []Badge         `json:"badges"`
	DescriptionHTML string          `json:"description_html,omitempty"`
	Position        TooltipPosition `json:"position"`
}

// Detail is the click payload.
type Detail struct {
	Entry           radar.Entry `json:"entry"`
	DescriptionHTML string      `json:"description_html,omitempty"`
}

// Interactor builds interaction payloads. A nil Text escapes descriptions
// instead of rendering them; a nil Detail makes Click a pure function.
type Interactor struct {
	Text   TextRenderer
	Detail DetailView
}

// Hover builds the tooltip for e at cursor c.
func (i Interactor) Hover(e radar.Entry, c Cursor) Tooltip {
	return Tooltip{
		Name:            e.Name,
		Badges:          Badges(e),
		DescriptionHTML: i.describe(e.Description),
		Position:        PositionTooltip(c),
	}
}

// Click hands the entry to the detail view and returns the payload it got.
func (i Interactor) Click(e radar.Entry) Detail {
	d := Detail{Entry: e, DescriptionHTML: i.describe(e.Description)}
	if i.Detail != nil {
		i.Detail.Open(d)
	}
	return d
}

func (i Interactor) describe(text string) string {
	if text == "" {
		return ""
	}
	if i.Text != nil {
		if out, err := i.Text.Render(text); err == nil {
			return out
		}
	}
	return fmt.Sprintf("<p>%s</p>", html.EscapeString(text))
}
