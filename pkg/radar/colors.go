package radar

// Ring palette.
const (
	UnknownRingColor = "#999999"
	RingTextColor    = "#ffffff"
	NewColor         = "#ffcc00"
	StatusColor      = "#ff9900"
)

var ringColors = map[string]string{
	"0-6m":  "#ff3333",
	"6-12m": "#ff6666",
	"1-2y":  "#9999cc",
	"3y+":   "#7a7a9e",
}

// RingColor returns the fill color for a ring id.
func RingColor(ring string) string {
	if c, ok := ringColors[ring]; ok {
		return c
	}
	return UnknownRingColor
}
