package sink

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
)

// RenderJSON serializes the scene with indentation.
func RenderJSON(s chart.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}
