package source

import (
	"context"
	_ "embed"
)

//go:embed sample.yaml
var sampleYAML []byte

// SampleSource serves the built-in sample radar.
type SampleSource struct{}

// Kind implements Source.
func (SampleSource) Kind() string { return "sample" }

// Load implements Source.
func (SampleSource) Load(context.Context) (*Document, error) { return Sample() }

// Sample returns the built-in sample radar: 18 entries across the legacy,
// resiliency, culture and platforms quadrants.
func Sample() (*Document, error) {
	return ParseYAML(sampleYAML)
}
