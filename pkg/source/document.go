package source

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
)

// ParseYAML reads a radar document. Both a full document and a bare list
// of entries are accepted:
//
//	title: Platform Radar
//	rings: [0-6m, 6-12m, 1-2y, 3y+]
//	entries:
//	  - name: Kubernetes
//	    quadrant: platforms
//	    ring: 1-2y
func ParseYAML(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse yaml")
	}
	if len(node.Content) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "yaml: empty document")
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var entries []radar.Entry
		if err := root.Decode(&entries); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml entries")
		}
		return &Document{Entries: entries}, nil
	}

	var doc Document
	if err := root.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml document")
	}
	return &doc, nil
}

// ParseJSON reads a radar document as JSON. Like ParseYAML it also accepts
// a bare array of entries.
func ParseJSON(data []byte) (*Document, error) {
	var entries []radar.Entry
	if err := json.Unmarshal(data, &entries); err == nil {
		return &Document{Entries: entries}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse json")
	}
	return &doc, nil
}
