package source

import (
	"strings"
	"testing"

	"github.com/matzehuels/techradar/pkg/errors"
)

func TestParseCSV(t *testing.T) {
	in := "Name,Quadrant,Ring,Description,isNew,Status,Theme\n" +
		"React,legacy,0-6m,\"Line one\nline \"\"two\"\"\",TRUE,NEW,ui\n" +
		"Vue.js,legacy,6-12m,plain,no,,\n" +
		",legacy,1-2y,nameless,,,\n" +
		"Short,legacy\n"

	doc, err := ParseCSV(strings.NewReader(in), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("entries = %d, want 2: %+v", len(doc.Entries), doc.Entries)
	}

	react := doc.Entries[0]
	if react.Name != "React" || react.Quadrant != "legacy" || react.Ring != "0-6m" {
		t.Errorf("React = %+v", react)
	}
	if react.Description != "Line one\nline \"two\"" {
		t.Errorf("Description = %q", react.Description)
	}
	if !react.IsNew || react.Status != "NEW" || react.Theme() != "ui" {
		t.Errorf("React flags = %+v", react)
	}

	vue := doc.Entries[1]
	if vue.IsNew || vue.Extra != nil {
		t.Errorf("Vue = %+v", vue)
	}
}

func TestParseCSV_NotEnoughRows(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,quadrant,ring\n"), nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestParseCSV_MissingHeaderIsNotFatal(t *testing.T) {
	doc, err := ParseCSV(strings.NewReader("name,quadrant,ring\nGo,languages,0-6m\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].Description != "" {
		t.Errorf("entries = %+v", doc.Entries)
	}
}

const publishedSheet = `<html><body>
<table><tr><td>Sheet1</td></tr></table>
<table>
<tbody>
<tr><th>1</th><td> Name </td><td>Quadrant</td><td>Ring</td><td>Description</td><td>isNew</td></tr>
<tr><th>2</th><td>Kafka</td><td>platforms</td><td>1-2y</td><td>Event log<br>at scale</td><td>yes</td></tr>
<tr><th>3</th><td>Spark</td><td>platforms</td></tr>
<tr><th>4</th><td></td><td>platforms</td><td>3y+</td><td>x</td><td></td></tr>
</tbody>
</table>
</body></html>`

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(publishedSheet), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("entries = %+v", doc.Entries)
	}
	e := doc.Entries[0]
	if e.Name != "Kafka" || e.Ring != "1-2y" || !e.IsNew {
		t.Errorf("entry = %+v", e)
	}
	if e.Description != "Event log\nat scale" {
		t.Errorf("Description = %q", e.Description)
	}
}

func TestParseHTML_SingleTable(t *testing.T) {
	page := `<table><tr><td>name</td><td>quadrant</td><td>ring</td></tr>
<tr><td>Go</td><td>languages</td><td>0-6m</td></tr></table>`
	doc, err := ParseHTML(strings.NewReader(page), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].Name != "Go" {
		t.Errorf("entries = %+v", doc.Entries)
	}
}

func TestParseHTML_Errors(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no tables", "<p>nothing here</p>"},
		{"header only", "<table><tr><td>name</td></tr></table>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHTML(strings.NewReader(tt.page), nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ParseHTML() err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	full := `
title: Platform Radar
rings: [adopt, trial]
quadrants: [tools]
entries:
  - name: Helm
    quadrant: tools
    ring: adopt
    isNew: true
    extra:
      proximity: near
`
	doc, err := ParseYAML([]byte(full))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Platform Radar" || len(doc.Rings) != 2 || len(doc.Quadrants) != 1 {
		t.Errorf("doc = %+v", doc)
	}
	if len(doc.Entries) != 1 || !doc.Entries[0].IsNew || doc.Entries[0].Proximity() != "near" {
		t.Errorf("entries = %+v", doc.Entries)
	}

	list := "- name: Go\n  quadrant: languages\n  ring: 0-6m\n  isNew: \"yes\"\n"
	doc, err = ParseYAML([]byte(list))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || !doc.Entries[0].IsNew {
		t.Errorf("list entries = %+v", doc.Entries)
	}

	if _, err := ParseYAML([]byte("")); err == nil {
		t.Error("empty yaml should fail")
	}
}

func TestParseJSON(t *testing.T) {
	doc, err := ParseJSON([]byte(`[{"name":"Go","quadrant":"languages","ring":"0-6m","is_new":"TRUE"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || !doc.Entries[0].IsNew {
		t.Errorf("entries = %+v", doc.Entries)
	}

	doc, err = ParseJSON([]byte(`{"title":"T","entries":[{"name":"Go","quadrant":"languages","ring":"0-6m"}]}`))
	if err != nil || doc.Title != "T" || len(doc.Entries) != 1 {
		t.Errorf("doc = %+v, err = %v", doc, err)
	}

	if _, err := ParseJSON([]byte(`{`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	if _, err := Parse("xlsx", nil, nil); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
