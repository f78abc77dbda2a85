package source

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/httputil"
	"github.com/matzehuels/techradar/pkg/radar"
)

type stubSource struct {
	kind string
	doc  *Document
	err  error
}

func (s stubSource) Kind() string                            { return s.kind }
func (s stubSource) Load(context.Context) (*Document, error) { return s.doc, s.err }

func oneEntry(name string) *Document {
	return &Document{Entries: []radar.Entry{{Name: name, Quadrant: "q", Ring: "0-6m"}}}
}

func TestChain(t *testing.T) {
	boom := stderrors.New("boom")

	tests := []struct {
		name     string
		sources  []Source
		wantName string
		wantCode errors.Code
	}{
		{
			name:     "first wins",
			sources:  []Source{stubSource{kind: "a", doc: oneEntry("A")}, stubSource{kind: "b", doc: oneEntry("B")}},
			wantName: "A",
		},
		{
			name:     "falls back on error",
			sources:  []Source{stubSource{kind: "a", err: boom}, stubSource{kind: "b", doc: oneEntry("B")}},
			wantName: "B",
		},
		{
			name:     "empty result counts as failure",
			sources:  []Source{stubSource{kind: "a", doc: &Document{}}, stubSource{kind: "b", doc: oneEntry("B")}},
			wantName: "B",
		},
		{
			name:     "nil document counts as failure",
			sources:  []Source{stubSource{kind: "a"}, stubSource{kind: "b", doc: oneEntry("B")}},
			wantName: "B",
		},
		{
			name:     "only nil document",
			sources:  []Source{stubSource{kind: "a"}},
			wantCode: errors.ErrCodeSourceUnavailable,
		},
		{
			name:     "all fail",
			sources:  []Source{stubSource{kind: "a", err: boom}, stubSource{kind: "b", err: boom}},
			wantCode: errors.ErrCodeSourceUnavailable,
		},
		{
			name:     "no sources",
			wantCode: errors.ErrCodeSourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewChainOf(nil, tt.sources...).Load(context.Background())
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if doc.Entries[0].Name != tt.wantName {
				t.Errorf("got %s, want %s", doc.Entries[0].Name, tt.wantName)
			}
		})
	}
}

func TestChainAllFailWrapsLastError(t *testing.T) {
	last := stderrors.New("last")
	_, err := NewChainOf(nil, stubSource{kind: "a", err: stderrors.New("first")}, stubSource{kind: "b", err: last}).Load(context.Background())
	if !stderrors.Is(err, last) {
		t.Errorf("err = %v, should wrap the last failure", err)
	}
}

func TestNewChainOrder(t *testing.T) {
	c := NewChain(Settings{
		CSVURL:  "https://sheet/csv",
		HTMLURL: "https://sheet/html",
		Proxies: []string{"https://p1/?u={url}", "https://p2/"},
		File:    "radar.yaml",
	}, nil, nil, nil)

	var got []string
	for _, s := range c.sources {
		switch s := s.(type) {
		case *HTTPSource:
			got = append(got, s.Format+" "+s.URL)
		default:
			got = append(got, s.Kind())
		}
	}
	want := []string{
		"csv https://sheet/csv",
		"csv https://p1/?u=https%3A%2F%2Fsheet%2Fcsv",
		"csv https://p2/https://sheet/csv",
		"html https://p1/?u=https%3A%2F%2Fsheet%2Fhtml",
		"html https://p2/https://sheet/html",
		"html https://sheet/html",
		"file",
		"sample",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("chain order =\n%v\nwant\n%v", got, want)
	}

	if n := NewChain(Settings{NoSample: true}, nil, nil, nil).Len(); n != 0 {
		t.Errorf("empty settings chain len = %d", n)
	}
}

func TestHTTPSourceFallsBackToSample(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := httputil.NewClient(nil, nil, httputil.WithRetry(2, time.Millisecond))
	doc, err := NewChain(Settings{CSVURL: srv.URL}, client, nil, nil).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 18 {
		t.Errorf("expected sample data, got %d entries", len(doc.Entries))
	}
	if hits.Load() != 1 {
		t.Errorf("404 should not be retried, hits = %d", hits.Load())
	}
}

func TestHTTPSourceCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("name,quadrant,ring,description\nGo,languages,0-6m,fast\n"))
	}))
	defer srv.Close()

	src := &HTTPSource{Format: "csv", URL: srv.URL}
	doc, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].Description != "fast" {
		t.Errorf("entries = %+v", doc.Entries)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "radar.csv")
	if err := os.WriteFile(path, []byte("name,quadrant,ring\nGo,languages,0-6m\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := (&FileSource{Path: path}).Load(context.Background())
	if err != nil || len(doc.Entries) != 1 {
		t.Fatalf("Load() = %+v, %v", doc, err)
	}

	_, err = (&FileSource{Path: filepath.Join(dir, "missing.yaml")}).Load(context.Background())
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file err = %v", err)
	}

	_, err = (&FileSource{Path: filepath.Join(dir, "radar.xlsx")}).Load(context.Background())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension err = %v", err)
	}
}

func TestSample(t *testing.T) {
	doc, err := Sample()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 18 {
		t.Fatalf("sample entries = %d, want 18", len(doc.Entries))
	}

	d, err := Dataset(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	wantQ := []string{"legacy", "resiliency", "culture", "platforms"}
	if !reflect.DeepEqual(d.Quadrants, wantQ) {
		t.Errorf("quadrants = %v, want %v", d.Quadrants, wantQ)
	}
	if !reflect.DeepEqual(d.Rings, radar.DefaultRings) {
		t.Errorf("rings = %v", d.Rings)
	}
	if d.Title != "Sample Technology Radar" {
		t.Errorf("title = %q", d.Title)
	}

	newCount := 0
	for _, e := range d.Entries {
		if e.IsNew {
			newCount++
		}
	}
	if newCount != 6 {
		t.Errorf("new entries = %d, want 6", newCount)
	}
}

func TestDataset(t *testing.T) {
	doc := &Document{
		Title:     "doc",
		Rings:     []string{"adopt", "hold"},
		Quadrants: []string{"b", "a"},
		Entries:   []radar.Entry{{Name: "x", Quadrant: "a", Ring: "adopt"}},
	}

	d, err := Dataset(doc, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d.Rings, []string{"adopt", "hold"}) || !reflect.DeepEqual(d.Quadrants, []string{"b", "a"}) {
		t.Errorf("document lists not used: %+v", d)
	}

	d, err = Dataset(doc, Options{Title: "cfg", Quadrants: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "cfg" || !reflect.DeepEqual(d.Quadrants, []string{"a"}) {
		t.Errorf("options not applied: %+v", d)
	}

	_, err = Dataset(doc, Options{Rings: []string{"adopt", "adopt"}})
	if !errors.Is(err, errors.ErrCodeInvalidRings) {
		t.Errorf("duplicate rings err = %v", err)
	}
}

func TestProxyURL(t *testing.T) {
	tests := []struct {
		proxy, target, want string
	}{
		{"https://api.allorigins.win/raw?url={url}", "https://x/y?a=1", "https://api.allorigins.win/raw?url=https%3A%2F%2Fx%2Fy%3Fa%3D1"},
		{"https://cors-anywhere.herokuapp.com/", "https://x/y", "https://cors-anywhere.herokuapp.com/https://x/y"},
	}
	for _, tt := range tests {
		if got := ProxyURL(tt.proxy, tt.target); got != tt.want {
			t.Errorf("ProxyURL(%q, %q) = %q, want %q", tt.proxy, tt.target, got, tt.want)
		}
	}
}
