package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/source"
)

func TestSourceRoundTrip(t *testing.T) {
	uri := os.Getenv("TECHRADAR_TEST_MONGO")
	if uri == "" {
		t.Skip("TECHRADAR_TEST_MONGO not set")
	}
	ctx := context.Background()

	s, err := Connect(ctx, uri, "techradar_test", t.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)
	defer s.coll.Drop(ctx)

	in := []radar.Entry{
		{Name: "Go", Quadrant: "languages", Ring: "0-6m", IsNew: true},
		{Name: "Rust", Quadrant: "languages", Ring: "1-2y", Extra: map[string]string{"theme": "systems"}},
		{Quadrant: "languages", Ring: "3y+"},
	}
	if err := s.Insert(ctx, in); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (nameless entry dropped)", len(doc.Entries))
	}
	if doc.Entries[0].Name != "Go" || !bool(doc.Entries[0].IsNew) {
		t.Errorf("first entry = %+v", doc.Entries[0])
	}
	if doc.Entries[1].Theme() != "systems" {
		t.Errorf("extra not round-tripped: %+v", doc.Entries[1])
	}

	d, err := source.Dataset(doc, source.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Quadrants) != 1 || d.Quadrants[0] != "languages" {
		t.Errorf("quadrants = %v", d.Quadrants)
	}
}
