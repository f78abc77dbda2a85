package radar

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/techradar/pkg/errors"
)

// DefaultRings is the ring order used when a source does not supply one.
var DefaultRings = []string{"0-6m", "6-12m", "1-2y", "3y+"}

// Well-known keys in Entry.Extra.
const (
	ExtraTheme     = "theme"
	ExtraProximity = "proximity"
)

// Entry is one radar item.
type Entry struct {
	Name        string            `json:"name" bson:"name" yaml:"name"`
	Quadrant    string            `json:"quadrant" bson:"quadrant" yaml:"quadrant"`
	Ring        string            `json:"ring" bson:"ring" yaml:"ring"`
	Description string            `json:"description,omitempty" bson:"description,omitempty" yaml:"description,omitempty"`
	IsNew       Flag              `json:"is_new,omitempty" bson:"is_new,omitempty" yaml:"isNew,omitempty"`
	Status      string            `json:"status,omitempty" bson:"status,omitempty" yaml:"status,omitempty"`
	Extra       map[string]string `json:"extra,omitempty" bson:"extra,omitempty" yaml:"extra,omitempty"`
}

// Get returns a named field of the entry. Unknown names fall through to Extra.
func (e Entry) Get(key string) string {
	switch strings.ToLower(key) {
	case "name":
		return e.Name
	case "quadrant":
		return e.Quadrant
	case "ring":
		return e.Ring
	case "description":
		return e.Description
	case "status":
		return e.Status
	case "isnew", "is_new":
		if e.IsNew {
			return "TRUE"
		}
		return ""
	}
	return e.Extra[strings.ToLower(key)]
}

// Theme returns the optional theme column.
func (e Entry) Theme() string { return e.Extra[ExtraTheme] }

// Proximity returns the optional proximity column.
func (e Entry) Proximity() string { return e.Extra[ExtraProximity] }

// Flag is a boolean that also accepts the spreadsheet spellings used by
// radar sources ("TRUE", "yes", "1").
type Flag bool

// ParseFlag reports whether s is a truthy spreadsheet value.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}

// UnmarshalJSON accepts both JSON booleans and strings.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = Flag(ParseFlag(s))
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML and form input.
func (f *Flag) UnmarshalText(text []byte) error {
	*f = Flag(ParseFlag(string(text)))
	return nil
}

// Dataset is the full input to a render pass.
type Dataset struct {
	Title     string   `json:"title,omitempty" bson:"title,omitempty"`
	Rings     []string `json:"rings" bson:"rings"`
	Quadrants []string `json:"quadrants" bson:"quadrants"`
	Entries   []Entry  `json:"entries" bson:"entries"`
}

// New builds a dataset from entries. A nil rings slice selects DefaultRings;
// a nil quadrants slice derives quadrants from the entries in first-seen order.
func New(entries []Entry, rings, quadrants []string) *Dataset {
	if rings == nil {
		rings = append([]string(nil), DefaultRings...)
	}
	if quadrants == nil {
		quadrants = DeriveQuadrants(entries)
	}
	return &Dataset{Rings: rings, Quadrants: quadrants, Entries: entries}
}

// DeriveQuadrants returns the unique non-empty quadrant names of entries in
// first-seen order.
func DeriveQuadrants(entries []Entry) []string {
	return unique(entries, func(e Entry) string { return e.Quadrant })
}

// DeriveRings returns the unique non-empty ring names of entries in
// first-seen order.
func DeriveRings(entries []Entry) []string {
	return unique(entries, func(e Entry) string { return e.Ring })
}

func unique(entries []Entry, key func(Entry) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		k := key(e)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Validate checks the ring and quadrant lists. Entries are not validated:
// unresolved entries are skipped at layout time.
func (d *Dataset) Validate() error {
	if err := errors.ValidateRings(d.Rings); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Quadrants))
	for _, q := range d.Quadrants {
		if seen[q] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate quadrant %q", q)
		}
		seen[q] = true
	}
	return nil
}

// RingIndex returns the index of ring in the ring list.
func (d *Dataset) RingIndex(ring string) (int, bool) {
	return indexOf(d.Rings, ring)
}

// QuadrantIndex returns the index of quadrant in the quadrant list.
func (d *Dataset) QuadrantIndex(quadrant string) (int, bool) {
	return indexOf(d.Quadrants, quadrant)
}

func indexOf(list []string, s string) (int, bool) {
	for i, v := range list {
		if v == s {
			return i, true
		}
	}
	return -1, false
}

// ByQuadrant groups entry indices by quadrant and then by ring, following
// the dataset order. Unresolved entries are left out.
func (d *Dataset) ByQuadrant() [][][]int {
	out := make([][][]int, len(d.Quadrants))
	for q := range out {
		out[q] = make([][]int, len(d.Rings))
	}
	for i, e := range d.Entries {
		q, okQ := d.QuadrantIndex(e.Quadrant)
		r, okR := d.RingIndex(e.Ring)
		if !okQ || !okR {
			continue
		}
		out[q][r] = append(out[q][r], i)
	}
	return out
}

// DisplayName uppercases the first character of a quadrant name.
func DisplayName(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
