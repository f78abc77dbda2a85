package textrender

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"single newline", "a\nb", "a<br>b"},
		{"blank line", "a\n\nb", "a<br><br>b"},
		{"escaped newline", `a\nb`, "a<br>b"},
		{"bullets", "intro\n* one\n* two", "intro\n* one\n* two"},
		{"loose bullets", "intro\n  *   one\n*two", "intro\n* one\n*two"},
		{"trailing newline", "a\n", "a<br>"},
		{"blank line before bullet", "a\n\n* b", "a\n* b"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("%s: Normalize(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	r := New()
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{"emphasis", "**bold** move", []string{"<strong>bold</strong>"}, nil},
		{"breaks", "line one\nline two", []string{"line one<br", "line two"}, nil},
		{"list", "Use it for:\n* APIs\n* jobs", []string{"<ul>", "<li>APIs</li>", "<li>jobs</li>"}, nil},
		{
			"link",
			"see [docs](https://example.com/docs)",
			[]string{`href="https://example.com/docs"`, `target="_blank"`, "noopener", "noreferrer"},
			[]string{"nofollow"},
		},
		{
			"relative link",
			"see [docs](/docs/intro)",
			[]string{`href="/docs/intro"`, `target="_blank"`, `rel="noopener noreferrer"`},
			[]string{"nofollow"},
		},
		{
			"bare relative link",
			"read [this](docs.html) and [that](../up.html)",
			[]string{`href="docs.html"`, `href="../up.html"`, `target="_blank"`, `rel="noopener noreferrer"`},
			nil,
		},
		{
			"inline anchor target replaced",
			`<a href="/x" target="_self" rel="opener">x</a>`,
			[]string{`target="_blank"`, `rel="noopener noreferrer"`},
			[]string{"_self", `"opener"`},
		},
		{"script", "hi <script>alert(1)</script>", []string{"hi"}, []string{"<script", "alert(1)</script>"}},
		{"handler", `<img src="x.png" onerror="boom()">`, nil, []string{"onerror"}},
	}
	for _, tt := range tests {
		got, err := r.Render(tt.in)
		if err != nil {
			t.Fatalf("%s: Render() error = %v", tt.name, err)
		}
		for _, s := range tt.contains {
			if !strings.Contains(got, s) {
				t.Errorf("%s: Render(%q) = %q, missing %q", tt.name, tt.in, got, s)
			}
		}
		for _, s := range tt.excludes {
			if strings.Contains(got, s) {
				t.Errorf("%s: Render(%q) = %q, should not contain %q", tt.name, tt.in, got, s)
			}
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	got, err := New().Render("  \n ")
	if err != nil || got != "" {
		t.Errorf("Render(blank) = %q, %v; want empty", got, err)
	}
}
