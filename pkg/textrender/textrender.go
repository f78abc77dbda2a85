package textrender

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	mdhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var bulletPattern = regexp.MustCompile(`\n\s*\*\s+`)

// Renderer converts descriptions to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer with GitHub-flavored Markdown and hard line breaks.
func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	policy.RequireNoReferrerOnLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(mdhtml.WithHardWraps(), mdhtml.WithUnsafe()),
		),
		policy: policy,
	}
}

// Render normalizes text, converts it to HTML and sanitizes the output.
// Empty input renders to an empty string.
func (r *Renderer) Render(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(Normalize(text)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	out, err := openLinksInNewTab(r.policy.Sanitize(buf.String()))
	if err != nil {
		return "", fmt.Errorf("rewrite links: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// openLinksInNewTab sets target="_blank" rel="noopener noreferrer" on every
// anchor, relative or absolute, replacing whatever target and rel it had.
func openLinksInNewTab(fragment string) (string, error) {
	if !strings.Contains(fragment, "<a") {
		return fragment, nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		setLinkTargets(n)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func setLinkTargets(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		setAttr(n, "target", "_blank")
		setAttr(n, "rel", "noopener noreferrer")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		setLinkTargets(c)
	}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Normalize rewrites spreadsheet text into Markdown:
//   - literal backslash-n sequences become newlines
//   - bullet lines are rewritten to "* item"
//   - blank lines not followed by a bullet become <br><br>
//   - remaining newlines not followed by a bullet become <br>
func Normalize(text string) string {
	s := strings.ReplaceAll(text, `\n`, "\n")
	s = bulletPattern.ReplaceAllString(s, "\n* ")
	s = replaceUnlessBullet(s, "\n\n", "<br><br>")
	return replaceUnlessBullet(s, "\n", "<br>")
}

// replaceUnlessBullet replaces each non-overlapping sep, scanning left to
// right, unless the byte after it starts a bullet.
func replaceUnlessBullet(s, sep, repl string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, sep)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := i + len(sep)
		b.WriteString(s[:i])
		if end < len(s) && s[end] == '*' {
			b.WriteString(sep)
		} else {
			b.WriteString(repl)
		}
		s = s[end:]
	}
}
