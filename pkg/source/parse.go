package source

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
)

// RequiredHeaders are the columns every radar sheet should have. A missing
// one is logged, not rejected.
var RequiredHeaders = []string{"quadrant", "ring", "name", "description"}

// =============================================================================
// CSV
// =============================================================================

// ParseCSV reads a spreadsheet CSV export. Quoted cells may span lines and
// use "" escapes.
func ParseCSV(r io.Reader, logger *log.Logger) (*Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse csv")
	}
	if len(records) <= 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv: not enough rows")
	}
	return entriesFromRows(records[0], records[1:], logger), nil
}

// =============================================================================
// HTML
// =============================================================================

// ParseHTML reads a published spreadsheet page. Published sheets put the
// sheet tabs in the first table, so the second table is used when there
// are two or more. Only <td> cells count, which drops the row-number
// column.
func ParseHTML(r io.Reader, logger *log.Logger) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse html")
	}

	tables := findAll(root, atom.Table)
	if len(tables) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "html: no tables found")
	}
	table := tables[0]
	if len(tables) > 1 {
		table = tables[1]
	}

	var rows [][]string
	for _, tr := range findAll(table, atom.Tr) {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Td {
				cells = append(cells, cellText(c))
			}
		}
		rows = append(rows, cells)
	}
	if len(rows) <= 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "html: not enough rows")
	}
	return entriesFromRows(rows[0], rows[1:], logger), nil
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// cellText flattens a cell to text, turning <br> into newlines.
func cellText(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			buf.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	lines := strings.Split(buf.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// =============================================================================
// Rows
// =============================================================================

func entriesFromRows(header []string, rows [][]string, logger *log.Logger) *Document {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if missing := missingHeaders(cols); len(missing) > 0 && logger != nil {
		logger.Warn("missing required headers", "headers", strings.Join(missing, ", "))
	}

	doc := &Document{}
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) < len(cols) {
			if logger != nil {
				logger.Debug("skipping short row", "row", i+2, "cells", len(row), "want", len(cols))
			}
			continue
		}
		e := entryFromRow(cols, row)
		if e.Name == "" {
			continue
		}
		doc.Entries = append(doc.Entries, e)
	}
	return doc
}

func entryFromRow(cols, row []string) radar.Entry {
	var e radar.Entry
	for i, col := range cols {
		v := strings.TrimSpace(row[i])
		switch col {
		case "name":
			e.Name = v
		case "quadrant":
			e.Quadrant = v
		case "ring":
			e.Ring = v
		case "description":
			e.Description = v
		case "isnew", "is_new", "new":
			e.IsNew = radar.Flag(radar.ParseFlag(v))
		case "status":
			e.Status = v
		case "":
		default:
			if v == "" {
				continue
			}
			if e.Extra == nil {
				e.Extra = make(map[string]string)
			}
			e.Extra[col] = v
		}
	}
	return e
}

func missingHeaders(cols []string) []string {
	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[c] = true
	}
	var missing []string
	for _, h := range RequiredHeaders {
		if !have[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Parse dispatches on a format name: csv, html, yaml or json.
func Parse(format string, data []byte, logger *log.Logger) (*Document, error) {
	switch format {
	case "csv":
		return ParseCSV(bytes.NewReader(data), logger)
	case "html":
		return ParseHTML(bytes.NewReader(data), logger)
	case "yaml":
		return ParseYAML(data)
	case "json":
		return ParseJSON(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown source format %q", format)
}
