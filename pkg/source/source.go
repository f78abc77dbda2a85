package source

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/observability"
	"github.com/matzehuels/techradar/pkg/radar"
)

// Source produces radar entries.
type Source interface {
	// Kind names the source for logs and cache keys ("csv", "html", ...).
	Kind() string
	// Load fetches and parses the entries.
	Load(ctx context.Context) (*Document, error)
}

// Document is the parsed content of a source. Rings, Quadrants and Title
// are optional; tabular sources only fill Entries.
type Document struct {
	Title     string        `json:"title,omitempty" yaml:"title,omitempty"`
	Rings     []string      `json:"rings,omitempty" yaml:"rings,omitempty"`
	Quadrants []string      `json:"quadrants,omitempty" yaml:"quadrants,omitempty"`
	Entries   []radar.Entry `json:"entries" yaml:"entries"`
}

// Options override what a Document declares.
type Options struct {
	Title     string
	Rings     []string
	Quadrants []string
}

// Dataset builds a validated dataset from doc. Configured lists win over the
// document's own; without either, rings default to [radar.DefaultRings] and
// quadrants are derived from the entries in first-seen order.
func Dataset(doc *Document, opts Options) (*radar.Dataset, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no document")
	}
	rings := firstNonEmpty(opts.Rings, doc.Rings)
	quadrants := firstNonEmpty(opts.Quadrants, doc.Quadrants)

	d := radar.New(doc.Entries, rings, quadrants)
	d.Title = doc.Title
	if opts.Title != "" {
		d.Title = opts.Title
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return append([]string(nil), l...)
		}
	}
	return nil
}

// Chain tries sources in order.
type Chain struct {
	sources []Source
	logger  *log.Logger
}

// NewChainOf creates a chain over the given sources. A nil logger discards.
func NewChainOf(logger *log.Logger, sources ...Source) *Chain {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Chain{sources: sources, logger: logger}
}

// Kind implements Source.
func (c *Chain) Kind() string { return "chain" }

// Len returns the number of attempts in the chain.
func (c *Chain) Len() int { return len(c.sources) }

// Load returns the first document with at least one entry.
func (c *Chain) Load(ctx context.Context) (*Document, error) {
	var lastErr error
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := load(ctx, src)
		if err == nil && (doc == nil || len(doc.Entries) == 0) {
			err = errors.New(errors.ErrCodeInvalidInput, "%s: no entries", src.Kind())
		}
		if err != nil {
			c.logger.Warn("source attempt failed", "attempt", i+1, "kind", src.Kind(), "err", err)
			lastErr = err
			continue
		}
		c.logger.Debug("source loaded", "attempt", i+1, "kind", src.Kind(), "entries", len(doc.Entries))
		return doc, nil
	}
	if lastErr == nil {
		return nil, errors.New(errors.ErrCodeSourceUnavailable, "no sources configured")
	}
	return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, lastErr, "all %d sources failed", len(c.sources))
}

func load(ctx context.Context, src Source) (*Document, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Kind())
	start := time.Now()

	doc, err := src.Load(ctx)
	n := 0
	if doc != nil {
		n = len(doc.Entries)
	}
	hooks.OnLoadComplete(ctx, src.Kind(), n, time.Since(start), err)
	return doc, err
}
