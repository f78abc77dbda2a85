package source

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/httputil"
)

// Settings selects the sources of the standard chain. Empty fields skip
// their attempts.
type Settings struct {
	CSVURL  string
	HTMLURL string
	Proxies []string
	File    string

	// Extra sources tried before the remote ones, e.g. a database.
	Primary []Source

	// NoSample leaves the built-in sample data out of the chain.
	NoSample bool
	// Refresh bypasses cached source bodies.
	Refresh bool
}

// NewChain builds the standard fallback chain for s.
func NewChain(s Settings, client *httputil.Client, keyer cache.Keyer, logger *log.Logger) *Chain {
	if client == nil {
		client = httputil.NewClient(nil, nil)
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	remote := func(format, u string) Source {
		return &HTTPSource{Format: format, URL: u, Client: client, Keyer: keyer, Refresh: s.Refresh, Logger: logger}
	}

	sources := append([]Source(nil), s.Primary...)
	if s.CSVURL != "" {
		sources = append(sources, remote("csv", s.CSVURL))
		for _, p := range s.Proxies {
			sources = append(sources, remote("csv", ProxyURL(p, s.CSVURL)))
		}
	}
	if s.HTMLURL != "" {
		for _, p := range s.Proxies {
			sources = append(sources, remote("html", ProxyURL(p, s.HTMLURL)))
		}
		sources = append(sources, remote("html", s.HTMLURL))
	}
	if s.File != "" {
		sources = append(sources, &FileSource{Path: s.File, Logger: logger})
	}
	if !s.NoSample {
		sources = append(sources, SampleSource{})
	}
	return NewChainOf(logger, sources...)
}
