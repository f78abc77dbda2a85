package source

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/httputil"
)

// HTTPSource fetches a CSV export or a published HTML table.
type HTTPSource struct {
	Format  string // "csv" or "html"
	URL     string
	Client  *httputil.Client
	Keyer   cache.Keyer
	Refresh bool
	Logger  *log.Logger
}

// Kind implements Source.
func (s *HTTPSource) Kind() string { return s.Format }

// Load fetches the body through the client cache and parses it.
func (s *HTTPSource) Load(ctx context.Context) (*Document, error) {
	client := s.Client
	if client == nil {
		client = httputil.NewClient(nil, nil)
	}
	keyer := s.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}

	key := keyer.SourceKey(s.Format, s.URL)
	body, err := client.Cached(ctx, key, s.Refresh, func() ([]byte, error) {
		return client.GetBytes(ctx, s.URL)
	})
	if err != nil {
		return nil, err
	}

	if s.Format == "html" {
		return ParseHTML(bytes.NewReader(body), s.Logger)
	}
	return ParseCSV(bytes.NewReader(body), s.Logger)
}

// ProxyURL routes target through a CORS-style proxy. A proxy containing
// "{url}" gets the escaped target substituted; any other proxy is used as a
// plain prefix.
//
//	ProxyURL("https://api.allorigins.win/raw?url={url}", u)
//	ProxyURL("https://cors-anywhere.herokuapp.com/", u)
func ProxyURL(proxy, target string) string {
	if strings.Contains(proxy, "{url}") {
		return strings.ReplaceAll(proxy, "{url}", url.QueryEscape(target))
	}
	return proxy + target
}

// DefaultProxies are the public proxies tried when none are configured.
var DefaultProxies = []string{
	"https://api.allorigins.win/raw?url={url}",
	"https://cors-anywhere.herokuapp.com/",
}
