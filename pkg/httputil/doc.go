// Package httputil provides the HTTP client used to fetch remote radar
// sources.
//
// [Client] adds three things on top of net/http:
//
//   - response caching through any [cache.Cache] backend
//   - retries with exponential backoff for transient failures
//   - coded errors from pkg/errors, so callers can map failures to exit
//     codes and HTTP statuses
//
// Transient failures are network errors, 5xx responses and 429 rate
// limiting. They are wrapped in [RetryableError] and retried by [Retry];
// everything else fails immediately.
//
//	client := httputil.NewClient(fileCache, map[string]string{"Accept": "text/csv"})
//	body, err := client.Cached(ctx, key, false, func() ([]byte, error) {
//	    return client.GetBytes(ctx, url)
//	})
//
// # Defaults
//
//   - Request timeout: 30 seconds
//   - Attempts: 3
//   - Initial backoff: 1 second, doubling per retry
//   - Cache TTL: [cache.TTLSource]
package httputil
