package animation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bet-dashboard/internal/cache"
	"bet-dashboard/internal/logging"

	"github.com/sirupsen/logrus"
)

// DefaultURL is the decorative animation shown next to the featured pick.
const DefaultURL = "https://assets9.lottiefiles.com/packages/lf20_vfppxhqn.json"

// FallbackMessage is shown in place of the animation when it is unavailable.
const FallbackMessage = "Não foi possível carregar a animação."

// maxBody caps the size of an animation document.
const maxBody = 4 << 20

// Fetcher retrieves the animation document. Any error means "no animation".
type Fetcher interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// FetchError is returned when the remote answers with a non-2xx status.
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("animation fetch %s: status %d", e.URL, e.StatusCode)
}

// HTTPFetcher loads the animation over HTTP.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
	log    *logrus.Entry
}

// NewHTTPFetcher creates a fetcher for url. An empty url means DefaultURL; a
// non-positive timeout means 10s.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		log:    logging.For("animation"),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		f.log.WithError(err).WithField("duration", duration).Warn("animation request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.WithFields(logrus.Fields{"status": resp.StatusCode, "duration": duration}).Warn("animation unavailable")
		return nil, &FetchError{StatusCode: resp.StatusCode, URL: f.URL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("animation response is not valid JSON")
	}
	f.log.WithFields(logrus.Fields{"bytes": len(body), "duration": duration}).Debug("animation fetched")
	return json.RawMessage(body), nil
}

// Noop never returns an animation.
type Noop struct{}

func (Noop) Fetch(context.Context) (json.RawMessage, error) {
	return nil, fmt.Errorf("animation disabled")
}

// Cached memoizes a fetcher's successful results in c. Failures are not cached.
type Cached struct {
	Fetcher Fetcher
	Cache   cache.Cache
	Key     string
}

func (c *Cached) Fetch(ctx context.Context) (json.RawMessage, error) {
	if c.Cache == nil {
		return c.Fetcher.Fetch(ctx)
	}
	key := cache.Key("animation", c.Key)
	if raw, ok, err := c.Cache.Get(ctx, key); err == nil && ok {
		return json.RawMessage(raw), nil
	}
	doc, err := c.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.Cache.Set(ctx, key, doc)
	return doc, nil
}
