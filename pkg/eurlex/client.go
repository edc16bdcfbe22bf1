package eurlex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultUserAgent is the User-Agent header sent with EUR-Lex requests.
const DefaultUserAgent = "lexgraph-eurlex-connector/0.2"

// DefaultRequestInterval is the minimum interval between requests.
// EUR-Lex throttles aggressive clients, one request per second is safe.
const DefaultRequestInterval = 1 * time.Second

// maxDocumentBytes bounds a single document download.
const maxDocumentBytes = 32 << 20

// HTTPClient matches the Do method of *http.Client so that tests can
// inject a transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// rateLimitedClient enforces a minimum interval between requests.
type rateLimitedClient struct {
	underlying HTTPClient
	interval   time.Duration

	mu   sync.Mutex
	last time.Time
}

func (c *rateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	if !c.last.IsZero() {
		if elapsed := time.Since(c.last); elapsed < c.interval {
			wait := c.interval - elapsed
			c.mu.Unlock()
			select {
			case <-time.After(wait):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
			c.mu.Lock()
		}
	}
	c.last = time.Now()
	c.mu.Unlock()

	return c.underlying.Do(req)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// RateLimit is the minimum interval between HTTP requests.
	// Default: DefaultRequestInterval.
	RateLimit time.Duration

	// CacheTTL is the time-to-live for cached document bodies.
	// Default: DefaultCacheTTL.
	CacheTTL time.Duration

	// HTTPClient is the underlying transport. Nil means http.DefaultClient.
	HTTPClient HTTPClient

	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
}

// Client downloads act documents from EUR-Lex. Requests are rate limited
// and successful downloads are cached for the configured TTL.
type Client struct {
	httpClient HTTPClient
	cache      *documentCache
	userAgent  string
}

// NewClient creates a Client with the given configuration.
func NewClient(config ClientConfig) *Client {
	underlying := config.HTTPClient
	if underlying == nil {
		underlying = http.DefaultClient
	}
	interval := config.RateLimit
	if interval <= 0 {
		interval = DefaultRequestInterval
	}
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &rateLimitedClient{underlying: underlying, interval: interval},
		cache:      newDocumentCache(ttl),
		userAgent:  userAgent,
	}
}

// FetchDocument downloads the HTML text of the act in the given language.
func (c *Client) FetchDocument(ctx context.Context, celex CELEXNumber, lang string) ([]byte, error) {
	url := celex.DocumentURL(lang)
	if body, ok := c.cache.Get(url); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for CELEX %s: %w", celex, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching CELEX %s: %w", celex, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("document not found for CELEX %s", celex)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("EUR-Lex returned HTTP %d for CELEX %s", resp.StatusCode, celex)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("reading CELEX %s body: %w", celex, err)
	}

	c.cache.Set(url, body)
	return body, nil
}

// Exists performs a HEAD request to check whether the document is
// published on EUR-Lex. Network errors report as not existing.
func (c *Client) Exists(ctx context.Context, celex CELEXNumber, lang string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, celex.DocumentURL(lang), nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}
