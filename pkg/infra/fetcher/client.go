package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultMaxSize   = 512 << 20
	DefaultUserAgent = "texpack"
)

// Client fetches binaries over HTTP(S) with a plain GET. It never retries.
// The bearer token is only sent to trusted hosts.
type Client struct {
	httpClient *http.Client
	timeout    *time.Duration
	userAgent  string
	token      string
	maxSize    int64

	mu           sync.RWMutex
	trustedHosts map[string]struct{}
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(x *Client) {
		x.httpClient = c
	}
}

// WithTimeout sets the per-request timeout. The http.Client given by
// WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = &d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(x *Client) {
		x.userAgent = ua
	}
}

// WithToken sends "Authorization: Bearer <token>" to the given hosts. More
// hosts can be trusted later with TrustHosts.
func WithToken(token string, hosts ...string) Option {
	return func(x *Client) {
		x.token = token
		x.addHosts(hosts)
	}
}

// WithMaxSize limits the accepted body size in bytes, <= 0 disables the limit
func WithMaxSize(n int64) Option {
	return func(x *Client) {
		x.maxSize = n
	}
}

// NewClient creates a new HTTP fetch client
func NewClient(opts ...Option) *Client {
	c := &Client{
		userAgent:    DefaultUserAgent,
		maxSize:      DefaultMaxSize,
		trustedHosts: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := http.Client{Timeout: DefaultTimeout}
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = &hc

	return c
}

// TrustHosts allows the token to be sent to hosts. A host is "name" or
// "name:port" as in URL.Host; URLs are accepted and reduced to their host.
func (c *Client) TrustHosts(hosts ...string) {
	c.addHosts(hosts)
}

func (c *Client) addHosts(hosts []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range hosts {
		if key := hostKey(h); key != "" {
			c.trustedHosts[key] = struct{}{}
		}
	}
}

func (c *Client) trusted(host string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.trustedHosts[strings.ToLower(host)]
	return ok
}

func hostKey(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Host
	}
	return strings.ToLower(s)
}

// FetchBinary downloads rawURL and returns the response body
func (c *Client) FetchBinary(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request",
			goerr.V("url", rawURL),
			goerr.T(types.ErrTagFetch))
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" && c.trusted(req.URL.Host) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request",
			goerr.V("url", rawURL),
			goerr.T(types.ErrTagFetch))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("unexpected status code",
			goerr.V("url", rawURL),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagFetch))
	}

	var body io.Reader = resp.Body
	if c.maxSize > 0 {
		body = io.LimitReader(resp.Body, c.maxSize+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.V("url", rawURL),
			goerr.T(types.ErrTagFetch))
	}
	if c.maxSize > 0 && int64(len(data)) > c.maxSize {
		return nil, goerr.New("response body exceeds size limit",
			goerr.V("url", rawURL),
			goerr.V("max_size", c.maxSize),
			goerr.T(types.ErrTagFetch))
	}

	logging.From(ctx).Debug("Fetched binary", "url", rawURL, "size_bytes", len(data))

	return data, nil
}
