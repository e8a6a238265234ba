package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

const (
	DefaultMinInterval = time.Millisecond * 500
	DefaultUserAgent   = "rawz/1.0"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ThrottledClient spaces out requests to the same client so scraped sites are not hammered.
// Failed requests are returned as-is, they are never retried.
// The client can be used concurrently
type ThrottledClient struct {
	mu          sync.Mutex
	client      HTTPClient
	minInterval time.Duration
	userAgent   string
	last        time.Time
	sleep       func(time.Duration)
}

// ClientOption is a function that can be used to configure a ThrottledClient
type ClientOption func(*ThrottledClient)

// NewThrottledClient creates a new ThrottledClient
func NewThrottledClient(opts ...ClientOption) *ThrottledClient {
	c := &ThrottledClient{
		client:      http.DefaultClient,
		minInterval: DefaultMinInterval,
		userAgent:   DefaultUserAgent,
		sleep:       time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithMinInterval sets the minimum time between two requests
func WithMinInterval(d time.Duration) ClientOption {
	return func(c *ThrottledClient) {
		c.minInterval = d
	}
}

// WithUserAgent sets the user agent sent when the request has none
func WithUserAgent(ua string) ClientOption {
	return func(c *ThrottledClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets the http client to use for the client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *ThrottledClient) {
		c.client = client
	}
}

// Do waits for the throttle window and executes the request
func (c *ThrottledClient) Do(req *http.Request) (*http.Response, error) {
	c.wait()

	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return c.client.Do(req)
}

func (c *ThrottledClient) wait() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.minInterval > 0 && !c.last.IsZero() {
		elapsed := time.Since(c.last)
		if elapsed < c.minInterval {
			c.sleep(c.minInterval - elapsed + c.jitter())
		}
	}

	c.last = time.Now()
}

// jitter staggers requests by up to a tenth of the interval
func (c *ThrottledClient) jitter() time.Duration {
	max := int64(c.minInterval / 10)
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(max))
}
