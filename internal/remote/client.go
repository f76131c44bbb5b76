package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-reports/internal/metrics"
	"golang.org/x/time/rate"
)

// Client calls the vendor REST API with a fixed base URL and a static token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTP = hc }
}

// WithRateLimit caps outbound requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.Limiter = nil
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New creates a Client. No request timeout is set; callers bound requests
// through their context.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a collection and returns its records in order. Both the bare
// array and the results-wrapped shapes are accepted.
func (c *Client) Get(ctx context.Context, path string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, path)
	if err != nil {
		return nil, err
	}
	items, err := NormalizeCollection(body)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Path: path, Err: err}
	}
	return items, nil
}

// GetObject fetches a single object and decodes it into out.
func (c *Client) GetObject(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindUnexpected, Path: path, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	endpoint := endpointLabel(path)
	start := time.Now()

	body, err := c.roundTrip(ctx, path)

	outcome := "ok"
	if re, ok := AsError(err); ok {
		outcome = re.Kind.String()
	}
	metrics.VendorRequests.WithLabelValues(endpoint, outcome).Inc()
	metrics.VendorDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithFields(log.Fields{
			"path":     path,
			"outcome":  outcome,
			"duration": time.Since(start),
		}).WithError(err).Debug("Vendor request failed")
	}
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, path string) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindNetwork, Path: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/"+strings.TrimLeft(path, "/"), nil)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Path: path, Err: err}
	}
	req.Header.Set("Authorization", "Token "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(path, resp.StatusCode, body)
	}
	return body, nil
}

var (
	numericSegment = regexp.MustCompile(`/\d+(/|$)`)
	dateSegment    = regexp.MustCompile(`/\d{4}-\d{2}-\d{2}(/|$)`)
)

// endpointLabel collapses ids and dates so metric labels stay bounded.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = dateSegment.ReplaceAllString(path, "/{date}$1")
	path = numericSegment.ReplaceAllString(path, "/{id}$1")
	return path
}
