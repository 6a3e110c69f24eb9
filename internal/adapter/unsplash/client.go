package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/snapfeed/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	defaultPerPage = 10
)

var _ domain.PhotoClient = (*Client)(nil)

// Client lists photos from the Unsplash API.
// Every call is a single attempt; retrying is left to the user.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP timeout for each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a new Unsplash API client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPhotos returns one page of the editorial photo feed.
// page is 1-based; perPage <= 0 uses the API default of 10.
func (c *Client) ListPhotos(ctx context.Context, accessKey string, page, perPage int) ([]domain.Photo, error) {
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	query := url.Values{}
	query.Set("client_id", accessKey)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	body, err := c.doRequest(ctx, http.MethodGet, "/photos", query)
	if err != nil {
		return nil, err
	}

	var photos []Photo
	if err := json.Unmarshal(body, &photos); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrRemoteService, err)
	}

	c.logger.Debug("listed photos", "page", page, "perPage", perPage, "count", len(photos))
	return MapPhotos(photos), nil
}

// doRequest performs a request against the API and classifies failures:
// 401 is ErrUnauthorized, other non-2xx is ErrRemoteService and a missing
// response is ErrConnectivity.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = reqURL + "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConnectivity, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")

	c.logger.Debug("unsplash request", "method", method, "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("unsplash request failed", "error", redact(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectivity, redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrConnectivity, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("unsplash rejected access key", "status", resp.StatusCode)
		return nil, domain.ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("unsplash request error", "status", resp.StatusCode, "body", errorSummary(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrRemoteService, resp.StatusCode)
	}

	return body, nil
}

// errorSummary extracts the API's error list for logging, falling back to the raw body
func errorSummary(body []byte) string {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && len(er.Errors) > 0 {
		return strings.Join(er.Errors, "; ")
	}
	return string(body)
}

// redact strips the query string (which carries client_id) from URL errors
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
		}
	}
	return err
}
