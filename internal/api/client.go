// Package api is the HTTP client for the COOKMATE backend. It speaks the
// backend's loosely-typed JSON and reports failures as *Error or wrapped
// domain.ErrUnreachable.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hammamikhairi/cookmate/internal/domain"
	"github.com/hammamikhairi/cookmate/internal/logger"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

const csrfCookie = "csrftoken"

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTokenSource supplies the bearer token sent on every request. An empty
// token sends no Authorization header.
func WithTokenSource(fn func() string) ClientOption {
	return func(c *Client) { c.token = fn }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetries sets how many times an idempotent GET is retried on network
// errors and 5xx responses.
func WithRetries(n int, initial time.Duration) ClientOption {
	return func(c *Client) {
		c.retries = n
		c.retryInitial = initial
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its cookie jar is
// replaced with the client's own.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		hc.Jar = c.jar
		c.http = hc
	}
}

// Client talks to the backend.
type Client struct {
	base         *url.URL
	http         *http.Client
	jar          http.CookieJar
	token        func() string
	limiter      *rate.Limiter
	retries      int
	retryInitial time.Duration
	log          *logger.Logger
}

// NewClient creates a backend client for baseURL.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base url %q needs scheme and host: %w", baseURL, domain.ErrInvalidInput)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	c := &Client{
		base:         base,
		jar:          jar,
		http:         &http.Client{Timeout: 10 * time.Second, Jar: jar},
		token:        func() string { return "" },
		limiter:      rate.NewLimiter(rate.Limit(10), 5),
		retries:      3,
		retryInitial: 200 * time.Millisecond,
		log:          log,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.base.String() }

// request describes one call.
type request struct {
	method      string
	path        string
	body        any
	raw         []byte // pre-encoded body, used with contentType
	contentType string
	bearer      string // overrides the token source
}

// call performs req and decodes a 2xx JSON body into out (when non-nil).
// GETs are retried with exponential backoff.
func (c *Client) call(ctx context.Context, req request, out any) error {
	var payload []byte
	contentType := req.contentType
	switch {
	case req.raw != nil:
		payload = req.raw
	case req.body != nil:
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("api: marshal %s: %w", req.path, err)
		}
		payload = b
		contentType = "application/json"
	}

	var respBody []byte
	attempt := func() error {
		b, err := c.send(ctx, req, contentType, payload)
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		respBody = b
		return nil
	}

	var err error
	if req.method == http.MethodGet && c.retries > 0 {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = c.retryInitial
		policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retries)), ctx)
		err = backoff.RetryNotify(attempt, policy, func(err error, wait time.Duration) {
			c.log.Debug("api: retrying %s %s in %s: %v", req.method, req.path, wait, err)
		})
	} else {
		err = attempt()
	}
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: unmarshal %s response: %w", req.path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req request, contentType string, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limit: %w", err)
		}
	}

	endpoint := c.base.String() + req.path
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	hr, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	if contentType != "" {
		hr.Header.Set("Content-Type", contentType)
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("X-Request-ID", uuid.NewString())

	token := req.bearer
	if token == "" {
		token = c.token()
	}
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}
	if isMutating(req.method) {
		if csrf := c.csrfToken(); csrf != "" {
			hr.Header.Set("X-CSRFToken", csrf)
		}
	}

	c.log.Debug("api: %s %s (%d bytes)", req.method, endpoint, len(payload))

	resp, err := c.http.Do(hr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("api: %s %s: %w", req.method, req.path, ctx.Err())
		}
		return nil, fmt.Errorf("api: %s %s: %w: %v", req.method, req.path, domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(resp.StatusCode, respBody)
		c.log.Debug("api: %s %s -> %d %s", req.method, req.path, resp.StatusCode, apiErr.Message)
		return nil, apiErr
	}
	return respBody, nil
}

// csrfToken reads the csrftoken cookie the backend set on an earlier response.
func (c *Client) csrfToken() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == csrfCookie {
			return ck.Value
		}
	}
	return ""
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// envelope is the status wrapper most mutating endpoints answer with.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// check turns {"success": false} into an *Error.
func (e envelope) check(status int) error {
	if e.Success != nil && !*e.Success {
		msg := e.Error
		if msg == "" {
			msg = e.Message
		}
		if msg == "" {
			msg = "request was not successful"
		}
		return &Error{StatusCode: status, Message: msg}
	}
	return nil
}
