// Package backend is the REST client of the content-management API that owns
// static pages, property listings and contact inquiries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// StatusOK is the envelope response code of a successful call.
const StatusOK = 200

var (
	// ErrTransport covers network failures and undecodable responses.
	ErrTransport = errors.New("backend transport error")
	// ErrUnexpectedStatus is returned when the envelope carries a non-200 code.
	ErrUnexpectedStatus = errors.New("backend returned unexpected status")
	// ErrNotFound is returned when a lookup yields no document.
	ErrNotFound = errors.New("backend document not found")
)

// Endpoints holds the paths of the backend operations relative to the base URL.
type Endpoints struct {
	AddContactUs        string
	StaticContentByType string
	ViewProperty        string
}

// DefaultEndpoints returns the paths the content API serves today.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		AddContactUs:        "/contactUs/addContactUs",
		StaticContentByType: "/static/getStaticContentByType",
		ViewProperty:        "/property/viewProperty",
	}
}

// Envelope is the uniform response wrapper of every backend call.
type Envelope struct {
	ResponseCode    int             `json:"responseCode"`
	ResponseMessage string          `json:"responseMessage"`
	Result          json.RawMessage `json:"result,omitempty"`
}

// OK reports whether the envelope signals success.
func (e *Envelope) OK() bool {
	return e != nil && e.ResponseCode == StatusOK
}

// StatusError carries the envelope of a non-200 response.
type StatusError struct {
	Endpoint string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: response code %d: %s", e.Endpoint, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client talks to the backend API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	endpoints  Endpoints
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoints overrides the endpoint paths.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for baseURL (e.g. https://api.example.com/api/v1).
// Requests are traced and bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		endpoints: DefaultEndpoints(),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddContactUs posts a contact inquiry. A non-200 envelope is returned with a
// nil error so the caller can surface the server message; only transport
// failures produce an error.
func (c *Client) AddContactUs(ctx context.Context, payload interface{}) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "addContactUs", c.endpoints.AddContactUs, nil, body)
}

// StaticContentByType fetches the first document of a static content type
// such as "about", "privacyPolicy" or "termsCondition".
func (c *Client) StaticContentByType(ctx context.Context, contentType string) (*StaticContent, error) {
	query := url.Values{}
	query.Set("contentType", contentType)

	env, err := c.do(ctx, http.MethodGet, "getStaticContentByType", c.endpoints.StaticContentByType, query, nil)
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, &StatusError{Endpoint: "getStaticContentByType", Code: env.ResponseCode, Message: env.ResponseMessage}
	}

	var result struct {
		Docs []StaticContent `json:"docs"`
	}
	if err := decodeResult(env, &result); err != nil {
		return nil, err
	}
	if len(result.Docs) == 0 {
		return nil, fmt.Errorf("static content %q: %w", contentType, ErrNotFound)
	}
	return &result.Docs[0], nil
}

// ViewProperty fetches a property listing by id.
func (c *Client) ViewProperty(ctx context.Context, id string) (*Property, error) {
	query := url.Values{}
	query.Set("_id", id)

	env, err := c.do(ctx, http.MethodGet, "viewProperty", c.endpoints.ViewProperty, query, nil)
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, &StatusError{Endpoint: "viewProperty", Code: env.ResponseCode, Message: env.ResponseMessage}
	}

	var property Property
	if err := decodeResult(env, &property); err != nil {
		return nil, err
	}
	if property.ID == "" {
		return nil, fmt.Errorf("property %q: %w", id, ErrNotFound)
	}
	return &property, nil
}

func (c *Client) do(ctx context.Context, method, name, path string, query url.Values, body []byte) (*Envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(name, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, name, err)
	}
	defer resp.Body.Close()

	var env Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	switch {
	case decodeErr != nil && resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.metrics.ObserveBackend(name, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %s: failed to decode response: %v", ErrTransport, name, decodeErr)
	case decodeErr != nil || (env.ResponseCode == 0 && resp.StatusCode >= 300):
		// Error pages without an envelope carry their meaning in the HTTP status.
		env.ResponseCode = resp.StatusCode
		if env.ResponseMessage == "" {
			env.ResponseMessage = http.StatusText(resp.StatusCode)
		}
	}

	c.metrics.ObserveBackend(name, strconv.Itoa(env.ResponseCode), time.Since(start))
	c.logger.Debug("backend %s %s -> http %d, code %d", method, name, resp.StatusCode, env.ResponseCode)
	return &env, nil
}

func decodeResult(env *Envelope, out interface{}) error {
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%w: failed to decode result: %v", ErrTransport, err)
	}
	return nil
}
