package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/inspectkit/apierror"
	"github.com/kbukum/inspectkit/logger"
	"github.com/kbukum/inspectkit/resilience"
)

// HeaderRequestID carries the client-generated correlation id.
const HeaderRequestID = "X-Request-Id"

// Client is an HTTP client whose failures are returned as
// *apierror.ParsedError.
type Client struct {
	httpClient *http.Client
	config     Config
	cb         *resilience.CircuitBreaker
	log        *logger.Logger
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    cfg.Logger,
	}

	if cfg.CircuitBreaker != nil {
		c.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}

	return c, nil
}

// Do executes an HTTP request and returns the complete response. Any
// failure, including a 4xx or 5xx status, is returned as a
// *apierror.ParsedError alongside the response when one was received.
// With retries enabled that is the response of the last attempt.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Headers[HeaderRequestID] == "" {
		headers := make(map[string]string, len(req.Headers)+1)
		for k, v := range req.Headers {
			headers[k] = v
		}
		headers[HeaderRequestID] = uuid.NewString()
		req.Headers = headers
	}

	var (
		resp *Response
		err  error
	)
	if c.config.Retry != nil {
		resp, err = resilience.Retry(ctx, c.retryConfig(req), func() (*Response, error) {
			return c.doOnce(ctx, req)
		})
	} else {
		resp, err = c.doOnce(ctx, req)
	}
	if err != nil {
		return resp, c.fail(ctx, req, err)
	}
	return resp, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

func (c *Client) retryConfig(req Request) resilience.RetryConfig {
	cfg := *c.config.Retry
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, p *apierror.ParsedError, backoff time.Duration) {
		c.log.Warn("retrying request", logger.Fields(
			logger.FieldOperation, req.op(),
			logger.FieldAttempt, attempt,
			logger.FieldErrorCode, p.Code.String(),
			logger.FieldHTTPStatus, p.Status,
			"backoff", backoff.String(),
		))
		if onRetry != nil {
			onRetry(attempt, p, backoff)
		}
	}
	return cfg
}

// fail classifies err, reports it and fires the session hook.
func (c *Client) fail(ctx context.Context, req Request, err error) *apierror.ParsedError {
	p := apierror.Classify(err)

	logCtx := logger.ContextWithCorrelationID(ctx, req.Headers[HeaderRequestID])
	c.log.WithContext(logCtx).Failure(req.op(), p)
	c.config.Metrics.Record(ctx, req.op(), p)

	if apierror.ShouldLogout(p) && c.config.OnSessionExpired != nil {
		c.config.OnSessionExpired(p)
	}
	return p
}

// doOnce executes a single HTTP request through the circuit breaker.
func (c *Client) doOnce(ctx context.Context, req Request) (*Response, error) {
	if c.cb == nil {
		return c.executeRequest(ctx, req)
	}
	var resp *Response
	err := c.cb.Execute(func() error {
		var execErr error
		resp, execErr = c.executeRequest(ctx, req)
		return execErr
	})
	return resp, err
}

// executeRequest builds and sends the HTTP request.
func (c *Client) executeRequest(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newNoResponseError(ctx, req.op(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		RequestID:  httpReq.Header.Get(HeaderRequestID),
	}

	if readErr != nil {
		return result, newReadError(req.op(), resp.StatusCode, resp.Header, body, readErr)
	}
	if resp.StatusCode >= 400 {
		return result, newResponseError(req.op(), resp.StatusCode, resp.Header, body)
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, newRequestError("encode body: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, newRequestError("create request: %v", err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	// Request headers override client defaults.
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
