// Package http is the request chokepoint of the client: it attaches the
// bearer token, encodes JSON bodies and unwraps the {code, msg, data}
// envelope every Bitable response uses.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/bitable/internal/auth"
	"github.com/fivetwenty-io/bitable/internal/constants"
	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// Static errors for err113 compliance.
var (
	ErrInvalidEnvelope = errors.New("response is not a bitable envelope")
)

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response holds the transport level result. Data is the raw "data" member
// of a successful envelope.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Data       json.RawMessage
}

// Client sends requests through a single-attempt retryablehttp transport.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	transport    *retryablehttp.Client
	logger       bitable.Logger
	debug        bool
	userAgent    string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger bitable.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.transport.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying net/http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.transport.HTTPClient = httpClient
	}
}

// WithTransport shares an existing transport, e.g. with the token manager.
func WithTransport(transport *retryablehttp.Client) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// NewTransport builds a retryablehttp client that makes exactly one attempt
// and hands every response back unchanged.
func NewTransport(timeout time.Duration) *retryablehttp.Client {
	transport := retryablehttp.NewClient()
	transport.RetryMax = 0
	transport.Logger = nil
	transport.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	transport.HTTPClient.Timeout = timeout

	return transport
}

// NewClient creates a client for baseURL. tokenManager may be nil, in which
// case no Authorization header is sent.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		transport:    NewTransport(constants.DefaultHTTPTimeout),
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do sends the request and unwraps the envelope. A non-zero envelope code
// is returned as *bitable.APIError together with the raw response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logRequest(req)

	start := time.Now()

	httpResp, err := c.transport.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logResponse(req, httpResp.StatusCode, time.Since(start))

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	data, err := unwrapEnvelope(httpResp.StatusCode, body)
	if err != nil {
		return resp, err
	}

	resp.Data = data

	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DecodeData unmarshals the data member of a successful response.
func DecodeData(resp *Response, target interface{}) error {
	err := json.Unmarshal(resp.Data, target)
	if err != nil {
		return fmt.Errorf("parsing response data: %w", err)
	}

	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var rawBody interface{}

	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		rawBody = bytes.NewReader(payload)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

type envelope struct {
	Code *int            `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func unwrapEnvelope(statusCode int, body []byte) (json.RawMessage, error) {
	var env envelope

	err := json.Unmarshal(body, &env)
	if err != nil || env.Code == nil {
		if statusCode >= http.StatusBadRequest {
			msg := strings.TrimSpace(string(body))
			if msg == "" {
				msg = http.StatusText(statusCode)
			}

			return nil, &bitable.APIError{Code: bitable.ErrorCodeUnparsable, Msg: msg, HTTPStatus: statusCode}
		}

		return nil, fmt.Errorf("%w (status %d)", ErrInvalidEnvelope, statusCode)
	}

	if *env.Code != 0 {
		return nil, &bitable.APIError{Code: *env.Code, Msg: env.Msg, HTTPStatus: statusCode}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return json.RawMessage("{}"), nil
	}

	return env.Data, nil
}

func (c *Client) logRequest(req *Request) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
		"query":  req.Query.Encode(),
	})
}

func (c *Client) logResponse(req *Request, statusCode int, elapsed time.Duration) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"path":        req.Path,
		"status_code": statusCode,
		"duration_ms": elapsed.Milliseconds(),
	})
}
