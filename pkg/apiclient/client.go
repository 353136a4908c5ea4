// Package apiclient is a typed Go client for the gym API.
//
// Every wrapper fixes its HTTP method and path. Callers may add query values,
// headers and (for wrappers without a typed body) a body through
// RequestOptions, but can never change where a request goes.
//
// A response carrying an envelope is returned as the envelope, whether the
// outcome was a success or an application error; branch on Result(). Only
// transport failures and non-2xx responses without an envelope are errors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gymstudio/pkg/envelope"
)

const maxBodyBytes = 10 << 20

type Client struct {
	baseURL string
	http    *http.Client
	headers http.Header
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for baseURL, e.g. "http://localhost:8000/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		headers: http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// RequestOptions is the per-call options bag.
type RequestOptions struct {
	Query   url.Values
	Headers http.Header
	Body    any
}

// merge folds caller options into the wrapper's fixed request. Query values
// are appended, headers replace same-named ones, and the caller's body is
// used only when the wrapper has none.
func merge(fixed RequestOptions, extra *RequestOptions) RequestOptions {
	out := RequestOptions{Query: url.Values{}, Headers: http.Header{}, Body: fixed.Body}
	for k, vs := range fixed.Query {
		out.Query[k] = append(out.Query[k], vs...)
	}
	for k, vs := range fixed.Headers {
		out.Headers[k] = append([]string(nil), vs...)
	}
	if extra == nil {
		return out
	}
	for k, vs := range extra.Query {
		out.Query[k] = append(out.Query[k], vs...)
	}
	for k, vs := range extra.Headers {
		out.Headers[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	if out.Body == nil {
		out.Body = extra.Body
	}
	return out
}

// TransportError is returned when no envelope could be read from the response.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("apiclient: status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return "apiclient: " + e.Err.Error()
	default:
		return fmt.Sprintf("apiclient: unexpected status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, method, path string, fixed RequestOptions, extra *RequestOptions) (*rawResponse, error) {
	opts := merge(fixed, extra)

	u := c.baseURL + path
	if len(opts.Query) > 0 {
		u += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, vs := range opts.Headers {
		req.Header[k] = vs
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

// do runs one request and decodes the envelope.
func do[T any](ctx context.Context, c *Client, method, path string, fixed RequestOptions, extra *RequestOptions) (*envelope.Envelope[T], error) {
	resp, err := c.send(ctx, method, path, fixed, extra)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

func decode[T any](resp *rawResponse) (*envelope.Envelope[T], error) {
	var probe struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(resp.body, &probe); err != nil || probe.Success == nil {
		if err == nil {
			err = fmt.Errorf("response has no envelope")
		}
		return nil, &TransportError{StatusCode: resp.status, Body: resp.body, Err: err}
	}

	var env envelope.Envelope[T]
	if *probe.Success {
		if err := json.Unmarshal(resp.body, &env); err != nil {
			return nil, &TransportError{StatusCode: resp.status, Body: resp.body, Err: err}
		}
		return &env, nil
	}

	// failures carry no meaningful data; don't let a stray payload break decoding
	var failed envelope.Envelope[json.RawMessage]
	if err := json.Unmarshal(resp.body, &failed); err != nil {
		return nil, &TransportError{StatusCode: resp.status, Body: resp.body, Err: err}
	}
	env.ErrorCode = failed.ErrorCode
	env.ErrorMessage = failed.ErrorMessage
	env.ShowType = failed.ShowType
	return &env, nil
}
