// Package client is a Go client for the job board REST API.
package client

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

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 30 * time.Second

// ErrUnauthorized is returned for 401 responses. The stored token has already
// been cleared when it is returned.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Message extracts the server's message from err, or returns fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type errorEnvelope struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// Client talks to the API rooted at BaseURL, e.g. http://localhost:8080/api.
// It is safe for concurrent use.
type Client struct {
	BaseURL    string
	Tokens     TokenStore
	httpClient *http.Client
}

// New returns a Client with a traced, pooled transport. A zero timeout uses 30s
// and a nil store keeps the token in memory.
func New(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	hc.Transport = otelhttp.NewTransport(hc.Transport)

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Tokens:     tokens,
		httpClient: hc,
	}
}

// request is one API call. Body is JSON-encoded unless raw is set.
type request struct {
	method      string
	path        string
	query       url.Values
	body        any
	raw         io.Reader
	contentType string
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.BaseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var (
		body        = r.raw
		contentType = r.contentType
	)
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	token, err := c.Tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs r and returns the response for the caller to consume. Error
// statuses are turned into *APIError and the body is closed.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var env errorEnvelope
	if b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)); err == nil && json.Unmarshal(b, &env) == nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.RequestID = env.RequestID
		apiErr.Fields = env.Error.Fields
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.Tokens.Clear(); err != nil {
			return nil, fmt.Errorf("%w: %w (clear token: %v)", ErrUnauthorized, apiErr, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	return nil, apiErr
}

// do performs r and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Page selects one page of a listing. Zero values use the server defaults.
type Page struct {
	Page  int
	Limit int
}

func (p Page) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	return q
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
