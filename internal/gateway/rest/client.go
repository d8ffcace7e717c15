package rest

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

	"go-jobsearch-agent/pkg/apperror"
)

// TokenSource supplies the stored bearer credential; "" means anonymous.
// pkg/credstore satisfies this.
type TokenSource interface {
	Load() (string, error)
}

// Client is the shared HTTP plumbing for every backend gateway: base URL
// handling, bearer injection, JSON decoding, and the mapping from transport
// and status failures onto the apperror taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		tokens:  tokens,
	}
}

// NewClientWithHTTP injects a custom http.Client (tests, custom transports).
func NewClientWithHTTP(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

type requestOptions struct {
	authed  bool
	noCache bool
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, opts requestOptions) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if opts.authed {
		token, err := c.tokens.Load()
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if token == "" {
			return nil, apperror.AuthRequired("You must be logged in")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if opts.noCache {
		// Profile data, especially the paid-tier flag, must never be served
		// stale by an intermediate cache.
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	return req, nil
}

// jsonBody marshals v for a request body and sets no error conditions a
// caller could recover from; marshal failure is a programming error.
func jsonBody(v interface{}) io.Reader {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("rest: marshal request body: %v", err))
	}
	return bytes.NewReader(data)
}

// send executes req and decodes a 2xx JSON body into out (out may be nil for
// empty responses). Non-2xx responses are returned as *apperror.AppError via
// errorFromResponse; transport failures map to the network kind.
func (c *Client) send(req *http.Request, out interface{}) error {
	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Protocol("Unexpected response from the backend", err)
	}
	return nil
}

// errorDetail is the backend's 4xx body shape.
type errorDetail struct {
	Detail string `json:"detail"`
}

// errorFromResponse maps a non-2xx response to the error taxonomy. Endpoint
// bindings refine the result where status codes are overloaded (e.g. the
// duplicate-tracking 400).
func errorFromResponse(resp *http.Response) *apperror.AppError {
	var body errorDetail
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperror.AuthFailed(messageOr(body.Detail, "Session rejected"))
	case resp.StatusCode == http.StatusNotFound:
		return apperror.NotFound(messageOr(body.Detail, "Not found"))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return apperror.Validation(messageOr(body.Detail, fmt.Sprintf("Request rejected (HTTP %d)", resp.StatusCode)))
	default:
		return apperror.Internal(fmt.Errorf("backend returned HTTP %d", resp.StatusCode))
	}
}

func messageOr(detail, fallback string) string {
	if detail != "" {
		return detail
	}
	return fallback
}
