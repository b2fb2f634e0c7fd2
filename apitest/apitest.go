// Package apitest provides typed test helpers for apiroute handlers.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client wraps an httptest.Server for convenient API testing.
type Client struct {
	Server *httptest.Server
}

// NewClient starts a test server for h.
func NewClient(t testing.TB, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Response holds a decoded API response.
type Response[T any] struct {
	Status  int
	Headers http.Header
	Body    *T
	Raw     []byte
}

// Get sends a GET request.
func Get[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return Do[Resp](t, c, http.MethodGet, path, nil)
}

// Post sends a POST request with a JSON body.
func Post[Resp any](t testing.TB, c *Client, path string, body any) *Response[Resp] {
	t.Helper()
	return Do[Resp](t, c, http.MethodPost, path, body)
}

// Put sends a PUT request with a JSON body.
func Put[Resp any](t testing.TB, c *Client, path string, body any) *Response[Resp] {
	t.Helper()
	return Do[Resp](t, c, http.MethodPut, path, body)
}

// Patch sends a PATCH request with a JSON body.
func Patch[Resp any](t testing.TB, c *Client, path string, body any) *Response[Resp] {
	t.Helper()
	return Do[Resp](t, c, http.MethodPatch, path, body)
}

// Delete sends a DELETE request.
func Delete[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return Do[Resp](t, c, http.MethodDelete, path, nil)
}

// Do sends a request. A string or []byte body is sent verbatim, anything
// else non-nil is JSON encoded.
func Do[Resp any](t testing.TB, c *Client, method, path string, body any) *Response[Resp] {
	t.Helper()

	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = bytes.NewReader([]byte(b))
	case []byte:
		reqBody = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("apitest: marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("apitest: create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("apitest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("apitest: close body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("apitest: read body: %v", err)
	}

	result := &Response[Resp]{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Raw:     raw,
	}

	if len(bytes.TrimSpace(raw)) > 0 {
		var decoded Resp
		if err := json.Unmarshal(raw, &decoded); err == nil {
			result.Body = &decoded
		}
	}

	return result
}
