package services

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

	"elearning-marketplace/internal/models"

	"golang.org/x/net/publicsuffix"
)

// APIConnectorConfig represents API connector configuration
type APIConnectorConfig struct {
	BaseURL    string
	HTTPClient *http.Client // optional; a client with a cookie jar is built when nil
	// Shared marks a connector used on behalf of many users. It keeps no
	// cookie jar, so every protected call must carry its own Authorization.
	Shared bool
}

// APIConnector sends JSON requests to the marketplace API. Unless the
// connector is shared, cookies set by the API are kept in a jar and sent
// back on every later request.
type APIConnector struct {
	baseURL string
	client  *http.Client
}

// Connector is the request surface the purchase flow depends on
type Connector interface {
	Do(ctx context.Context, req APIRequest) (*APIResponse, error)
}

var ErrInvalidMethod = errors.New("invalid HTTP method")

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// APIRequest describes one call. Body, Headers and Params are optional;
// nil means "not provided".
type APIRequest struct {
	Method  string
	URL     string
	Body    any
	Headers map[string]string
	Params  map[string]string
}

// Normalize upper-cases the method and turns empty header and param maps
// into nil. Nothing else is altered.
func (r APIRequest) Normalize() (APIRequest, error) {
	r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
	if !allowedMethods[r.Method] {
		return r, fmt.Errorf("%w: %q", ErrInvalidMethod, r.Method)
	}
	if len(r.Headers) == 0 {
		r.Headers = nil
	}
	if len(r.Params) == 0 {
		r.Params = nil
	}
	return r, nil
}

// APIResponse is a raw API reply
type APIResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body into v
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Envelope decodes the standard {success, message, data} body
func (r *APIResponse) Envelope() (models.APIResponse, error) {
	var envelope models.APIResponse
	err := r.Decode(&envelope)
	return envelope, err
}

// StatusError is returned for non-2xx replies
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// NewAPIConnector creates a connector rooted at cfg.BaseURL
func NewAPIConnector(cfg APIConnectorConfig) (*APIConnector, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	client := cfg.HTTPClient
	switch {
	case client != nil:
	case cfg.Shared:
		client = &http.Client{}
	default:
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		client = &http.Client{Jar: jar}
	}

	return &APIConnector{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}, nil
}

// Send is the positional form of Do
func (c *APIConnector) Send(ctx context.Context, method, url string, body any, headers, params map[string]string) (*APIResponse, error) {
	return c.Do(ctx, APIRequest{
		Method:  method,
		URL:     url,
		Body:    body,
		Headers: headers,
		Params:  params,
	})
}

// Do sends the request and returns the reply. Transport failures and
// non-2xx statuses are returned as errors; there is no retry.
func (c *APIConnector) Do(ctx context.Context, req APIRequest) (*APIResponse, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	target, err := c.resolve(req.URL, req.Params)
	if err != nil {
		return nil, err
	}

	var payload io.Reader
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiResp, newStatusError(apiResp)
	}
	return apiResp, nil
}

func (c *APIConnector) resolve(rawURL string, params map[string]string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}

	if !u.IsAbs() {
		u, err = url.Parse(c.baseURL + "/" + strings.TrimLeft(rawURL, "/"))
		if err != nil {
			return "", fmt.Errorf("invalid request URL: %w", err)
		}
	}

	if params != nil {
		query := u.Query()
		for key, value := range params {
			query.Set(key, value)
		}
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func newStatusError(resp *APIResponse) *StatusError {
	message := http.StatusText(resp.StatusCode)
	if envelope, err := resp.Envelope(); err == nil && envelope.Message != "" {
		message = envelope.Message
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: message, Body: resp.Body}
}
