// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// DefaultRESTTimeout bounds a single REST request
const DefaultRESTTimeout = 30 * time.Second

// redactionPatterns match secrets in JSON bodies before they are logged
var redactionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"password"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"secret"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"private-key"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"passphrase"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"authentication-key"\s*:\s*"[^"]*"`),
}

// redactJSON masks the values of sensitive attributes
func redactJSON(s string) string {
	for _, re := range redactionPatterns {
		s = re.ReplaceAllStringFunc(s, func(m string) string {
			key := m[:strings.Index(m, ":")]
			return key + `:"***"`
		})
	}
	return s
}

// RESTClient is a backend for the REST API of RouterOS v7 (/rest/...)
type RESTClient struct {
	// BaseURL is the scheme and host, e.g. "https://192.168.88.1"
	BaseURL string

	username   string
	password   string
	httpClient *http.Client
	logger     Logger
}

// RESTOption configures a RESTClient
type RESTOption func(*RESTClient)

// RESTCredentials sets the basic-auth credentials
func RESTCredentials(username, password string) RESTOption {
	return func(c *RESTClient) {
		c.username = username
		c.password = password
	}
}

// RESTHTTPClient replaces the HTTP client
func RESTHTTPClient(hc *http.Client) RESTOption {
	return func(c *RESTClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// RESTInsecureSkipVerify disables TLS certificate verification of the
// default HTTP client (RouterOS uses self-signed certificates by default)
func RESTInsecureSkipVerify() RESTOption {
	return func(c *RESTClient) {
		c.httpClient = &http.Client{
			Timeout: DefaultRESTTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // explicit opt-in
			},
		}
	}
}

// RESTLogger sets the logger
func RESTLogger(logger Logger) RESTOption {
	return func(c *RESTClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRESTClient creates a REST backend for baseURL
//
// Example:
//
//	client, err := routeros.NewRESTClient("https://192.168.88.1",
//	    routeros.RESTCredentials("admin", "secret"))
func NewRESTClient(baseURL string, opts ...RESTOption) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL has no host: %s", baseURL)
	}

	c := &RESTClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultRESTTimeout},
		logger:     &NoOpLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends one request to /rest/<path> and returns the response.
// A non-2xx status is not an error here; see RESTRes.Error.
func (c *RESTClient) Do(ctx context.Context, method, path string, body *Body) (RESTRes, error) {
	var reader io.Reader
	payload := ""
	if body != nil {
		s, err := body.String()
		if err != nil {
			return RESTRes{}, fmt.Errorf("build request body: %w", err)
		}
		payload = s
		reader = strings.NewReader(s)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/rest/"+path, reader)
	if err != nil {
		return RESTRes{}, err
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug(ctx, "RouterOS REST request",
		"method", method,
		"path", path,
		"body", redactJSON(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RESTRes{}, &TransportError{Op: "http", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return RESTRes{}, &TransportError{Op: "read", Err: err}
	}
	res := RESTRes{StatusCode: resp.StatusCode, Body: string(data)}

	c.logger.Debug(ctx, "RouterOS REST response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"body", redactJSON(res.Body))
	return res, nil
}

// write performs a write request and maps failures to *OperationError
func (c *RESTClient) write(ctx context.Context, op, method, path string, body *Body) error {
	res, err := c.Do(ctx, method, path, body)
	if err == nil {
		err = res.Error()
	}
	if err != nil {
		c.logger.Error(ctx, "RouterOS REST write failed",
			"operation", op,
			"path", path,
			"error", err.Error())
		return &OperationError{Operation: op, Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

func idPath(r Resource) (string, error) {
	id, ok := IDField(r)
	if !ok {
		return "", ErrNoIDField
	}
	return r.ResourcePath() + "/" + url.PathEscape(id.Accessor.APIValue(FormatAPI)), nil
}

// List implements Backend with GET /rest/<path>
//
// Paths the device does not know yield an empty list.
func (c *RESTClient) List(ctx context.Context, newResource func() Resource) ([]Resource, error) {
	path := newResource().ResourcePath()
	if err := validatePath(path); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	res, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusNotFound ||
		strings.Contains(res.GetValue("detail").String(), "no such command") {
		return nil, nil
	}
	if err := res.Error(); err != nil {
		return nil, &OperationError{Operation: "list", Path: path, Message: err.Error(), Err: err}
	}

	var errs error
	rows := res.Rows()
	out := make([]Resource, 0, len(rows))
	for _, row := range rows {
		r := newResource()
		errs = multierr.Append(errs, decodeRow(r, row))
		out = append(out, r)
	}
	return out, errs
}

// Add implements Backend with PUT /rest/<path>
func (c *RESTClient) Add(ctx context.Context, r Resource) error {
	body := ResourceBody(r, false)
	return c.write(ctx, "add", http.MethodPut, r.ResourcePath(), &body)
}

// Update implements Backend with PATCH /rest/<path>/<id>
func (c *RESTClient) Update(ctx context.Context, r Resource) error {
	path, err := idPath(r)
	if err != nil {
		return &OperationError{Operation: "set", Path: r.ResourcePath(), Message: err.Error(), Err: err}
	}
	body := ResourceBody(r, false)
	return c.write(ctx, "set", http.MethodPatch, path, &body)
}

// Set implements Backend for single resources with POST /rest/<path>/set
func (c *RESTClient) Set(ctx context.Context, r Resource) error {
	body := ResourceBody(r, false)
	return c.write(ctx, "set", http.MethodPost, r.ResourcePath()+"/set", &body)
}

// Delete implements Backend with DELETE /rest/<path>/<id>
func (c *RESTClient) Delete(ctx context.Context, r Resource) error {
	path, err := idPath(r)
	if err != nil {
		return &OperationError{Operation: "remove", Path: r.ResourcePath(), Message: err.Error(), Err: err}
	}
	return c.write(ctx, "remove", http.MethodDelete, path, nil)
}
