// Package runner is the client of the remote code execution service.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/syssam/classflow"
)

// Service is the name the client reports in errors.
const Service = "code-execution"

// ExecutePath is the path of the execution endpoint.
const ExecutePath = "/code/execute"

type (
	// Request is the payload sent to the execution service.
	Request struct {
		Code string `json:"code"`
		Main string `json:"main"`
	}

	// Result is the opaque output of an execution. Any field may be empty.
	Result struct {
		Stdout        string `json:"stdout,omitempty"`
		Stderr        string `json:"stderr,omitempty"`
		CompileOutput string `json:"compile_output,omitempty"`
		Error         string `json:"error,omitempty"`
	}
)

// Failed reports whether the service reported an error.
func (r *Result) Failed() bool {
	return r.Error != ""
}

// Client calls the execution service over HTTP.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of a single execution.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
	}
}

// WithLogger sets the logger of the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a client for the service at the given base URL.
func New(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("runner: invalid base url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("runner: unsupported scheme in base url %q", base)
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Execute posts the code and entry point to the service. Transport
// failures, non-success statuses and undecodable payloads are returned as
// a *classflow.ExternalServiceError together with a result carrying the
// error text. A result whose Error field is set is returned with an
// *classflow.ExternalServiceError as well. No retries are made.
func (c *Client) Execute(ctx context.Context, req Request) (*Result, error) {
	res, err := c.execute(ctx, req)
	if err != nil {
		c.log.WarnContext(ctx, "code execution failed", slog.String("service", Service), slog.Any("error", err))
		if res == nil {
			res = &Result{}
		}
		if res.Error == "" {
			res.Error = err.Error()
		}
		return res, err
	}
	c.log.DebugContext(ctx, "code executed", slog.Int("stdout_bytes", len(res.Stdout)))
	return res, nil
}

func (c *Client) execute(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, classflow.NewExternalServiceError(Service, 0, "encode request", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+ExecutePath, bytes.NewReader(body))
	if err != nil {
		return nil, classflow.NewExternalServiceError(Service, 0, "build request", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, classflow.NewExternalServiceError(Service, 0, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, classflow.NewExternalServiceError(Service, resp.StatusCode, "read response", err)
	}
	if resp.StatusCode >= 400 {
		return nil, classflow.NewExternalServiceError(Service, resp.StatusCode, strings.TrimSpace(string(payload)), nil)
	}
	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, classflow.NewExternalServiceError(Service, resp.StatusCode, "decode response", err)
	}
	if res.Failed() {
		return &res, classflow.NewExternalServiceError(Service, resp.StatusCode, res.Error, nil)
	}
	return &res, nil
}

// IsCanceled reports whether err stems from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
