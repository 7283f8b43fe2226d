// Package remote implements the service contract over outbound network
// calls to the API server, making it interchangeable with the local
// storage-backed services. Selection between the two is a deployment-time
// configuration choice, not a runtime fallback: there is no sync or
// conflict resolution between the modes.
package remote

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"bizplan/internal/datasource"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultProbeTimeout = 3 * time.Second
)

// Config holds the client settings. Timeout bounds every data operation;
// ProbeTimeout bounds only the availability check and is deliberately short
// so a dead server is noticed quickly.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	ProbeTimeout time.Duration
	Token        string

	// Transport optionally replaces the default HTTP transport, e.g. for
	// proxying or test doubles. It is still wrapped for tracing.
	Transport http.RoundTripper
}

// Client is a JSON/HTTP client for the API server. It owns the process-wide
// connectivity flag for its base URL. Safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	probe   *http.Client
	status  statusTracker
}

// NewClient constructs a client. The connectivity flag starts disconnected
// until the first probe or successful request says otherwise.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	transport := otelhttp.NewTransport(base)
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout, Transport: transport},
		probe:   &http.Client{Timeout: probeTimeout, Transport: transport},
	}
	c.status.set(StatusDisconnected)
	return c
}

// Status returns the last observed connectivity.
func (c *Client) Status() ConnectionStatus { return c.status.get() }

// SetStatus overrides the connectivity flag. Exposed so callers embedding
// the client in a larger lifecycle can reset it explicitly.
func (c *Client) SetStatus(s ConnectionStatus) { c.status.set(s) }

// CheckAvailability probes the health endpoint with the short timeout and
// records the observed reachability. It never fails: unreachable just means
// false.
func (c *Client) CheckAvailability(ctx context.Context) bool {
	c.status.set(StatusConnecting)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		c.status.set(StatusDisconnected)
		return false
	}
	c.setHeaders(req)

	res, err := c.probe.Do(req)
	if err != nil {
		c.status.set(StatusDisconnected)
		return false
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		c.status.set(StatusDisconnected)
		return false
	}
	c.status.set(StatusConnected)
	return true
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// envelope is the API server's uniform response shape.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// callParams identifies one API operation. Entity and ID feed the storage
// error taxonomy so remote failures look exactly like local ones.
type callParams struct {
	method string
	path   string
	query  url.Values
	body   any
	entity string
	op     string
	id     string
}

// call performs one JSON round trip. Transport failures mark the client
// disconnected and surface as *datasource.OperationError; a 404 surfaces as
// *datasource.NotFoundError; any other non-2xx status carries the server's
// message. No retries: the caller decides whether to retry.
func call[T any](ctx context.Context, c *Client, p callParams) (T, error) {
	var zero T

	var body io.Reader
	if p.body != nil {
		raw, err := json.Marshal(p.body)
		if err != nil {
			return zero, &datasource.OperationError{Entity: p.entity, Op: p.op, Err: err}
		}
		body = bytes.NewReader(raw)
	}

	u := c.baseURL + p.path
	if len(p.query) > 0 {
		u += "?" + p.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, p.method, u, body)
	if err != nil {
		return zero, &datasource.OperationError{Entity: p.entity, Op: p.op, Err: err}
	}
	c.setHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		c.status.set(StatusDisconnected)
		return zero, &datasource.OperationError{Entity: p.entity, Op: p.op, Err: err}
	}
	defer res.Body.Close()

	c.status.set(StatusConnected)

	if res.StatusCode == http.StatusNotFound {
		return zero, &datasource.NotFoundError{Entity: p.entity, ID: p.id}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var env envelope[json.RawMessage]
		if err := json.NewDecoder(res.Body).Decode(&env); err == nil && env.Message != "" {
			return zero, &datasource.OperationError{
				Entity: p.entity, Op: p.op,
				Err: fmt.Errorf("server rejected request: %s", env.Message),
			}
		}
		return zero, &datasource.OperationError{
			Entity: p.entity, Op: p.op,
			Err: fmt.Errorf("unexpected status %d", res.StatusCode),
		}
	}

	var env envelope[T]
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		if err == io.EOF {
			// No body (e.g. delete). Nothing to decode.
			return zero, nil
		}
		return zero, &datasource.OperationError{Entity: p.entity, Op: p.op, Err: err}
	}
	if !env.Success {
		return zero, &datasource.OperationError{
			Entity: p.entity, Op: p.op,
			Err: fmt.Errorf("server reported failure: %s", env.Message),
		}
	}
	return env.Data, nil
}
