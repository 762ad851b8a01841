package addresskit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public AddressKit API host.
	DefaultBaseURL = "https://addresskit.cas.so"
	// DefaultTimeout bounds every request unless Config.Timeout is set.
	DefaultTimeout = 10 * time.Second
)

// Config holds AddressKit client configuration. Zero values take the defaults.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Headers are merged over the default Content-Type header; entries here
	// win on key collision.
	Headers map[string]string
	// HTTPClient overrides the transport. Its own Timeout, if any, still applies.
	HTTPClient *http.Client
	// Debug logs every outgoing request and incoming response.
	Debug bool
}

// Client is a read-only client for the AddressKit Vietnam API.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	headers    http.Header
	debug      bool
}

// NewClient constructs a client. The base URL is not validated; a malformed
// URL fails at call time with a transport error.
func NewClient(cfg Config) *Client {
	c := &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		headers:    http.Header{},
		debug:      cfg.Debug,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	c.headers.Set("Content-Type", "application/json")
	for k, v := range cfg.Headers {
		c.headers.Set(k, v)
	}
	return c
}

// New is shorthand for NewClient.
func New(cfg Config) *Client {
	return NewClient(cfg)
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() http.Header { return c.headers.Clone() }

// GetProvinces returns every province in server order.
func (c *Client) GetProvinces(ctx context.Context) ([]Province, error) {
	raw, err := c.request(ctx, "/api/provinces")
	if err != nil {
		return nil, err
	}
	return decodeList[Province](raw)
}

// GetProvince returns the province with the given code, or nil when it does
// not exist or the request fails for any reason.
func (c *Client) GetProvince(ctx context.Context, provinceCode string) *Province {
	return getOne[Province](ctx, c, "/api/provinces/"+provinceCode)
}

// GetDistricts returns the districts of a province in server order.
func (c *Client) GetDistricts(ctx context.Context, provinceCode string) ([]District, error) {
	raw, err := c.request(ctx, "/api/provinces/"+provinceCode+"/districts")
	if err != nil {
		return nil, err
	}
	return decodeList[District](raw)
}

// GetDistrict returns a single district, or nil on any failure.
func (c *Client) GetDistrict(ctx context.Context, provinceCode, districtCode string) *District {
	return getOne[District](ctx, c, "/api/provinces/"+provinceCode+"/districts/"+districtCode)
}

// GetWards returns the wards of a district in server order.
func (c *Client) GetWards(ctx context.Context, provinceCode, districtCode string) ([]Ward, error) {
	raw, err := c.request(ctx, "/api/provinces/"+provinceCode+"/districts/"+districtCode+"/wards")
	if err != nil {
		return nil, err
	}
	return decodeList[Ward](raw)
}

// GetWard returns a single ward, or nil on any failure.
func (c *Client) GetWard(ctx context.Context, provinceCode, districtCode, wardCode string) *Ward {
	return getOne[Ward](ctx, c, "/api/provinces/"+provinceCode+"/districts/"+districtCode+"/wards/"+wardCode)
}

// Unwrap returns the value under "data" when raw is a JSON object carrying
// that key, and raw unchanged otherwise. A record that itself has a "data"
// field is indistinguishable from an envelope and gets unwrapped too.
func Unwrap(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return raw
	}
	if data, ok := obj["data"]; ok {
		return data
	}
	return raw
}

// request performs a GET against baseURL+path bounded by the client timeout
// and returns the body verbatim.
func (c *Client) request(ctx context.Context, path string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, transportError("failed to create request", err)
	}
	req.Header = c.headers.Clone()

	if c.debug {
		log.Debug().
			Str("method", http.MethodGet).
			Str("endpoint", url).
			Msg("[ADDRESSKIT] Outgoing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, "failed to read response", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", url).
			Int("status_code", resp.StatusCode).
			Int("bytes", len(body)).
			Msg("[ADDRESSKIT] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, transportError("failed to decode response", err)
	}
	return raw, nil
}

// classify maps a failed round trip to a timeout or transport error.
func classify(ctx context.Context, msg string, err error) *Error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeoutError(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeoutError(err)
	}
	return transportError(msg, err)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	payload := Unwrap(raw)
	out := []T{}
	if isNull(payload) {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, transportError("failed to decode response", err)
	}
	return out, nil
}

func getOne[T any](ctx context.Context, c *Client, path string) *T {
	raw, err := c.request(ctx, path)
	if err != nil {
		if c.debug {
			log.Debug().Err(err).Str("endpoint", c.baseURL+path).Msg("[ADDRESSKIT] Lookup failed, returning nil")
		}
		return nil
	}
	payload := Unwrap(raw)
	if isNull(payload) {
		return nil
	}
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		if c.debug {
			log.Debug().Err(err).Str("endpoint", c.baseURL+path).Msg("[ADDRESSKIT] Undecodable record, returning nil")
		}
		return nil
	}
	return &v
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
