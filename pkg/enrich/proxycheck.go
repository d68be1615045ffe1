package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultProxycheckURL = "https://proxycheck.io/v2"

// ProxycheckClient queries the proxycheck.io per-IP proxy/VPN API. The key
// is optional: without one the service is called in anonymous mode (lower
// rate limits, same response shape).
type ProxycheckClient struct {
	key     string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewProxycheck creates a client with a bounded request timeout.
func NewProxycheck(key string, timeout time.Duration, log zerolog.Logger) *ProxycheckClient {
	return &ProxycheckClient{
		key:     key,
		baseURL: defaultProxycheckURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// NewProxycheckWithURL overrides the provider endpoint, for tests.
func NewProxycheckWithURL(key, baseURL string, timeout time.Duration, log zerolog.Logger) *ProxycheckClient {
	c := NewProxycheck(key, timeout, log)
	c.baseURL = baseURL
	return c
}

// proxycheckEntry is the per-IP object inside the provider response.
type proxycheckEntry struct {
	Proxy string `json:"proxy"` // "yes" / "no"
	Type  string `json:"type"`
}

// Lookup queries the provider for one IP. Any failure returns an error and
// no result; the caller decides what (if anything) to do with it.
func (c *ProxycheckClient) Lookup(ctx context.Context, ip string) (*ProxyResult, error) {
	url := fmt.Sprintf("%s/%s?vpn=1", c.baseURL, ip)
	if c.key != "" {
		url += "&key=" + c.key
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proxycheck: unexpected status %d", resp.StatusCode)
	}

	// Response shape: {"status":"ok","<ip>":{"proxy":"yes","type":"VPN"}}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if status, ok := body["status"]; ok {
		var s string
		if err := json.Unmarshal(status, &s); err == nil && s != "ok" && s != "warning" {
			return nil, fmt.Errorf("proxycheck: status %q", s)
		}
	}

	raw, ok := body[ip]
	if !ok {
		return nil, fmt.Errorf("proxycheck: no entry for %s", ip)
	}

	var entry proxycheckEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}

	return &ProxyResult{
		Proxy: entry.Proxy == "yes",
		Type:  entry.Type,
	}, nil
}
