package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultIPInfoURL = "https://ipinfo.io"

// IPInfoClient queries the ipinfo.io per-IP organization API. Unlike the
// proxy lookup it requires a token; callers skip constructing it entirely
// when none is configured.
type IPInfoClient struct {
	token   string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewIPInfo creates a client with a bounded request timeout.
func NewIPInfo(token string, timeout time.Duration, log zerolog.Logger) *IPInfoClient {
	return &IPInfoClient{
		token:   token,
		baseURL: defaultIPInfoURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// NewIPInfoWithURL overrides the provider endpoint, for tests.
func NewIPInfoWithURL(token, baseURL string, timeout time.Duration, log zerolog.Logger) *IPInfoClient {
	c := NewIPInfo(token, timeout, log)
	c.baseURL = baseURL
	return c
}

// Lookup queries the provider for one IP's organization and country.
func (c *IPInfoClient) Lookup(ctx context.Context, ip string) (*OrgResult, error) {
	url := fmt.Sprintf("%s/%s/json?token=%s", c.baseURL, ip, c.token)

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
		return nil, fmt.Errorf("ipinfo: unexpected status %d", resp.StatusCode)
	}

	var result OrgResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.IP == "" {
		result.IP = ip
	}

	return &result, nil
}
