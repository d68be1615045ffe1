// Package enrich implements the optional external IP-intelligence lookups.
//
// Every lookup is best-effort and fail-open: network errors, timeouts,
// non-success statuses and malformed responses all surface as a plain error
// that the engine swallows after a debug log. No lookup result is ever
// load-bearing for a successful response. Every client enforces a bounded
// timeout via its http.Client; a timed-out lookup fails like any other.
package enrich

import "context"

// ProxyResult is the answer from a proxy/VPN detection provider.
type ProxyResult struct {
	// Proxy reports whether the provider flagged the address.
	Proxy bool `json:"proxy"`

	// Type is the provider-reported kind ("VPN", "SOCKS", ...). May be empty.
	Type string `json:"type"`
}

// OrgResult is the answer from an organization/ASN source.
type OrgResult struct {
	IP      string `json:"ip"`
	Org     string `json:"org"`
	Country string `json:"country"`
}

// ProxyLookup resolves an IP to a proxy/VPN answer.
type ProxyLookup interface {
	Lookup(ctx context.Context, ip string) (*ProxyResult, error)
}

// OrgLookup resolves an IP to its owning organization.
type OrgLookup interface {
	Lookup(ctx context.Context, ip string) (*OrgResult, error)
}
