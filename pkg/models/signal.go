package models

// ClientSignal is the per-request input to the detection pipeline.
//
// It is derived once from the inbound request metadata and is immutable
// afterwards. All values are untrusted: forwarded headers are client-settable
// and the socket address may belong to a platform load balancer rather than
// the end user.
type ClientSignal struct {
	// IP is the normalized client address, or "unknown" when no candidate
	// could be resolved from any source.
	IP string

	// RawForwardedFor is the unparsed X-Forwarded-For header value, kept for
	// the response echo. Empty when the header was absent.
	RawForwardedFor string

	// Hops is the parsed X-Forwarded-For chain: split on comma, trimmed,
	// empty entries dropped. Leftmost entry is the original client by
	// convention.
	Hops []string

	// UserAgent is the raw User-Agent header value.
	UserAgent string

	// PresentHeaders lists which proxy-indicator headers were present on the
	// request, in canonical order.
	PresentHeaders []string

	// SocketAddress is the transport-level peer address (host:port form as
	// reported by the server).
	SocketAddress string
}

// Signal is a single tagged observation produced by one rule.
//
// The booleans are contribution flags: they declare whether this observation
// counts toward the proxy/VPN verdict. Informational observations carry a tag
// but no contribution, so they show up in the reasons list without flipping
// the verdict.
type Signal struct {
	Tag   string
	Proxy bool
	VPN   bool
}
