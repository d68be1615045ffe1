// Package clientip resolves the originating client address from untrusted
// request metadata and classifies addresses as private or public.
//
// Resolution order: first X-Forwarded-For hop, then X-Real-IP, then the
// transport peer address, then the "unknown" sentinel. Candidates are used
// as-is apart from stripping the IPv4-in-IPv6 prefix; malformed values pass
// through as opaque strings and simply fail downstream classification.
package clientip

import (
	"net"
	"net/http"
	"strings"

	"github.com/netpulse/go-netpulse/pkg/models"
)

// Unknown is the sentinel address used when no candidate resolves.
const Unknown = "unknown"

const mappedPrefix = "::ffff:"

// indicatorHeaders are the proxy-indicator headers recorded (in this order)
// when present on a request. Presence alone is not a verdict signal: reverse
// proxy platforms set these on every request.
var indicatorHeaders = []string{
	"x-forwarded-for",
	"x-forwarded-host",
	"via",
	"x-real-ip",
	"forwarded",
	"x-forwarded-proto",
}

// FromRequest derives the immutable per-request ClientSignal.
func FromRequest(r *http.Request) models.ClientSignal {
	rawXFF := r.Header.Get("X-Forwarded-For")
	hops := SplitHops(rawXFF)

	ip := Unknown
	switch {
	case len(hops) > 0:
		ip = StripMapped(hops[0])
	case r.Header.Get("X-Real-IP") != "":
		ip = StripMapped(strings.TrimSpace(r.Header.Get("X-Real-IP")))
	case r.RemoteAddr != "":
		ip = StripMapped(ParseSocketIP(r.RemoteAddr))
	}

	return models.ClientSignal{
		IP:              ip,
		RawForwardedFor: rawXFF,
		Hops:            hops,
		UserAgent:       r.Header.Get("User-Agent"),
		PresentHeaders:  PresentIndicators(r.Header),
		SocketAddress:   r.RemoteAddr,
	}
}

// SplitHops parses an X-Forwarded-For value into its hop chain: split on
// comma, trimmed, empty entries dropped. Hop values keep their original text
// apart from the mapped-prefix strip.
func SplitHops(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	hops := make([]string, 0, len(parts))
	for _, p := range parts {
		hop := StripMapped(strings.TrimSpace(p))
		if hop != "" {
			hops = append(hops, hop)
		}
	}
	return hops
}

// StripMapped removes the IPv4-in-IPv6 prefix so "::ffff:203.0.113.5"
// classifies like its IPv4 form.
func StripMapped(addr string) string {
	if strings.HasPrefix(strings.ToLower(addr), mappedPrefix) {
		return addr[len(mappedPrefix):]
	}
	return addr
}

// ParseSocketIP extracts the host part of a host:port peer address. Values
// without a port (or unparseable values) are returned unchanged.
func ParseSocketIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// IsPrivate reports whether addr is an RFC1918 or loopback address. Malformed
// addresses return false: classification is a soft predicate, not validation.
func IsPrivate(addr string) bool {
	ip := net.ParseIP(StripMapped(addr))
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback()
}

// IsPublic reports whether addr parses as an IP and is neither private nor
// loopback. A malformed address is neither private nor public.
func IsPublic(addr string) bool {
	ip := net.ParseIP(StripMapped(addr))
	if ip == nil {
		return false
	}
	return !ip.IsPrivate() && !ip.IsLoopback()
}

// PresentIndicators returns the proxy-indicator headers present on h, in
// canonical order.
func PresentIndicators(h http.Header) []string {
	var present []string
	for _, name := range indicatorHeaders {
		if h.Get(name) != "" {
			present = append(present, name)
		}
	}
	return present
}
