package rules

import (
	"strings"

	"github.com/netpulse/go-netpulse/pkg/models"
)

// HeaderPresenceRule records which proxy-indicator headers were present on
// the request.
//
// The signal is informational only and never contributes to the verdict:
// reverse-proxy platforms set these headers on every request, so raw presence
// carries no information about the client. Only the chain shape and external
// lookups are treated as authoritative.
type HeaderPresenceRule struct{}

func NewHeaderPresenceRule() *HeaderPresenceRule {
	return &HeaderPresenceRule{}
}

func (h *HeaderPresenceRule) Name() string {
	return "Proxy Header Presence"
}

func (h *HeaderPresenceRule) Description() string {
	return "Records which proxy-indicator headers the request carried (informational)."
}

func (h *HeaderPresenceRule) Evaluate(sig models.ClientSignal) []models.Signal {
	if len(sig.PresentHeaders) == 0 {
		return nil
	}
	return []models.Signal{{Tag: "proxy-headers:" + strings.Join(sig.PresentHeaders, ",")}}
}
