package rules

import (
	"github.com/netpulse/go-netpulse/pkg/clientip"
	"github.com/netpulse/go-netpulse/pkg/models"
)

// MultiHopRule flags requests whose X-Forwarded-For chain carries more than
// one hop. A multi-hop chain means at least one intermediary (proxy or load
// balancer) appended itself in front of the client.
type MultiHopRule struct{}

func NewMultiHopRule() *MultiHopRule {
	return &MultiHopRule{}
}

func (m *MultiHopRule) Name() string {
	return "XFF Multiple Hops"
}

func (m *MultiHopRule) Description() string {
	return "Checks whether the forwarded-for chain records more than one hop."
}

func (m *MultiHopRule) Evaluate(sig models.ClientSignal) []models.Signal {
	if len(sig.Hops) > 1 {
		return []models.Signal{{Tag: "xff-multiple", Proxy: true}}
	}
	return nil
}

// PrivateChainRule flags the suspicious hop pattern where the chain starts at
// a private address but exits through a public one: the request originated
// inside a private network and was relayed out by something that kept the
// internal address visible.
//
// A single private hop with no chain behind it is the common device-behind-
// home-NAT case and is deliberately not flagged.
type PrivateChainRule struct{}

func NewPrivateChainRule() *PrivateChainRule {
	return &PrivateChainRule{}
}

func (p *PrivateChainRule) Name() string {
	return "XFF Private-to-Public"
}

func (p *PrivateChainRule) Description() string {
	return "Checks for a forwarded-for chain that starts private and exits public."
}

func (p *PrivateChainRule) Evaluate(sig models.ClientSignal) []models.Signal {
	if len(sig.Hops) < 2 {
		return nil // NAT case: a lone private hop is normal
	}
	first := sig.Hops[0]
	last := sig.Hops[len(sig.Hops)-1]
	if clientip.IsPrivate(first) && clientip.IsPublic(last) {
		return []models.Signal{{Tag: "xff-private-to-public", Proxy: true}}
	}
	return nil
}
