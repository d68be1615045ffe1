package rules

import (
	"strings"

	"github.com/netpulse/go-netpulse/pkg/models"
)

// ProxyTypeRule translates a positive proxy/VPN provider answer into a
// verdict-contributing signal. The tag encodes the provider-reported type
// (e.g. "proxycheck:VPN"); a type that mentions VPN also sets the VPN flag.
type ProxyTypeRule struct{}

func NewProxyTypeRule() *ProxyTypeRule {
	return &ProxyTypeRule{}
}

func (p *ProxyTypeRule) Name() string {
	return "External Proxy Lookup"
}

func (p *ProxyTypeRule) Description() string {
	return "Applies the external proxy/VPN provider's per-IP answer."
}

// Evaluate without enrichment produces nothing; this rule only speaks for
// the provider.
func (p *ProxyTypeRule) Evaluate(_ models.ClientSignal) []models.Signal {
	return nil
}

func (p *ProxyTypeRule) EvaluateEnriched(_ models.ClientSignal, enr models.Enrichment) []models.Signal {
	if !enr.HasProxyResult || !enr.ProxyFlag {
		return nil
	}
	proxyType := enr.ProxyType
	if proxyType == "" {
		proxyType = "proxy"
	}
	return []models.Signal{{
		Tag:   "proxycheck:" + proxyType,
		Proxy: true,
		VPN:   strings.Contains(strings.ToLower(proxyType), "vpn"),
	}}
}
