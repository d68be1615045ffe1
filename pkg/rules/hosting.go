package rules

import (
	"strings"

	"github.com/netpulse/go-netpulse/pkg/models"
)

// HostingProviderRule flags addresses whose owning organization is a known
// cloud/hosting provider. Residential users do not browse from inside AWS;
// an address owned by a datacenter operator is very likely a VPN exit, a
// commercial proxy, or a bot.
//
// Limitations: cannot detect residential VPN exits, and legitimate cloud
// browsers or VDI sessions will match. Risk signal, not proof.
type HostingProviderRule struct {
	providers []string
}

// NewHostingProviderRule creates a rule with a custom provider substring
// list. Matching against the organization name is case-insensitive.
func NewHostingProviderRule(providers []string) *HostingProviderRule {
	lowered := make([]string, len(providers))
	for i, p := range providers {
		lowered[i] = strings.ToLower(p)
	}
	return &HostingProviderRule{providers: lowered}
}

// DefaultHostingProviderRule covers the major cloud and hosting operators.
func DefaultHostingProviderRule() *HostingProviderRule {
	return NewHostingProviderRule([]string{
		"amazon",
		"aws",
		"digitalocean",
		"linode",
		"google",
		"google cloud",
		"microsoft",
		"azure",
		"hetzner",
		"ovh",
		"cloudflare",
		"vultr",
		"dreamhost",
	})
}

func (h *HostingProviderRule) Name() string {
	return "Hosting Provider IP"
}

func (h *HostingProviderRule) Description() string {
	return "Checks whether the IP's organization is a known cloud/hosting provider."
}

func (h *HostingProviderRule) Evaluate(_ models.ClientSignal) []models.Signal {
	return nil
}

func (h *HostingProviderRule) EvaluateEnriched(_ models.ClientSignal, enr models.Enrichment) []models.Signal {
	if !enr.HasOrgResult || enr.Org == "" {
		return nil
	}
	org := strings.ToLower(enr.Org)
	for _, provider := range h.providers {
		if strings.Contains(org, provider) {
			return []models.Signal{{Tag: "hosting-provider:" + enr.Org, Proxy: true}}
		}
	}
	return nil
}
