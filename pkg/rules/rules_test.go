package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpulse/go-netpulse/pkg/models"
)

func sigWithHops(hops ...string) models.ClientSignal {
	ip := "unknown"
	if len(hops) > 0 {
		ip = hops[0]
	}
	return models.ClientSignal{IP: ip, Hops: hops}
}

func TestMultiHopRule(t *testing.T) {
	rule := NewMultiHopRule()

	t.Run("single public hop not flagged", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(sigWithHops("203.0.113.5")))
	})

	t.Run("two hops flagged as proxy", func(t *testing.T) {
		signals := rule.Evaluate(sigWithHops("10.0.0.5", "203.0.113.5"))
		require.Len(t, signals, 1)
		assert.Equal(t, "xff-multiple", signals[0].Tag)
		assert.True(t, signals[0].Proxy)
		assert.False(t, signals[0].VPN)
	})

	t.Run("no chain at all", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(sigWithHops()))
	})
}

func TestPrivateChainRule(t *testing.T) {
	rule := NewPrivateChainRule()

	t.Run("private to public flagged", func(t *testing.T) {
		signals := rule.Evaluate(sigWithHops("10.0.0.5", "203.0.113.5"))
		require.Len(t, signals, 1)
		assert.Equal(t, "xff-private-to-public", signals[0].Tag)
		assert.True(t, signals[0].Proxy)
	})

	t.Run("lone private hop is the NAT case", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(sigWithHops("10.0.0.5")))
	})

	t.Run("public to public not flagged", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(sigWithHops("203.0.113.5", "198.51.100.7")))
	})

	t.Run("malformed last hop not flagged", func(t *testing.T) {
		// A hop that does not parse is neither private nor public.
		assert.Empty(t, rule.Evaluate(sigWithHops("10.0.0.5", "garbage")))
	})
}

func TestHeaderPresenceRule(t *testing.T) {
	rule := NewHeaderPresenceRule()

	t.Run("lists present headers, informational only", func(t *testing.T) {
		sig := models.ClientSignal{PresentHeaders: []string{"x-forwarded-for", "via"}}
		signals := rule.Evaluate(sig)
		require.Len(t, signals, 1)
		assert.Equal(t, "proxy-headers:x-forwarded-for,via", signals[0].Tag)
		assert.False(t, signals[0].Proxy, "header presence must not contribute to the verdict")
		assert.False(t, signals[0].VPN)
	})

	t.Run("no headers no signal", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(models.ClientSignal{}))
	})
}

func TestScriptedUARule(t *testing.T) {
	rule := DefaultScriptedUARule()

	t.Run("curl flagged informational", func(t *testing.T) {
		signals := rule.Evaluate(models.ClientSignal{UserAgent: "curl/8.0"})
		require.Len(t, signals, 1)
		assert.Equal(t, "scripted-ua", signals[0].Tag)
		assert.False(t, signals[0].Proxy)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		assert.Len(t, rule.Evaluate(models.ClientSignal{UserAgent: "PostmanRuntime/7.36"}), 1)
		assert.Len(t, rule.Evaluate(models.ClientSignal{UserAgent: "OkHttp/4.12"}), 1)
	})

	t.Run("browser agent passes", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(models.ClientSignal{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		}))
	})

	t.Run("empty agent passes", func(t *testing.T) {
		assert.Empty(t, rule.Evaluate(models.ClientSignal{}))
	})
}

func TestProxyTypeRule(t *testing.T) {
	rule := NewProxyTypeRule()
	sig := models.ClientSignal{IP: "203.0.113.5"}

	t.Run("vpn answer sets both flags", func(t *testing.T) {
		signals := rule.EvaluateEnriched(sig, models.Enrichment{
			HasProxyResult: true, ProxyFlag: true, ProxyType: "VPN",
		})
		require.Len(t, signals, 1)
		assert.Equal(t, "proxycheck:VPN", signals[0].Tag)
		assert.True(t, signals[0].Proxy)
		assert.True(t, signals[0].VPN)
	})

	t.Run("socks answer is proxy only", func(t *testing.T) {
		signals := rule.EvaluateEnriched(sig, models.Enrichment{
			HasProxyResult: true, ProxyFlag: true, ProxyType: "SOCKS5",
		})
		require.Len(t, signals, 1)
		assert.Equal(t, "proxycheck:SOCKS5", signals[0].Tag)
		assert.True(t, signals[0].Proxy)
		assert.False(t, signals[0].VPN)
	})

	t.Run("missing type falls back to proxy", func(t *testing.T) {
		signals := rule.EvaluateEnriched(sig, models.Enrichment{
			HasProxyResult: true, ProxyFlag: true,
		})
		require.Len(t, signals, 1)
		assert.Equal(t, "proxycheck:proxy", signals[0].Tag)
	})

	t.Run("negative answer no signal", func(t *testing.T) {
		assert.Empty(t, rule.EvaluateEnriched(sig, models.Enrichment{
			HasProxyResult: true, ProxyFlag: false,
		}))
	})

	t.Run("no provider answer no signal", func(t *testing.T) {
		assert.Empty(t, rule.EvaluateEnriched(sig, models.Enrichment{}))
		assert.Empty(t, rule.Evaluate(sig))
	})
}

func TestHostingProviderRule(t *testing.T) {
	rule := DefaultHostingProviderRule()
	sig := models.ClientSignal{IP: "203.0.113.5"}

	t.Run("amazon org flagged", func(t *testing.T) {
		signals := rule.EvaluateEnriched(sig, models.Enrichment{
			HasOrgResult: true, Org: "Amazon.com, Inc.",
		})
		require.Len(t, signals, 1)
		assert.Equal(t, "hosting-provider:Amazon.com, Inc.", signals[0].Tag)
		assert.True(t, signals[0].Proxy)
		assert.False(t, signals[0].VPN)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		signals := rule.EvaluateEnriched(sig, models.Enrichment{
			HasOrgResult: true, Org: "HETZNER Online GmbH",
		})
		require.Len(t, signals, 1)
	})

	t.Run("residential isp passes", func(t *testing.T) {
		assert.Empty(t, rule.EvaluateEnriched(sig, models.Enrichment{
			HasOrgResult: true, Org: "Comcast Cable Communications",
		}))
	})

	t.Run("no org no signal", func(t *testing.T) {
		assert.Empty(t, rule.EvaluateEnriched(sig, models.Enrichment{HasOrgResult: true}))
		assert.Empty(t, rule.EvaluateEnriched(sig, models.Enrichment{}))
	})
}
