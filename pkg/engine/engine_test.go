package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpulse/go-netpulse/pkg/enrich"
	"github.com/netpulse/go-netpulse/pkg/models"
	"github.com/netpulse/go-netpulse/pkg/rules"
)

type fakeProxyLookup struct {
	calls  int
	result *enrich.ProxyResult
	err    error
}

func (f *fakeProxyLookup) Lookup(_ context.Context, _ string) (*enrich.ProxyResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeOrgLookup struct {
	calls  int
	result *enrich.OrgResult
	err    error
}

func (f *fakeOrgLookup) Lookup(_ context.Context, _ string) (*enrich.OrgResult, error) {
	f.calls++
	return f.result, f.err
}

func newTestEngine(proxy enrich.ProxyLookup, org enrich.OrgLookup) *Engine {
	eng := New(proxy, org, zerolog.Nop())
	eng.AddRule(rules.NewMultiHopRule())
	eng.AddRule(rules.NewPrivateChainRule())
	eng.AddRule(rules.NewHeaderPresenceRule())
	eng.AddRule(rules.DefaultScriptedUARule())
	eng.AddRule(rules.NewProxyTypeRule())
	eng.AddRule(rules.DefaultHostingProviderRule())
	return eng
}

func TestCheckNoIP(t *testing.T) {
	proxy := &fakeProxyLookup{result: &enrich.ProxyResult{Proxy: true, Type: "VPN"}}
	org := &fakeOrgLookup{result: &enrich.OrgResult{Org: "Amazon.com, Inc."}}
	eng := newTestEngine(proxy, org)

	verdict := eng.Check(context.Background(), models.ClientSignal{IP: "unknown"})

	assert.Equal(t, []string{"no-ip"}, verdict.Reasons)
	assert.False(t, verdict.IsProxy)
	assert.False(t, verdict.IsVPN)
	assert.Nil(t, verdict.IPInfo)
	assert.Zero(t, proxy.calls, "no lookup may run without an IP")
	assert.Zero(t, org.calls, "no lookup may run without an IP")
}

func TestCheckVerdictComposition(t *testing.T) {
	t.Run("suspicious chain plus hosting provider", func(t *testing.T) {
		org := &fakeOrgLookup{result: &enrich.OrgResult{IP: "10.0.0.5", Org: "Amazon.com, Inc.", Country: "US"}}
		eng := newTestEngine(&fakeProxyLookup{result: &enrich.ProxyResult{Proxy: false}}, org)

		verdict := eng.Check(context.Background(), models.ClientSignal{
			IP:             "10.0.0.5",
			Hops:           []string{"10.0.0.5", "203.0.113.5"},
			PresentHeaders: []string{"x-forwarded-for"},
		})

		assert.Equal(t, []string{
			"xff-multiple",
			"xff-private-to-public",
			"proxy-headers:x-forwarded-for",
			"hosting-provider:Amazon.com, Inc.",
		}, verdict.Reasons)
		assert.True(t, verdict.IsProxy)
		assert.False(t, verdict.IsVPN)
		require.NotNil(t, verdict.IPInfo)
		assert.Equal(t, "Amazon.com, Inc.", verdict.IPInfo.Org)
		assert.Equal(t, "US", verdict.IPInfo.Country)
	})

	t.Run("vpn answer flips both booleans", func(t *testing.T) {
		proxy := &fakeProxyLookup{result: &enrich.ProxyResult{Proxy: true, Type: "VPN"}}
		eng := newTestEngine(proxy, nil)

		verdict := eng.Check(context.Background(), models.ClientSignal{IP: "203.0.113.5"})

		assert.Equal(t, []string{"proxycheck:VPN"}, verdict.Reasons)
		assert.True(t, verdict.IsProxy)
		assert.True(t, verdict.IsVPN)
	})

	t.Run("home nat case stays clean", func(t *testing.T) {
		eng := newTestEngine(&fakeProxyLookup{result: &enrich.ProxyResult{}}, nil)

		verdict := eng.Check(context.Background(), models.ClientSignal{
			IP:             "10.0.0.5",
			Hops:           []string{"10.0.0.5"},
			PresentHeaders: []string{"x-forwarded-for"},
		})

		assert.False(t, verdict.IsProxy, "a lone private hop must not raise a false positive")
		assert.False(t, verdict.IsVPN)
		assert.Equal(t, []string{"proxy-headers:x-forwarded-for"}, verdict.Reasons)
	})

	t.Run("informational tags never flip the verdict", func(t *testing.T) {
		eng := newTestEngine(&fakeProxyLookup{result: &enrich.ProxyResult{}}, nil)

		verdict := eng.Check(context.Background(), models.ClientSignal{
			IP:             "203.0.113.5",
			Hops:           []string{"203.0.113.5"},
			UserAgent:      "curl/8.0",
			PresentHeaders: []string{"x-forwarded-for", "via"},
		})

		assert.Contains(t, verdict.Reasons, "scripted-ua")
		assert.Contains(t, verdict.Reasons, "proxy-headers:x-forwarded-for,via")
		assert.False(t, verdict.IsProxy)
		assert.False(t, verdict.IsVPN)
	})
}

func TestCheckFailOpen(t *testing.T) {
	t.Run("lookup errors contribute nothing", func(t *testing.T) {
		proxy := &fakeProxyLookup{err: errors.New("timeout")}
		org := &fakeOrgLookup{err: errors.New("bad gateway")}
		eng := newTestEngine(proxy, org)

		verdict := eng.Check(context.Background(), models.ClientSignal{IP: "203.0.113.5"})

		assert.Empty(t, verdict.Reasons)
		assert.False(t, verdict.IsProxy)
		assert.Nil(t, verdict.IPInfo)
		assert.Equal(t, 1, proxy.calls, "each provider is attempted exactly once")
		assert.Equal(t, 1, org.calls)
	})

	t.Run("nil lookups disable their rules", func(t *testing.T) {
		eng := newTestEngine(nil, nil)

		verdict := eng.Check(context.Background(), models.ClientSignal{
			IP:   "10.0.0.5",
			Hops: []string{"10.0.0.5", "203.0.113.5"},
		})

		// Header heuristics still fire without any provider.
		assert.Equal(t, []string{"xff-multiple", "xff-private-to-public"}, verdict.Reasons)
		assert.True(t, verdict.IsProxy)
	})
}

func TestCheckIdempotent(t *testing.T) {
	proxy := &fakeProxyLookup{result: &enrich.ProxyResult{Proxy: true, Type: "VPN"}}
	org := &fakeOrgLookup{result: &enrich.OrgResult{Org: "OVH SAS", Country: "FR"}}
	eng := newTestEngine(proxy, org)

	sig := models.ClientSignal{
		IP:             "203.0.113.5",
		Hops:           []string{"203.0.113.5"},
		UserAgent:      "python-requests/2.31",
		PresentHeaders: []string{"x-forwarded-for"},
	}

	first := eng.Check(context.Background(), sig)
	second := eng.Check(context.Background(), sig)

	assert.Equal(t, first.Reasons, second.Reasons, "reason ordering must be deterministic")
	assert.Equal(t, first.IsProxy, second.IsProxy)
	assert.Equal(t, first.IsVPN, second.IsVPN)
}
