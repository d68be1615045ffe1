// Package engine composes the detection pipeline: it owns the external
// lookups, runs the registered rules in order, and folds their signals into
// one explainable verdict.
package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/netpulse/go-netpulse/pkg/clientip"
	"github.com/netpulse/go-netpulse/pkg/enrich"
	"github.com/netpulse/go-netpulse/pkg/models"
	"github.com/netpulse/go-netpulse/pkg/rules"
)

// Engine is the verdict composer.
//
// Architecture principles (shared with the rest of the project):
//   - Engine is rule-agnostic: no type-switching on concrete rule types.
//   - Engine owns all external lookups; rules receive only derived values.
//   - Explainable: every verdict boolean is folded from tagged signals, so
//     the reasons list always accounts for the booleans.
//   - Fail-open: a lookup failure silences that provider's rules and nothing
//     else. The verdict is always produced.
type Engine struct {
	proxyLookup enrich.ProxyLookup
	orgLookup   enrich.OrgLookup
	rules       []rules.Rule
	log         zerolog.Logger
}

// New creates an engine. Either lookup may be nil, which disables the rules
// depending on it; the header heuristics still run.
func New(proxyLookup enrich.ProxyLookup, orgLookup enrich.OrgLookup, log zerolog.Logger) *Engine {
	return &Engine{
		proxyLookup: proxyLookup,
		orgLookup:   orgLookup,
		rules:       make([]rules.Rule, 0),
		log:         log,
	}
}

// AddRule registers a rule. Rules are evaluated in registration order, which
// fixes the ordering of the reasons list.
func (e *Engine) AddRule(r rules.Rule) {
	e.rules = append(e.rules, r)
}

// Check runs the pipeline for one request signal.
//
// When no IP could be resolved the pipeline short-circuits: no lookups are
// attempted, no rules run, and the verdict carries the single "no-ip" reason
// with both booleans false.
func (e *Engine) Check(ctx context.Context, sig models.ClientSignal) *models.Verdict {
	if sig.IP == "" || sig.IP == clientip.Unknown {
		return &models.Verdict{Reasons: []string{"no-ip"}}
	}

	enr := e.lookup(ctx, sig.IP)

	verdict := &models.Verdict{Reasons: make([]string, 0, len(e.rules))}
	for _, rule := range e.rules {
		var signals []models.Signal

		// Capability detection mirrors rule registration: enriched rules get
		// the provider-derived context, plain rules only the request signal.
		if enriched, ok := rule.(rules.EnrichedRule); ok {
			signals = enriched.EvaluateEnriched(sig, enr)
		} else {
			signals = rule.Evaluate(sig)
		}

		for _, s := range signals {
			verdict.Reasons = append(verdict.Reasons, s.Tag)
			verdict.IsProxy = verdict.IsProxy || s.Proxy
			verdict.IsVPN = verdict.IsVPN || s.VPN
		}
	}

	if enr.HasOrgResult {
		verdict.IPInfo = &models.IPInfo{
			IP:      sig.IP,
			Org:     enr.Org,
			Country: enr.Country,
		}
	}

	return verdict
}

// lookup runs the configured providers sequentially and collects whatever
// they returned. Failures are logged at debug level and otherwise swallowed;
// each provider is attempted at most once per request.
func (e *Engine) lookup(ctx context.Context, ip string) models.Enrichment {
	var enr models.Enrichment

	if e.proxyLookup != nil {
		result, err := e.proxyLookup.Lookup(ctx, ip)
		if err != nil {
			e.log.Debug().Err(err).Str("ip", ip).Msg("proxy lookup failed")
		} else {
			enr.HasProxyResult = true
			enr.ProxyFlag = result.Proxy
			enr.ProxyType = result.Type
		}
	}

	if e.orgLookup != nil {
		result, err := e.orgLookup.Lookup(ctx, ip)
		if err != nil {
			e.log.Debug().Err(err).Str("ip", ip).Msg("org lookup failed")
		} else {
			enr.HasOrgResult = true
			enr.Org = result.Org
			enr.Country = result.Country
		}
	}

	return enr
}
