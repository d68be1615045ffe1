package rules

import "github.com/netpulse/go-netpulse/pkg/models"

// Rule is the base interface every detection rule implements.
//
// A rule inspects one request's ClientSignal and returns zero or more tagged
// signals. Rules are pure: no network calls, no shared state. Rules that need
// provider-derived data implement EnrichedRule instead.
type Rule interface {
	// Name is the rule's unique identifier (e.g. "XFF Multiple Hops").
	Name() string

	// Description is a short human-readable explanation of what the rule checks.
	Description() string

	// Evaluate runs the rule against the request signal.
	Evaluate(sig models.ClientSignal) []models.Signal
}

// EnrichedRule is an optional capability for rules that consume external
// lookup results. The engine detects this interface by type assertion and
// passes the enrichment context; rules never perform lookups themselves.
type EnrichedRule interface {
	Rule

	// EvaluateEnriched runs the rule with provider-derived values.
	EvaluateEnriched(sig models.ClientSignal, enr models.Enrichment) []models.Signal
}
