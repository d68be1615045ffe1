package models

// IPInfo carries the organization/country details returned by an external
// IP-intelligence provider. Nil in the verdict when no lookup ran or the
// lookup failed.
type IPInfo struct {
	IP      string `json:"ip"`
	Org     string `json:"org"`
	Country string `json:"country"`
}

// Verdict is the final output of the detection pipeline.
//
// IsProxy and IsVPN are always folded from the contribution flags of the
// collected signals, never set directly, so the booleans can not drift from
// the reasons that explain them. Reasons preserve rule evaluation order and
// are append-only within one request.
type Verdict struct {
	IsProxy bool
	IsVPN   bool
	Reasons []string
	IPInfo  *IPInfo
}

// Enrichment holds the derived values from the external lookups, handed to
// rules that declare the enriched capability. Rules never talk to providers
// themselves; the engine owns all lookups.
type Enrichment struct {
	// HasProxyResult reports whether the proxy/VPN provider returned a usable
	// answer for this request.
	HasProxyResult bool
	ProxyFlag      bool
	ProxyType      string

	// HasOrgResult reports whether an organization lookup returned a usable
	// answer (remote provider or local ASN database).
	HasOrgResult bool
	Org          string
	Country      string
}
