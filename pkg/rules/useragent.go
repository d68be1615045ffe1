package rules

import (
	"strings"

	"github.com/netpulse/go-netpulse/pkg/models"
)

// ScriptedUARule detects user-agent strings of well-known scripted HTTP
// clients. Informational only: scripted clients are routine (monitoring,
// health checks, integrations) and prove nothing about proxying.
type ScriptedUARule struct {
	agents []string
}

// NewScriptedUARule creates a rule with a custom substring list. Matching is
// case-insensitive.
func NewScriptedUARule(agents []string) *ScriptedUARule {
	lowered := make([]string, len(agents))
	for i, a := range agents {
		lowered[i] = strings.ToLower(a)
	}
	return &ScriptedUARule{agents: lowered}
}

// DefaultScriptedUARule covers the common CLI and library clients.
func DefaultScriptedUARule() *ScriptedUARule {
	return NewScriptedUARule([]string{
		"curl",
		"wget",
		"python-requests",
		"httpclient",
		"postman",
		"libhttp",
		"okhttp",
		"node-fetch",
	})
}

func (s *ScriptedUARule) Name() string {
	return "Scripted User-Agent"
}

func (s *ScriptedUARule) Description() string {
	return "Checks the User-Agent against known scripted-client names (informational)."
}

func (s *ScriptedUARule) Evaluate(sig models.ClientSignal) []models.Signal {
	ua := strings.ToLower(sig.UserAgent)
	if ua == "" {
		return nil
	}
	for _, agent := range s.agents {
		if strings.Contains(ua, agent) {
			return []models.Signal{{Tag: "scripted-ua"}}
		}
	}
	return nil
}
