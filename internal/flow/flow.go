// Package flow implements the token-delegation model: which principal's
// bearer token is attached to outbound tool-server calls under each of the
// three flows (direct, agent, on-behalf-of).
package flow

import (
	"fmt"
	"strings"
)

// Flow is the active delegation mode. It is chosen explicitly by the caller
// and stays fixed for the duration of one orchestrated request; there are no
// automatic transitions between flows.
type Flow int

const (
	// Direct attaches the user's own token; the user identity flows
	// end-to-end and tool servers see sub = user.
	Direct Flow = iota
	// Agent attaches the agent's own client-credentials token; tool servers
	// see sub = agent with no act claim.
	Agent
	// OBO attaches a delegated token issued to the agent on behalf of the
	// user; tool servers see sub = user and act.sub = agent.
	OBO
)

// String returns the lower-case flow name.
func (f Flow) String() string {
	switch f {
	case Direct:
		return "direct"
	case Agent:
		return "agent"
	case OBO:
		return "obo"
	default:
		return fmt.Sprintf("flow(%d)", int(f))
	}
}

// Parse converts a flow name to a Flow. Accepted spellings are
// case-insensitive: "direct", "agent", "obo", "on-behalf-of".
func Parse(s string) (Flow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return Direct, nil
	case "agent":
		return Agent, nil
	case "obo", "on-behalf-of":
		return OBO, nil
	default:
		return Direct, fmt.Errorf("unknown flow %q", s)
	}
}
