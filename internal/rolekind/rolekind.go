// Package rolekind defines the four-way DRRP role taxonomy shared by the
// RoleMatcher, ClauseRefiner, and DutyType classifier. It depends only on
// actorlib, so those three can depend on it without depending on each other.
package rolekind

import "github.com/shotleylegal/taxaengine/internal/actorlib"

// Kind is one of duty, right, responsibility, power.
type Kind string

const (
	Duty           Kind = "duty"
	Right          Kind = "right"
	Responsibility Kind = "responsibility"
	Power          Kind = "power"
)

// Tag returns the human-readable duty_type tag a Kind produces.
func (k Kind) Tag() string {
	switch k {
	case Duty:
		return "Duty"
	case Right:
		return "Right"
	case Responsibility:
		return "Responsibility"
	case Power:
		return "Power"
	default:
		return ""
	}
}

// ActorUniverse returns which actor universe governs this Kind: governed
// actors for duty/right, government actors for responsibility/power.
func (k Kind) ActorUniverse() actorlib.ActorKind {
	switch k {
	case Responsibility, Power:
		return actorlib.Government
	default:
		return actorlib.Governed
	}
}

// All enumerates every RoleKind in a stable order, for pipeline stages that
// need to run all four.
var All = []Kind{Duty, Right, Responsibility, Power}
