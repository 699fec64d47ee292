package engine

import "github.com/tartampluch/go-attendance/internal/config"

// Outcome is the attendance classification of one person for one event.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeNotTaken
	OutcomePresent
	OutcomeAbsent
	OutcomeVisiting
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotTaken:
		return "not-taken"
	case OutcomePresent:
		return "present"
	case OutcomeAbsent:
		return "absent"
	case OutcomeVisiting:
		return "visiting"
	default:
		return "unknown"
	}
}

// Role is a person's membership category.
type Role int

const (
	RoleUnknown Role = iota
	RoleMember
	RoleLeader
	RoleVisitor
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleLeader:
		return "leader"
	case RoleVisitor:
		return "visitor"
	default:
		return "unknown"
	}
}

// Classify maps one raw export cell to its outcome and the role it implies.
// Matching is exact and case-sensitive. Unrecognized text yields
// (OutcomeUnknown, RoleUnknown) rather than an error.
func Classify(cell string) (Outcome, Role) {
	switch cell {
	case config.CellMembershipRemoved:
		return OutcomeUnknown, RoleUnknown
	case config.CellNotTaken:
		return OutcomeNotTaken, RoleUnknown
	case config.CellMember:
		return OutcomePresent, RoleMember
	case config.CellLeader:
		return OutcomePresent, RoleLeader
	case config.CellVisitor:
		return OutcomeVisiting, RoleVisitor
	case config.CellAbsent:
		return OutcomeAbsent, RoleUnknown
	default:
		return OutcomeUnknown, RoleUnknown
	}
}
