package engine

import "github.com/tartampluch/go-attendance/internal/config"

// Week is one person's record for one canonical event column.
type Week struct {
	// Column indexes Header.Columns; columns are shared by every person.
	Column int

	Outcome Outcome

	// WeeksAbsent is the running absence counter after this week.
	// config.WeeksAbsentUntracked means the person is not being tracked.
	WeeksAbsent int
}

// Person is one row of the export after classification.
type Person struct {
	FirstName string
	LastName  string

	// Role is the most recent known role. Weeks classified with an unknown
	// role never erase it, so removed members keep what they last were.
	Role Role

	// Weeks holds one entry per canonical event column, in column order.
	Weeks []Week

	// EverSeen reports whether the person is currently in a tracked streak
	// (attended at least once since the last reset).
	EverSeen bool

	// ProcessedThroughLadder latches once the person has gone past the last
	// rung of the outreach ladder. It is never cleared.
	ProcessedThroughLadder bool
}

// LastWeeksAbsent returns the counter of the most recent week, or the
// untracked sentinel when there are no event columns.
func (p Person) LastWeeksAbsent() int {
	if len(p.Weeks) == 0 {
		return config.WeeksAbsentUntracked
	}
	return p.Weeks[len(p.Weeks)-1].WeeksAbsent
}

// Action resolves the outreach action for the person's final state.
func (p Person) Action() Action {
	return ResolveAction(p.LastWeeksAbsent(), p.ProcessedThroughLadder)
}

// NeedsOutreach reports whether the person belongs on the outreach list.
func (p Person) NeedsOutreach() bool {
	return p.Action() != ActionNone
}
