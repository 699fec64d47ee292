package engine

import "github.com/tartampluch/go-attendance/internal/config"

// Action is the outreach step due for a person this week.
type Action int

const (
	ActionNone Action = iota
	ActionText
	ActionPostCard
	ActionPhoneCall
	ActionVisit
)

// OutreachActions lists the ladder rungs in escalation order.
var OutreachActions = []Action{ActionText, ActionPostCard, ActionPhoneCall, ActionVisit}

func (a Action) String() string {
	switch a {
	case ActionText:
		return "text"
	case ActionPostCard:
		return "post-card"
	case ActionPhoneCall:
		return "phone-call"
	case ActionVisit:
		return "visit"
	default:
		return "none"
	}
}

// ResolveAction maps last week's absence counter to an outreach action.
// A person who already went through the whole ladder is never re-triggered.
func ResolveAction(weeksAbsent int, processedThroughLadder bool) Action {
	if processedThroughLadder {
		return ActionNone
	}
	switch weeksAbsent {
	case config.WeeksAbsentText:
		return ActionText
	case config.WeeksAbsentPostCard:
		return ActionPostCard
	case config.WeeksAbsentCall:
		return ActionPhoneCall
	case config.WeeksAbsentVisit:
		return ActionVisit
	default:
		return ActionNone
	}
}
