package engine

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-attendance/internal/config"
)

// absenceState is the per-person accumulator threaded through the weeks.
type absenceState struct {
	weeksAbsent int
	everSeen    bool
	processed   bool
}

func newAbsenceState() absenceState {
	return absenceState{weeksAbsent: config.WeeksAbsentUntracked}
}

// next applies one week's outcome.
func (s absenceState) next(o Outcome) absenceState {
	switch o {
	case OutcomePresent, OutcomeVisiting:
		s.everSeen = true
		s.weeksAbsent = 0
	case OutcomeAbsent:
		// Absences before the first attendance are not counted.
		if s.everSeen {
			s.weeksAbsent++
		}
	case OutcomeUnknown:
		// Removed or unrecognized: the person drops out of tracking.
		s.everSeen = false
		s.weeksAbsent = config.WeeksAbsentUntracked
	case OutcomeNotTaken:
		// Carry over.
	}

	if s.everSeen && s.weeksAbsent > config.LadderExhaustedAfter {
		s.processed = true
	}
	return s
}

// TrackAbsence walks the person's weeks in column order, filling in
// WeeksAbsent and the EverSeen / ProcessedThroughLadder flags.
func TrackAbsence(p *Person) {
	s := newAbsenceState()
	for i := range p.Weeks {
		s = s.next(p.Weeks[i].Outcome)
		p.Weeks[i].WeeksAbsent = s.weeksAbsent
	}
	p.EverSeen = s.everSeen
	p.ProcessedThroughLadder = s.processed
}

// CountAbsentWeeks runs TrackAbsence over the whole roll. It fails only when
// a person's weeks are not aligned with the canonical columns.
func CountAbsentWeeks(roll []Person, h Header) error {
	processed := 0
	for i := range roll {
		p := &roll[i]
		if len(p.Weeks) != len(h.Columns) {
			return fmt.Errorf("%s: %s %s has %d weeks, header has %d columns",
				config.ErrWeeksMismatch, p.FirstName, p.LastName, len(p.Weeks), len(h.Columns))
		}
		TrackAbsence(p)
		if p.ProcessedThroughLadder {
			processed++
		}
	}

	slog.Info(config.MsgAbsenceCounted,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyPersons, len(roll),
		config.LogKeyProcessed, processed,
	)
	return nil
}
