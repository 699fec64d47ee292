package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-attendance/internal/config"
)

const untracked = config.WeeksAbsentUntracked

func personWith(outcomes ...Outcome) Person {
	p := Person{FirstName: "Ada", LastName: "Lovelace"}
	for i, o := range outcomes {
		p.Weeks = append(p.Weeks, Week{Column: i, Outcome: o})
	}
	return p
}

func weeksAbsent(p Person) []int {
	out := make([]int, len(p.Weeks))
	for i, w := range p.Weeks {
		out[i] = w.WeeksAbsent
	}
	return out
}

// TestAbsenceState_StepByStep follows the accumulator week by week.
func TestAbsenceState_StepByStep(t *testing.T) {
	seq := []Outcome{OutcomePresent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent}

	s := newAbsenceState()
	assert.Equal(t, untracked, s.weeksAbsent)
	assert.False(t, s.everSeen)

	for i, o := range seq {
		s = s.next(o)
		assert.Equal(t, i, s.weeksAbsent, "week %d", i+1)
		assert.True(t, s.everSeen, "week %d", i+1)
		assert.False(t, s.processed, "latch must not fire at %d", s.weeksAbsent)
	}

	s = s.next(OutcomeAbsent)
	assert.Equal(t, 6, s.weeksAbsent)
	assert.True(t, s.processed, "sixth consecutive absence latches")

	s = s.next(OutcomePresent)
	assert.Equal(t, 0, s.weeksAbsent)
	assert.True(t, s.processed, "latch survives attendance")

	s = s.next(OutcomeUnknown)
	assert.Equal(t, untracked, s.weeksAbsent)
	assert.False(t, s.everSeen)
	assert.True(t, s.processed, "latch survives a reset")
}

func TestTrackAbsence(t *testing.T) {
	tests := []struct {
		name      string
		outcomes  []Outcome
		want      []int
		everSeen  bool
		processed bool
	}{
		{
			name:     "Five absences after attending",
			outcomes: []Outcome{OutcomePresent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent},
			want:     []int{0, 1, 2, 3, 4, 5},
			everSeen: true,
		},
		{
			name:      "Six absences latch the ladder",
			outcomes:  []Outcome{OutcomePresent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomePresent},
			want:      []int{0, 1, 2, 3, 4, 5, 6, 0},
			everSeen:  true,
			processed: true,
		},
		{
			name:     "Absences before first attendance are not counted",
			outcomes: []Outcome{OutcomeAbsent, OutcomeAbsent, OutcomeVisiting, OutcomeAbsent},
			want:     []int{untracked, untracked, 0, 1},
			everSeen: true,
		},
		{
			name:     "Never seen stays untracked without latching",
			outcomes: []Outcome{OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent},
			want:     []int{untracked, untracked, untracked, untracked, untracked, untracked, untracked},
		},
		{
			name:     "Not taken carries the counter over",
			outcomes: []Outcome{OutcomePresent, OutcomeAbsent, OutcomeNotTaken, OutcomeAbsent},
			want:     []int{0, 1, 1, 2},
			everSeen: true,
		},
		{
			name:     "Not taken before anything stays untracked",
			outcomes: []Outcome{OutcomeNotTaken, OutcomeNotTaken},
			want:     []int{untracked, untracked},
		},
		{
			name:     "Removed membership is a hard reset",
			outcomes: []Outcome{OutcomePresent, OutcomeAbsent, OutcomeAbsent, OutcomeUnknown, OutcomeAbsent},
			want:     []int{0, 1, 2, untracked, untracked},
		},
		{
			name:     "Reattending after reset restarts the streak",
			outcomes: []Outcome{OutcomePresent, OutcomeUnknown, OutcomePresent, OutcomeAbsent, OutcomeAbsent},
			want:     []int{0, untracked, 0, 1, 2},
			everSeen: true,
		},
		{
			name:      "Latch persists through a reset",
			outcomes:  []Outcome{OutcomePresent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeAbsent, OutcomeUnknown},
			want:      []int{0, 1, 2, 3, 4, 5, 6, untracked},
			processed: true,
		},
		{
			name:     "No weeks",
			outcomes: nil,
			want:     []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := personWith(tt.outcomes...)
			TrackAbsence(&p)
			assert.Equal(t, tt.want, weeksAbsent(p))
			assert.Equal(t, tt.everSeen, p.EverSeen)
			assert.Equal(t, tt.processed, p.ProcessedThroughLadder)
		})
	}
}

func TestCountAbsentWeeks(t *testing.T) {
	h := Header{Columns: []EventColumn{{Index: 3}, {Index: 4}}}

	roll := []Person{
		personWith(OutcomePresent, OutcomeAbsent),
		personWith(OutcomeAbsent, OutcomeVisiting),
	}
	require.NoError(t, CountAbsentWeeks(roll, h))
	assert.Equal(t, []int{0, 1}, weeksAbsent(roll[0]))
	assert.Equal(t, []int{untracked, 0}, weeksAbsent(roll[1]))
}

func TestCountAbsentWeeks_Misaligned(t *testing.T) {
	h := Header{Columns: []EventColumn{{Index: 3}, {Index: 4}}}
	roll := []Person{personWith(OutcomePresent)}

	err := CountAbsentWeeks(roll, h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrWeeksMismatch)
}
