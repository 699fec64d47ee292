package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-attendance/internal/config"
)

// EventColumn is one weekly attendance-taking date recognized in the header.
type EventColumn struct {
	// Date is the normalized calendar date (always a Sunday, UTC midnight).
	Date time.Time

	// Label is the header text exactly as it appeared in the export.
	Label string

	// Index is the position of the column in the raw header and in every row.
	Index int
}

// Header is the canonicalized header row of an export.
type Header struct {
	FirstName string
	LastName  string

	// Columns are ordered ascending by date with one entry per distinct date.
	Columns []EventColumn

	// DroppedInvalid counts headers that were not a valid Sunday date.
	DroppedInvalid int

	// DroppedDuplicate counts later events logged on an already kept Sunday.
	DroppedDuplicate int
}

// LastColumn returns the most recent event column, if any.
func (h Header) LastColumn() (EventColumn, bool) {
	if len(h.Columns) == 0 {
		return EventColumn{}, false
	}
	return h.Columns[len(h.Columns)-1], true
}

// CanonicalizeHeaders validates the raw header fields and keeps the Sunday
// event columns. When several events share a Sunday the first one is kept,
// since the first event of the day is the primary (Sunday School) session.
func CanonicalizeHeaders(fields []string) (Header, error) {
	if len(fields) == 0 {
		return Header{}, fmt.Errorf("%w: %s", ErrHeaderFormat, config.ErrHeaderEmpty)
	}
	if len(fields) <= config.IdentityColumns {
		return Header{}, fmt.Errorf("%w: %s", ErrHeaderFormat, config.ErrHeaderTooShort)
	}
	if fields[0] != config.HeaderFirstName || fields[1] != config.HeaderLastName || fields[2] != config.HeaderPercent {
		return Header{}, fmt.Errorf("%w: %s: got %q", ErrHeaderFormat, config.ErrHeaderIdentity, fields[:config.IdentityColumns])
	}

	h := Header{FirstName: fields[0], LastName: fields[1]}
	seen := make(map[time.Time]struct{})

	for i := config.IdentityColumns; i < len(fields); i++ {
		date, ok := parseSunday(fields[i])
		if !ok {
			h.DroppedInvalid++
			continue
		}
		if _, dup := seen[date]; dup {
			h.DroppedDuplicate++
			continue
		}
		seen[date] = struct{}{}
		h.Columns = append(h.Columns, EventColumn{Date: date, Label: fields[i], Index: i})
	}

	// Exports list events chronologically already; a stable sort keeps the
	// first-seen rule intact when they do not.
	slices.SortStableFunc(h.Columns, func(a, b EventColumn) int {
		return a.Date.Compare(b.Date)
	})

	logDrops(h)
	return h, nil
}

// parseSunday parses a month/day/year header and reports whether it is a
// real calendar date falling on a Sunday. Dates that only exist after
// overflow normalization (e.g. 2/30/2024) are rejected.
func parseSunday(label string) (time.Time, bool) {
	parts := strings.Split(label, config.DateSeparator)
	if len(parts) != config.DateParts {
		return time.Time{}, false
	}

	var nums [config.DateParts]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	month, day, year := nums[0], nums[1], nums[2]

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, t.Weekday() == time.Sunday
}

func logDrops(h Header) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	if h.DroppedInvalid > 0 {
		log.Warn(config.MsgHeaderDropped,
			config.LogKeyReason, config.ReasonNotSunday,
			config.LogKeyCount, h.DroppedInvalid)
	}
	if h.DroppedDuplicate > 0 {
		log.Warn(config.MsgHeaderDropped,
			config.LogKeyReason, config.ReasonDuplicate,
			config.LogKeyCount, h.DroppedDuplicate)
	}
	if len(h.Columns) == 0 {
		log.Warn(config.MsgNoEventColumns)
		return
	}
	first, last := h.Columns[0], h.Columns[len(h.Columns)-1]
	log.Debug(config.MsgHeaderKept,
		config.LogKeyCount, len(h.Columns),
		config.LogKeyFirst, first.Label,
		config.LogKeyLast, last.Label)
}
