package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tartampluch/go-attendance/internal/config"
	"github.com/tartampluch/go-attendance/internal/engine"
)

// RosterRecord is one line of the full roster report.
type RosterRecord struct {
	FirstName string
	LastName  string
	Role      string
	// Action is blank when nothing is due or the ladder was already run.
	Action      string
	WeeksAbsent []int
}

// OutreachRecord is one person who needs to be contacted this week.
type OutreachRecord struct {
	// Position is the person's index in the roster; names are not unique.
	Position    int
	FirstName   string
	LastName    string
	Role        string
	Action      engine.Action
	ActionLabel string
}

// Report holds both output record sets of a run.
type Report struct {
	Header   engine.Header
	Roster   []RosterRecord
	Outreach []OutreachRecord

	labels *Labels
}

// Assemble builds the roster and outreach records from the tracked roll.
func Assemble(h engine.Header, roll []engine.Person, labels *Labels) Report {
	rep := Report{
		Header: h,
		Roster: make([]RosterRecord, 0, len(roll)),
		labels: labels,
	}

	for i, p := range roll {
		role := labels.Role(p.Role)
		action := p.Action()

		weeks := make([]int, len(p.Weeks))
		for i, w := range p.Weeks {
			weeks[i] = w.WeeksAbsent
		}

		rep.Roster = append(rep.Roster, RosterRecord{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Role:        role,
			Action:      labels.Action(action),
			WeeksAbsent: weeks,
		})

		if !p.NeedsOutreach() {
			continue
		}
		rep.Outreach = append(rep.Outreach, OutreachRecord{
			Position:    i,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Role:        role,
			Action:      action,
			ActionLabel: labels.Action(action),
		})
	}

	slog.Info(config.MsgOutreachSummary,
		config.LogKeyComponent, config.CompReport,
		config.LogKeyPersons, len(rep.Roster),
		config.LogKeyOutreach, len(rep.Outreach),
	)
	return rep
}

// RosterRows lays out the roster report: the surviving export headers with
// the member type and action columns inserted after the last name.
func (r Report) RosterRows() [][]string {
	header := []string{
		r.Header.FirstName,
		r.Header.LastName,
		r.labels.Get(config.LKeyColMemberType),
		r.labels.Get(config.LKeyColAction),
	}
	for _, c := range r.Header.Columns {
		header = append(header, c.Label)
	}

	rows := make([][]string, 0, len(r.Roster)+1)
	rows = append(rows, header)
	for _, rec := range r.Roster {
		row := make([]string, 0, 4+len(rec.WeeksAbsent))
		row = append(row, rec.FirstName, rec.LastName, rec.Role, rec.Action)
		for _, w := range rec.WeeksAbsent {
			row = append(row, strconv.Itoa(w))
		}
		rows = append(rows, row)
	}
	return rows
}

// OutreachRows lays out the outreach list: one column per ladder rung, with
// exactly one of them filled in per person.
func (r Report) OutreachRows() [][]string {
	header := []string{
		r.labels.Get(config.LKeyColFirstName),
		r.labels.Get(config.LKeyColLastName),
		r.labels.Get(config.LKeyColMemberType),
	}
	for _, a := range engine.OutreachActions {
		header = append(header, r.labels.Action(a))
	}

	rows := make([][]string, 0, len(r.Outreach)+1)
	rows = append(rows, header)
	for _, rec := range r.Outreach {
		row := []string{rec.FirstName, rec.LastName, rec.Role}
		for _, a := range engine.OutreachActions {
			cell := ""
			if a == rec.Action {
				cell = rec.ActionLabel
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// EncodeCSV renders rows as CSV text.
func EncodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCSVEncode, err)
	}
	return buf.Bytes(), nil
}
