package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-attendance/internal/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader returns a CSV reader for an attendance export. A leading UTF-8
// byte-order mark is dropped so the first header still reads "first name".
// Every row must have as many fields as the header.
func NewReader(r io.Reader) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = 0
	return cr
}

// ReadHeader reads the header row. An empty input yields an empty header,
// which CanonicalizeHeaders then rejects.
func ReadHeader(r *csv.Reader) ([]string, error) {
	fields, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrHeaderRead, err)
	}
	return fields, nil
}

// BuildRoster reads the remaining rows and classifies each event cell.
func BuildRoster(r *csv.Reader, h Header) ([]Person, error) {
	var roll []Person
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErr := &RowError{Err: err}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rowErr.Line = pe.Line
			}
			return nil, rowErr
		}

		line, _ := r.FieldPos(0)
		p, err := NewPerson(record, h)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		roll = append(roll, p)
	}

	slog.Info(config.MsgRosterBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyPersons, len(roll),
		config.LogKeyColumns, len(h.Columns),
	)
	return roll, nil
}

// NewPerson classifies one export row against the canonical columns.
func NewPerson(record []string, h Header) (Person, error) {
	if len(record) < config.IdentityColumns {
		return Person{}, errors.New(config.ErrRowTooShort)
	}

	p := Person{
		FirstName: record[0],
		LastName:  record[1],
		Weeks:     make([]Week, 0, len(h.Columns)),
	}
	for i, col := range h.Columns {
		if col.Index >= len(record) {
			return Person{}, fmt.Errorf("%s: column %q missing", config.ErrRowTooShort, col.Label)
		}
		outcome, role := Classify(record[col.Index])
		if role != RoleUnknown {
			p.Role = role
		}
		p.Weeks = append(p.Weeks, Week{Column: i, Outcome: outcome})
	}
	return p, nil
}
