package report

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-attendance/internal/config"
)

// Calendar renders the outreach list as an iCalendar feed: one all-day
// entry per person, scheduled the day after the most recent event.
// DTSTAMP is the most recent event date so the output depends only on the
// input export.
func (r Report) Calendar() ([]byte, error) {
	last, ok := r.Header.LastColumn()
	if !ok || len(r.Outreach) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(last.Date.UTC())

	due := last.Date.AddDate(0, 0, config.OutreachFollowUpDays)

	for _, rec := range r.Outreach {
		name := rec.FirstName + " " + rec.LastName

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, outreachUID(rec, last.Date))
		event.Props.SetText(config.PropSummary, r.labels.EventSummary(rec.ActionLabel, name))
		event.Props.SetText(config.PropCategories, rec.Role)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(due)
		event.Props.Set(dtStart)
		event.Props.Set(dtStamp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// Contacts renders the outreach list as vCards so it can be imported into
// a phone or address book.
func (r Report) Contacts() ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	var date time.Time
	if last, ok := r.Header.LastColumn(); ok {
		date = last.Date
	}

	for _, rec := range r.Outreach {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldFormattedName, rec.FirstName+" "+rec.LastName)
		card.SetName(&vcard.Name{
			GivenName:  rec.FirstName,
			FamilyName: rec.LastName,
		})
		card.SetValue(vcard.FieldCategories, rec.Role)
		card.SetValue(vcard.FieldNote, rec.ActionLabel)
		card.SetValue(vcard.FieldUID, outreachUID(rec, date))

		if err := enc.Encode(card); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return buf.Bytes(), nil
}

// outreachUID is stable for the same roster position, person, week and
// action.
func outreachUID(rec OutreachRecord, date time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput,
		rec.Position,
		rec.FirstName+" "+rec.LastName,
		date.Format(config.DateFormatFileName),
		rec.Action,
		config.UIDSalt,
	)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
