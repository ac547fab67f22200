// Package feed publishes Buddhist holy days as an iCalendar feed.
package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
	"github.com/zapponejosh/thai-calendar-api/internal/locale"
)

// iCalendar property names and fixed values.
const (
	propUID         = "UID"
	propSummary     = "SUMMARY"
	propDescription = "DESCRIPTION"
	propDTStart     = "DTSTART"
	propDTStamp     = "DTSTAMP"
	propVersion     = "VERSION"
	propProdID      = "PRODID"
	propCalScale    = "CALSCALE"
	propMethod      = "METHOD"
	propCalName     = "X-WR-CALNAME"
	propCategories  = "CATEGORIES"

	icalVersion = "2.0"
	icalProdID  = "-//Thai Calendar API//Holy Days//EN"
	icalScale   = "GREGORIAN"
	icalMethod  = "PUBLISH"
	uidDomain   = "thai-calendar-api"
	uidFormat   = "%s-holyday@%s"
	uidDate     = "20060102"
)

// ContentType is the MIME type of an encoded feed.
const ContentType = "text/calendar; charset=utf-8"

// Clock abstracts time.Now for deterministic DTSTAMPs in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the system time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// Generator builds holy-day feeds.
type Generator struct {
	Translator *locale.Translator
	Clock      Clock
}

// NewGenerator creates a generator using the system clock.
func NewGenerator(tr *locale.Translator) *Generator {
	return &Generator{Translator: tr, Clock: RealClock{}}
}

// HolyDays encodes every observance day of a civil year as an all-day event.
func (g *Generator) HolyDays(year int, lang string) ([]byte, error) {
	days, err := calendar.HolyDays(year)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, icalVersion)
	cal.Props.SetText(propProdID, icalProdID)
	cal.Props.SetText(propCalScale, icalScale)
	cal.Props.SetText(propMethod, icalMethod)
	cal.Props.SetText(propCalName, fmt.Sprintf("%s %d", g.Translator.Message("holy_day", lang), year+calendar.BEOffset))

	stamp := ical.NewProp(propDTStamp)
	stamp.SetDateTime(g.Clock.Now().UTC())

	for _, td := range days {
		cal.Children = append(cal.Children, g.event(td, lang, stamp).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode holy days %d: %w", year, err)
	}

	slog.Debug("holy day feed generated",
		slog.Int("year", year),
		slog.String("lang", lang),
		slog.Int("events", len(days)),
		slog.Int("size_bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func (g *Generator) event(td *calendar.ThaiDate, lang string, stamp *ical.Prop) *ical.Event {
	day := td.Civil().Time()

	event := ical.NewEvent()
	event.Props.SetText(propUID, fmt.Sprintf(uidFormat, day.Format(uidDate), uidDomain))
	event.Props.SetText(propSummary, g.Translator.HolyDayTitle(td, lang))
	event.Props.SetText(propDescription, g.Translator.Describe(td, lang).Summary)
	event.Props.SetText(propCategories, g.Translator.Message("holy_day", lang))
	event.Props.Set(stamp)

	start := ical.NewProp(propDTStart)
	start.SetDate(day)
	event.Props.Set(start)

	return event
}
