// Package calendar converts civil date-times to the Thai lunar calendar.
//
// A conversion resolves the lunar year's epoch record from one of two
// historical tables, walks the era's phase ladder to find the lunar date,
// and derives the zodiac animal, the minor era (จ.ศ.) year and the weekday
// under both solar and lunar reckoning. Supported years are BE 2300-2620
// (CE 1757-2077).
package calendar

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Date and time layouts accepted by ParseCivilDateTime.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DefaultHour is used when a date is given without a time of day.
const DefaultHour = 12

// ICT is Indochina Time, the civil time of Thailand. It has no daylight saving.
var ICT = time.FixedZone("ICT", 7*60*60)

// aprilRollover is the first month of a pre-reform BE year.
const aprilRollover = 4

var validate = validator.New()

// CivilDateTime is a local Thai civil date and time.
type CivilDateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month" validate:"min=1,max=12"`
	Day    int `json:"day" validate:"min=1,max=31"`
	Hour   int `json:"hour" validate:"min=0,max=23"`
	Minute int `json:"minute" validate:"min=0,max=59"`
}

// Validate checks field ranges and that the day exists in its month.
func (c CivilDateTime) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateTime, err)
	}
	t := c.Time()
	if t.Day() != c.Day || int(t.Month()) != c.Month {
		return fmt.Errorf("%w: %s has no day %d", ErrInvalidDateTime, time.Month(c.Month), c.Day)
	}
	return nil
}

// Time returns c as a UTC time.Time.
func (c CivilDateTime) Time() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, 0, 0, time.UTC)
}

func (c CivilDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", c.Year, c.Month, c.Day, c.Hour, c.Minute)
}

// FromTime takes the wall-clock fields of t.
func FromTime(t time.Time) CivilDateTime {
	return CivilDateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// ParseCivilDateTime parses a YYYY-MM-DD date and an optional HH:MM time.
// An empty clock means DefaultHour:00.
func ParseCivilDateTime(date, clock string) (CivilDateTime, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return CivilDateTime{}, fmt.Errorf("%w: date %q: use YYYY-MM-DD", ErrInvalidDateTime, date)
	}

	c := FromTime(d)
	c.Hour = DefaultHour
	if clock != "" {
		t, err := time.Parse(TimeLayout, clock)
		if err != nil {
			return CivilDateTime{}, fmt.Errorf("%w: time %q: use HH:MM", ErrInvalidDateTime, clock)
		}
		c.Hour, c.Minute = t.Hour(), t.Minute()
	}
	return c, nil
}

// ThaiDate is the lunar-calendar reading of one civil date-time. It is
// immutable and safe to share between goroutines.
type ThaiDate struct {
	civil CivilDateTime

	birthDay int // the date itself, moved a year on for pre-reform January-March
	offset   int

	record   EpochRecord
	lunar    LunarDate
	zodiac   Zodiac
	minorEra int
}

// New converts a civil date-time. It returns an error wrapping
// ErrInvalidDateTime, ErrOutOfRange or ErrPhaseResolution.
func New(c CivilDateTime) (*ThaiDate, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	be := c.Year + BEOffset
	epochDay := JulianDay(1, 1, c.Year)
	actualDay := JulianDay(c.Day, c.Month, c.Year)
	birthDay := actualDay

	var (
		rec EpochRecord
		err error
	)
	if be < ReformYear {
		// Before 2484 the year turned in April, so January-March are looked
		// up under the next year's record.
		key := be
		if c.Month < aprilRollover {
			key++
			birthDay = JulianDay(c.Day, c.Month, c.Year+1)
		}
		rec, err = lookupIn(preReformEpochs, key)
	} else {
		rec, err = lookupIn(reformEpochs, be)
	}
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", c, err)
	}

	offset := rec.BaseOffset + actualDay - epochDay
	if c.Hour < dawnHour {
		offset--
	}

	lunar, err := ResolvePhase(rec.Era, offset)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", c, err)
	}

	return &ThaiDate{
		civil:    c,
		birthDay: birthDay,
		offset:   offset,
		record:   rec,
		lunar:    lunar,
		zodiac:   ResolveZodiac(c.Year, offset),
		minorEra: MinorEra(birthDay, c.Hour, c.Minute),
	}, nil
}

// Must is like New but panics on error. It is meant for literals in tests
// and examples.
func Must(c CivilDateTime) *ThaiDate {
	td, err := New(c)
	if err != nil {
		panic(err)
	}
	return td
}

func (d *ThaiDate) Civil() CivilDateTime  { return d.civil }
func (d *ThaiDate) Lunar() LunarDate      { return d.lunar }
func (d *ThaiDate) Phase() Phase          { return d.lunar.Phase }
func (d *ThaiDate) LunarDay() int         { return d.lunar.Day }
func (d *ThaiDate) LunarMonth() int       { return d.lunar.Month }
func (d *ThaiDate) Zodiac() Zodiac        { return d.zodiac }
func (d *ThaiDate) MinorEra() int         { return d.minorEra }
func (d *ThaiDate) Sok() Sok              { return SokOf(d.minorEra) }
func (d *ThaiDate) Era() Era              { return d.record.Era }
func (d *ThaiDate) Epoch() EpochRecord    { return d.record }
func (d *ThaiDate) Offset() int           { return d.offset }
func (d *ThaiDate) SolarWeekday() Weekday { return SolarWeekday(d.birthDay) }

// LunarWeekday is the weekday used in the summary; before 06:00 it is the
// previous day.
func (d *ThaiDate) LunarWeekday() Weekday { return LunarWeekday(d.birthDay, d.civil.Hour) }

// IsHolyDay reports whether the date is a Buddhist observance day (วันพระ):
// the 8th of either half or the last day of a half.
func (d *ThaiDate) IsHolyDay() bool {
	return d.lunar.Day == 8 || d.lunar.Day == d.lunar.HalfLength
}

// Summary formats the conventional one-line reading, e.g.
// "วันศุกร์ ขึ้น 11 ค่ำ เดือน 10 ปี ระกา จ.ศ.1379".
func (d *ThaiDate) Summary() string {
	return fmt.Sprintf("วัน%s %s %d ค่ำ เดือน %d ปี %s จ.ศ.%d",
		d.LunarWeekday(), d.lunar.Phase, d.lunar.Day, d.lunar.Month, d.zodiac, d.minorEra)
}

func (d *ThaiDate) String() string { return d.Summary() }

// Convert parses and converts in one step.
func Convert(date, clock string) (*ThaiDate, error) {
	c, err := ParseCivilDateTime(date, clock)
	if err != nil {
		return nil, err
	}
	return New(c)
}
