package calendar

// Weekday is a day of the week indexed by day number mod 7.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [7]string{
	Saturday:  "เสาร์",
	Sunday:    "อาทิตย์",
	Monday:    "จันทร์",
	Tuesday:   "อังคาร",
	Wednesday: "พุธ",
	Thursday:  "พฤหัสบดี",
	Friday:    "ศุกร์",
}

var weekdayKeys = [7]string{
	Saturday:  "saturday",
	Sunday:    "sunday",
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
}

func (w Weekday) String() string {
	if w < Saturday || w > Friday {
		return ""
	}
	return weekdayNames[w]
}

// Key returns a stable ASCII identifier for w.
func (w Weekday) Key() string {
	if w < Saturday || w > Friday {
		return ""
	}
	return weekdayKeys[w]
}

// dawnHour is when the lunar day begins.
const dawnHour = 6

// SolarWeekday is the civil weekday of a day number.
func SolarWeekday(day int) Weekday {
	return Weekday(mod(day, 7))
}

// LunarWeekday is the weekday by lunar reckoning, where the hours before
// dawn still belong to the previous day.
func LunarWeekday(day, hour int) Weekday {
	if hour < dawnHour {
		day--
	}
	return Weekday(mod(day, 7))
}
