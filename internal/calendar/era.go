package calendar

// Sok is a year's position in the ten-year cycle.
type Sok int

var sokNames = [10]string{
	"สัมฤทธิศก",
	"เอกศก",
	"โทศก",
	"ตรีศก",
	"จัตวาศก",
	"เบญจศก",
	"ฉศก",
	"สัปตศก",
	"อัฐศก",
	"นพศก",
}

func (s Sok) String() string {
	if s < 0 || int(s) >= len(sokNames) {
		return ""
	}
	return sokNames[s]
}

// MinorEra returns the จ.ศ. year of a day number and time of day.
//
// minute/60 is integer division and is always 0 for a valid minute. The
// term is kept so results match published tables.
func MinorEra(day, hour, minute int) int {
	return ((day-1)*800 + (hour + (minute/60)*800/24) - 373) / 292207
}

// SokOf returns the ten-year cycle position of a minor era year.
func SokOf(minorEra int) Sok {
	return Sok(mod(minorEra, 10))
}
