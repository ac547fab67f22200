package calendar

// Zodiac is an animal of the 12-year cycle.
type Zodiac int

const (
	Pig Zodiac = iota // กุน, also index 12
	Rat
	Ox
	Tiger
	Rabbit
	Dragon
	Snake
	Horse
	Goat
	Monkey
	Rooster
	Dog
)

var zodiacNames = [...]string{
	Pig:     "กุน",
	Rat:     "ชวด",
	Ox:      "ฉลู",
	Tiger:   "ขาล",
	Rabbit:  "เถาะ",
	Dragon:  "มะโรง",
	Snake:   "มะเส็ง",
	Horse:   "มะเมีย",
	Goat:    "มะแม",
	Monkey:  "วอก",
	Rooster: "ระกา",
	Dog:     "จอ",
}

var zodiacKeys = [...]string{
	Pig:     "pig",
	Rat:     "rat",
	Ox:      "ox",
	Tiger:   "tiger",
	Rabbit:  "rabbit",
	Dragon:  "dragon",
	Snake:   "snake",
	Horse:   "horse",
	Goat:    "goat",
	Monkey:  "monkey",
	Rooster: "rooster",
	Dog:     "dog",
}

func (z Zodiac) String() string {
	if z < Pig || z > Dog {
		return ""
	}
	return zodiacNames[z]
}

// Key returns a stable ASCII identifier for z.
func (z Zodiac) Key() string {
	if z < Pig || z > Dog {
		return ""
	}
	return zodiacKeys[z]
}

// zodiacShiftOffset is the last day offset of a reform-era year that still
// belongs to the previous animal.
const zodiacShiftOffset = 118

// ResolveZodiac returns the animal year for a civil year and a day offset
// within its lunar year.
func ResolveZodiac(civilYear, offset int) Zodiac {
	ks := mod(civilYear-3, 12)
	if ks == 0 {
		ks = 12
	}

	if civilYear+BEOffset >= ReformYear && offset <= zodiacShiftOffset {
		ks--
	}

	// 12 and 0 are both the pig.
	return Zodiac(ks % 12)
}

// mod is the non-negative remainder of a / n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
