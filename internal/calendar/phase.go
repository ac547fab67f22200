package calendar

// Phase is the half of the lunar month a day falls in.
type Phase int

const (
	Waxing Phase = iota + 1 // ขึ้น
	Waning                  // แรม
)

func (p Phase) String() string {
	switch p {
	case Waxing:
		return "ขึ้น"
	case Waning:
		return "แรม"
	}
	return ""
}

// Key returns a stable ASCII identifier for p.
func (p Phase) Key() string {
	switch p {
	case Waxing:
		return "waxing"
	case Waning:
		return "waning"
	}
	return ""
}

// LunarDate is a position within the lunar year.
type LunarDate struct {
	Phase Phase
	Day   int // ค่ำ, 1..15
	Month int // 1..12

	// HalfLength is the number of days in this half-month: 15, or 14 for a
	// short waning half.
	HalfLength int
}

// eraOneCycle is the length of an era-1 year. Offsets past it belong to the
// following year.
const eraOneCycle = 414

// bracket maps offsets in (lower, upper] to a month and phase. The lunar day
// is offset - lower.
type bracket struct {
	upper, lower int
	month        int
	phase        Phase
}

// Ladders are ordered by descending upper bound and tile (0, top] exactly.
var (
	eraOneLadder = []bracket{
		{414, 399, 1, Waning}, {399, 384, 1, Waxing},
		{384, 369, 12, Waning}, {369, 354, 12, Waxing},
		{354, 340, 11, Waning}, {340, 325, 11, Waxing},
		{325, 310, 10, Waning}, {310, 295, 10, Waxing},
		{295, 281, 9, Waning}, {281, 266, 9, Waxing},
		{266, 251, 8, Waning}, {251, 236, 8, Waxing},
		{236, 221, 8, Waning}, {221, 206, 8, Waxing},
		{206, 192, 7, Waning}, {192, 177, 7, Waxing},
		{177, 162, 6, Waning}, {162, 147, 6, Waxing},
		{147, 133, 5, Waning}, {133, 118, 5, Waxing},
		{118, 103, 4, Waning}, {103, 88, 4, Waxing},
		{88, 74, 3, Waning}, {74, 59, 3, Waxing},
		{59, 44, 2, Waning}, {44, 29, 2, Waxing},
		{29, 15, 1, Waning}, {15, 0, 1, Waxing},
	}

	eraTwoLadder = []bracket{
		{414, 399, 2, Waning}, {399, 384, 2, Waxing},
		{384, 370, 1, Waning}, {370, 355, 1, Waxing},
		{355, 340, 12, Waning}, {340, 325, 12, Waxing},
		{325, 311, 11, Waning}, {311, 296, 11, Waxing},
		{296, 281, 10, Waning}, {281, 266, 10, Waxing},
		{266, 252, 9, Waning}, {252, 237, 9, Waxing},
		{237, 222, 8, Waning}, {222, 207, 8, Waxing},
		{207, 192, 7, Waning}, {192, 177, 7, Waxing},
		{177, 162, 6, Waning}, {162, 147, 6, Waxing},
		{147, 133, 5, Waning}, {133, 118, 5, Waxing},
		{118, 103, 4, Waning}, {103, 88, 4, Waxing},
		{88, 74, 3, Waning}, {74, 59, 3, Waxing},
		{59, 44, 2, Waning}, {44, 29, 2, Waxing},
		{29, 15, 1, Waning}, {15, 0, 1, Waxing},
	}

	eraThreeLadder = []bracket{
		{413, 398, 2, Waning}, {398, 383, 2, Waxing},
		{383, 369, 1, Waning}, {369, 354, 1, Waxing},
		{354, 339, 12, Waning}, {339, 324, 12, Waxing},
		{324, 310, 11, Waning}, {310, 295, 11, Waxing},
		{295, 280, 10, Waning}, {280, 265, 10, Waxing},
		{265, 251, 9, Waning}, {251, 236, 9, Waxing},
		{236, 221, 8, Waning}, {221, 206, 8, Waxing},
		{206, 192, 7, Waning}, {192, 177, 7, Waxing},
		{177, 162, 6, Waning}, {162, 147, 6, Waxing},
		{147, 133, 5, Waning}, {133, 118, 5, Waxing},
		{118, 103, 4, Waning}, {103, 88, 4, Waxing},
		{88, 74, 3, Waning}, {74, 59, 3, Waxing},
		{59, 44, 2, Waning}, {44, 29, 2, Waxing},
		{29, 15, 1, Waning}, {15, 0, 1, Waxing},
	}
)

func ladderFor(era Era) []bracket {
	switch era {
	case 1:
		return eraOneLadder
	case 2:
		return eraTwoLadder
	case 3:
		return eraThreeLadder
	}
	return nil
}

// ResolvePhase maps a day offset within an era's lunar year to its lunar date.
func ResolvePhase(era Era, offset int) (LunarDate, error) {
	ladder := ladderFor(era)
	if ladder == nil {
		return LunarDate{}, &PhaseError{Era: era, Offset: offset}
	}

	// An offset of exactly eraOneCycle is the last day of the year, not the
	// first of the next.
	n := offset
	if era == 1 && n > eraOneCycle {
		n -= eraOneCycle
	}

	for _, b := range ladder {
		if n > b.upper {
			break
		}
		if n > b.lower {
			return LunarDate{
				Phase:      b.phase,
				Day:        n - b.lower,
				Month:      b.month,
				HalfLength: b.upper - b.lower,
			}, nil
		}
	}
	return LunarDate{}, &PhaseError{Era: era, Offset: offset}
}
