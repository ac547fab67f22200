package calendar

// julianEpoch shifts the astronomical Julian Day Number to the local day count.
const julianEpoch = 1954167

// gregorianSwitch is the raw day number above which the Gregorian
// correction applies (dates from 1582-10-15 on).
const gregorianSwitch = 2299171

// JulianDay returns the sequential day number of a civil date.
//
// All arithmetic is integer with truncating division. 1 January 1757 is
// day 408625.
func JulianDay(day, month, year int) int {
	im := 12*year + month + 57597
	j := (2*(im-(im/12)*12) + 7 + 365*im) / 12
	j += day + im/48 - 32083

	if j > gregorianSwitch {
		j += im/4800 - im/1200 + 38
	}
	return j - julianEpoch
}
