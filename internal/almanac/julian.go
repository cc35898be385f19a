// Package almanac computes the solar terms and sexagenary day counts that
// make up the date mapping dataset.
package almanac

import "time"

// unixEpochJD is the Julian Date of 1970-01-01T00:00Z.
const unixEpochJD = 2440587.5

// ChinaStandardTime is the zone the dataset's civil dates are expressed in.
var ChinaStandardTime = time.FixedZone("CST", 8*60*60)

// JDN returns the Julian Day Number of a proleptic Gregorian date.
func JDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// FromJDN is the inverse of JDN.
func FromJDN(jdn int) (year, month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return year, month, day
}

// DaysIn returns the length of a civil month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayCyclePosition is the sexagenary day of a civil date; 2000-01-01 is
// 戊午 (54) and 1949-10-01 is 甲子 (0).
func DayCyclePosition(year, month, day int) int {
	return (JDN(year, month, day) + 49) % 60
}

func timeFromJD(jd float64) time.Time {
	secs := (jd - unixEpochJD) * 86400
	whole := int64(secs)
	if float64(whole) > secs {
		whole--
	}
	nsec := int64((secs - float64(whole)) * 1e9)
	return time.Unix(whole, nsec).UTC()
}
