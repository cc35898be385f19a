package almanac

import (
	"fmt"
	"time"
)

// NumTerms is the number of solar terms in a year.
const NumTerms = 24

var termNames = [NumTerms]string{
	"立春", "雨水", "惊蛰", "春分", "清明", "谷雨",
	"立夏", "小满", "芒种", "夏至", "小暑", "大暑",
	"立秋", "处暑", "白露", "秋分", "寒露", "霜降",
	"立冬", "小雪", "大雪", "冬至", "小寒", "大寒",
}

// TermName returns the Chinese name of a term index (0 = 立春).
func TermName(index int) string { return termNames[index%NumTerms] }

// TermLongitude is the solar longitude at which a term begins.
func TermLongitude(index int) float64 {
	return normDegrees(315 + 15*float64(index))
}

// TermEvent is one solar term occurrence.
type TermEvent struct {
	Index int
	Time  time.Time // in ChinaStandardTime

	// SolarYear is the year whose 立春 opened the solar year containing
	// the term. 小寒 and 大寒 fall in January of SolarYear+1.
	SolarYear int
}

func (e TermEvent) Name() string { return TermName(e.Index) }

// Opens reports whether the term starts a solar month.
func (e TermEvent) Opens() bool { return e.Index%2 == 0 }

// MonthBranch is the branch of the month a jie term opens: 立春 opens 寅.
func (e TermEvent) MonthBranch() int { return (e.Index/2 + 2) % 12 }

// date returns the civil date and minute of day of the event.
func (e TermEvent) date() (y, m, d, minute int) {
	t := e.Time
	return t.Year(), int(t.Month()), t.Day(), t.Hour()*60 + t.Minute()
}

// TermTime computes the moment a term falls within the given civil year.
func TermTime(year, index int) (TermEvent, error) {
	if index < 0 || index >= NumTerms {
		return TermEvent{}, fmt.Errorf("term index %d out of range", index)
	}
	if year < MinYear || year > MaxYear {
		return TermEvent{}, fmt.Errorf("year %d outside %d-%d", year, MinYear, MaxYear)
	}
	lon := TermLongitude(index)
	// The sun stands near 280° on January 1st.
	guess := float64(JDN(year, 1, 1)) - 0.5 + normDegrees(lon-280)/360*tropicalYear
	jde := solveLongitude(lon, guess)
	jd := jde - DeltaT(float64(year))/86400

	solar := year
	if index >= 22 {
		solar = year - 1
	}
	return TermEvent{
		Index:     index,
		Time:      timeFromJD(jd).In(ChinaStandardTime),
		SolarYear: solar,
	}, nil
}

// Terms returns the 24 terms falling in a civil year, in time order.
func Terms(year int) ([]TermEvent, error) {
	out := make([]TermEvent, 0, NumTerms)
	// Civil order: 小寒, 大寒, then 立春 onward.
	for _, i := range []int{22, 23} {
		ev, err := TermTime(year, i)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	for i := 0; i < 22; i++ {
		ev, err := TermTime(year, i)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
