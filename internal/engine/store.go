package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Entry is the precomputed calendar data for one civil date in UTC+8.
type Entry struct {
	Day   int   `json:"d"`           // day pillar cycle position
	Month int   `json:"m"`           // month pillar cycle position at 00:00
	Term  *Term `json:"t,omitempty"` // solar term beginning on this date
}

// Term marks the solar term that begins during the day.
type Term struct {
	Index  int `json:"i"`  // 0 = 立春 at 315°, then every 15° of solar longitude
	Minute int `json:"at"` // minute of day it begins, 0..1439
}

// Opens reports whether the term starts a new solar month (立春, 惊蛰, ...).
func (t Term) Opens() bool { return t.Index%2 == 0 }

// MonthAt returns the month cycle position in force at the given minute of
// the day.
func (e Entry) MonthAt(minute int) int {
	if e.Term != nil && e.Term.Opens() && minute >= e.Term.Minute {
		return (e.Month + 1) % 60
	}
	return e.Month
}

// Table holds Entries keyed year -> month -> day, the same nesting as the
// JSON dataset.
type Table map[int]map[int]map[int]Entry

func (t Table) Lookup(year, month, day int) (Entry, bool) {
	months, ok := t[year]
	if !ok {
		return Entry{}, false
	}
	days, ok := months[month]
	if !ok {
		return Entry{}, false
	}
	e, ok := days[day]
	return e, ok
}

func (t Table) Set(year, month, day int, e Entry) {
	months, ok := t[year]
	if !ok {
		months = make(map[int]map[int]Entry, 12)
		t[year] = months
	}
	days, ok := months[month]
	if !ok {
		days = make(map[int]Entry, 31)
		months[month] = days
	}
	days[day] = e
}

// Years returns the years present, ascending.
func (t Table) Years() []int {
	years := make([]int, 0, len(t))
	for y := range t {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Len counts the dates held.
func (t Table) Len() int {
	n := 0
	for _, months := range t {
		for _, days := range months {
			n += len(days)
		}
	}
	return n
}

// Merge copies every entry of other into t.
func (t Table) Merge(other Table) {
	for y, months := range other {
		for m, days := range months {
			for d, e := range days {
				t.Set(y, m, d, e)
			}
		}
	}
}

// Key formats the memo key "year-month-day" without zero padding.
func Key(year, month, day int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month) + "-" + strconv.Itoa(day)
}

// ParseKey reads "1990-5-10" or "1990-05-10".
func ParseKey(s string) (year, month, day int, err error) {
	ys, rest, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("date %q: want year-month-day", s)
	}
	ms, ds, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("date %q: want year-month-day", s)
	}
	if year, err = strconv.Atoi(ys); err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: bad year: %w", s, err)
	}
	if month, err = strconv.Atoi(ms); err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: bad month: %w", s, err)
	}
	if day, err = strconv.Atoi(ds); err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: bad day: %w", s, err)
	}
	return year, month, day, nil
}
