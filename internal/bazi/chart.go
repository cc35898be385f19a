package bazi

import (
	"strings"

	"bazi/internal/sexagenary"
)

// Position names a pillar slot.
type Position int

const (
	YearPos Position = iota
	MonthPos
	DayPos
	HourPos
)

var positionNames = [4]string{"year", "month", "day", "hour"}
var positionSuffix = [4]string{"年", "月", "日", "時"}

func (p Position) String() string { return positionNames[p] }

// Chart is the four pillars of a birth moment. It is a value; callers own
// their copy.
type Chart struct {
	Input Input             `json:"input"`
	Year  sexagenary.Pillar `json:"year"`
	Month sexagenary.Pillar `json:"month"`
	Day   sexagenary.Pillar `json:"day"`
	Hour  sexagenary.Pillar `json:"hour"`
}

// Pillars returns Year, Month, Day, Hour in that order.
func (c Chart) Pillars() [4]sexagenary.Pillar {
	return [4]sexagenary.Pillar{c.Year, c.Month, c.Day, c.Hour}
}

// DayMaster is the stem of the day pillar.
func (c Chart) DayMaster() sexagenary.Stem { return c.Day.Stem() }

// String is the canonical rendering, Year to Hour with unit suffixes:
// 庚午年辛巳月乙亥日壬午時.
func (c Chart) String() string {
	var b strings.Builder
	for i, p := range c.Pillars() {
		b.WriteString(p.String())
		b.WriteString(positionSuffix[i])
	}
	return b.String()
}

// Stacked renders Hour to Year, one pillar per line, the column order of
// a printed chart read right to left.
func (c Chart) Stacked() string {
	ps := c.Pillars()
	lines := make([]string, 0, 4)
	for i := len(ps) - 1; i >= 0; i-- {
		lines = append(lines, ps[i].String())
	}
	return strings.Join(lines, "\n")
}

// Compact is the four pillars separated by spaces, Year first.
func (c Chart) Compact() string {
	ps := c.Pillars()
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func (p Position) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
