package bazi

import (
	"fmt"

	"bazi/internal/engine"
	"bazi/internal/sexagenary"
)

const (
	// LuckPillars is how many ten-year periods are listed.
	LuckPillars = 8

	// maxTermScan bounds the search for the adjacent jie term; solar months
	// never exceed 32 days.
	maxTermScan = 40

	// Three days between birth and the term count as one year of age, so
	// six hours count as one month.
	minutesPerLuckMonth = 6 * 60
)

// LuckPillar is one ten-year period.
type LuckPillar struct {
	Pillar   sexagenary.Pillar `json:"pillar"`
	StartAge int               `json:"startAge"` // whole years
}

type LuckCycle struct {
	Forward bool `json:"forward"`
	// StartYears and StartMonths give the age the first period begins.
	StartYears  int          `json:"startYears"`
	StartMonths int          `json:"startMonths"`
	Pillars     []LuckPillar `json:"pillars"`
}

// luckCycle runs forward from the month pillar for a yang-year male or a
// yin-year female and backward otherwise. The start age comes from the
// distance to the next (forward) or previous (backward) jie term.
func (c *Calculator) luckCycle(in Input, chart Chart, birth engine.Entry, birthMinute int) (LuckCycle, error) {
	yang := chart.Year.Stem().Polarity() == sexagenary.Yang
	forward := yang == (in.Gender == Male)

	minutes, err := c.minutesToTerm(in, birth, birthMinute, forward)
	if err != nil {
		return LuckCycle{}, err
	}
	months := minutes / minutesPerLuckMonth

	lc := LuckCycle{
		Forward:     forward,
		StartYears:  months / 12,
		StartMonths: months % 12,
		Pillars:     make([]LuckPillar, LuckPillars),
	}
	step := 1
	if !forward {
		step = -1
	}
	for i := range lc.Pillars {
		lc.Pillars[i] = LuckPillar{
			Pillar:   chart.Month.Add(step * (i + 1)),
			StartAge: lc.StartYears + 10*i,
		}
	}
	return lc, nil
}

func (c *Calculator) minutesToTerm(in Input, birth engine.Entry, birthMinute int, forward bool) (int, error) {
	if t := birth.Term; t != nil && t.Opens() {
		if forward && t.Minute > birthMinute {
			return t.Minute - birthMinute, nil
		}
		if !forward && t.Minute <= birthMinute {
			return birthMinute - t.Minute, nil
		}
	}

	step := 1
	if !forward {
		step = -1
	}
	for days := 1; days <= maxTermScan; days++ {
		y, m, d := addDays(in.Year, in.Month, in.Day, step*days)
		e, err := c.lookup(y, m, d)
		if err != nil {
			return 0, err
		}
		if e.Term == nil || !e.Term.Opens() {
			continue
		}
		if forward {
			return days*24*60 + e.Term.Minute - birthMinute, nil
		}
		return days*24*60 + birthMinute - e.Term.Minute, nil
	}
	return 0, &CoverageError{
		Year: in.Year, Month: in.Month, Day: in.Day,
		Err: fmt.Errorf("%w: no month-opening term within %d days", engine.ErrMappingNotFound, maxTermScan),
	}
}
