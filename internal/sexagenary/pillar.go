package sexagenary

import (
	"errors"
	"fmt"
)

const (
	CycleLength = 60

	// ReferenceYear is a 甲子 year; year pillars are counted from it.
	ReferenceYear = 1984
)

var ErrPolarity = errors.New("stem and branch polarity differ")

// Pillar is a stem/branch pair of matching polarity. The zero value is 甲子.
type Pillar struct {
	stem   Stem
	branch Branch
}

// NewPillar rejects pairs that do not occur in the 60-term cycle.
func NewPillar(s Stem, b Branch) (Pillar, error) {
	if !s.Valid() || !b.Valid() {
		return Pillar{}, fmt.Errorf("stem %d / branch %d out of range", s, b)
	}
	if int(s)%2 != int(b)%2 {
		return Pillar{}, fmt.Errorf("%s%s: %w", s, b, ErrPolarity)
	}
	return Pillar{stem: s, branch: b}, nil
}

// FromCyclePosition maps any integer onto the cycle; 0 is 甲子, 59 is 癸亥.
func FromCyclePosition(n int) Pillar {
	return Pillar{stem: StemOf(n), branch: BranchOf(n)}
}

// ParsePillar reads a two-character pillar such as "甲子".
func ParsePillar(s string) (Pillar, error) {
	r := []rune(s)
	if len(r) != 2 {
		return Pillar{}, fmt.Errorf("pillar %q: want two characters", s)
	}
	st, err := ParseStem(string(r[0]))
	if err != nil {
		return Pillar{}, err
	}
	br, err := ParseBranch(string(r[1]))
	if err != nil {
		return Pillar{}, err
	}
	return NewPillar(st, br)
}

func (p Pillar) Stem() Stem       { return p.stem }
func (p Pillar) Branch() Branch   { return p.branch }
func (p Pillar) String() string   { return p.stem.String() + p.branch.String() }
func (p Pillar) Pinyin() string   { return p.stem.Pinyin() + " " + p.branch.Pinyin() }
func (p Pillar) Add(n int) Pillar { return FromCyclePosition(p.Position() + n) }

// Position is the index of the pillar in the cycle, 0..59.
func (p Pillar) Position() int {
	return floorMod(6*int(p.stem)-5*int(p.branch), CycleLength)
}

// YearPillar returns the pillar of a solar year counted from ReferenceYear.
// The caller decides which civil year a birth belongs to (see 立春).
func YearPillar(year int) Pillar {
	return FromCyclePosition(year - ReferenceYear)
}

// HourBranch maps an hour of day onto its two-hour branch. 23:00 and 00:00
// both fall in 子.
func HourBranch(hour int) Branch {
	return BranchOf((hour + 1) / 2)
}

// HourPillar applies the five-rats rule: the 子 hour of a 甲 or 己 day is 甲子,
// of a 乙 or 庚 day 丙子, and so on in steps of two stems.
func HourPillar(dayStem Stem, hour int) (Pillar, error) {
	if hour < 0 || hour > 23 {
		return Pillar{}, fmt.Errorf("hour %d out of range 0-23", hour)
	}
	b := HourBranch(hour)
	s := StemOf(int(dayStem%5)*2 + int(b))
	return Pillar{stem: s, branch: b}, nil
}

// MonthStem applies the five-tigers rule: the 寅 month of a 甲 or 己 year is
// 丙寅, and each following month advances one stem.
func MonthStem(yearStem Stem, monthBranch Branch) Stem {
	k := floorMod(int(monthBranch)-2, NumBranches)
	return StemOf(int(yearStem%5)*2 + 2 + k)
}

// MonthPillar builds the month pillar from the solar year and month branch.
func MonthPillar(year int, monthBranch Branch) Pillar {
	return Pillar{stem: MonthStem(YearPillar(year).Stem(), monthBranch), branch: monthBranch}
}

func floorMod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

func (p Pillar) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Pillar) UnmarshalText(b []byte) error {
	v, err := ParsePillar(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
