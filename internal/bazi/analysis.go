package bazi

import (
	"sort"

	"bazi/internal/sexagenary"
)

// ElementTally counts occurrences per element, indexed by sexagenary.Element.
type ElementTally [5]int

func (t ElementTally) Count(e sexagenary.Element) int { return t[e] }

// Total is the sum over all elements.
func (t ElementTally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Ranked lists the elements by count, highest first; ties keep generating
// order.
func (t ElementTally) Ranked() []sexagenary.Element {
	out := sexagenary.Elements()
	ranked := out[:]
	sort.SliceStable(ranked, func(i, j int) bool { return t[ranked[i]] > t[ranked[j]] })
	return ranked
}

// Missing lists elements with a zero count.
func (t ElementTally) Missing() []sexagenary.Element {
	var out []sexagenary.Element
	for _, e := range sexagenary.Elements() {
		if t[e] == 0 {
			out = append(out, e)
		}
	}
	return out
}

type DayMaster struct {
	Stem     sexagenary.Stem     `json:"stem"`
	Element  sexagenary.Element  `json:"element"`
	Polarity sexagenary.Polarity `json:"polarity"`

	// Support counts the other seven visible positions sharing or feeding
	// the day master's element. Strong is Support >= 4.
	Support int  `json:"support"`
	Strong  bool `json:"strong"`
}

// StemGod is the ten-god reading of one stem against the day master.
type StemGod struct {
	Position Position          `json:"position"`
	Hidden   bool              `json:"hidden"`
	Stem     sexagenary.Stem   `json:"stem"`
	God      sexagenary.TenGod `json:"god"`
}

type RelationKind string

const (
	Clash   RelationKind = "clash"
	Harmony RelationKind = "harmony"
)

// BranchRelation is a clash or harmony between two pillar branches.
type BranchRelation struct {
	Kind RelationKind `json:"kind"`
	A    Position     `json:"a"`
	B    Position     `json:"b"`
}

// Analysis is the derived data interpretation starts from.
type Analysis struct {
	DayMaster DayMaster `json:"dayMaster"`

	// Elements tallies the eight visible characters.
	Elements ElementTally `json:"elements"`
	// HiddenElements tallies every hidden stem of the four branches.
	HiddenElements ElementTally `json:"hiddenElements"`

	HiddenStems [4][]sexagenary.Stem `json:"hiddenStems"`
	TenGods     []StemGod            `json:"tenGods"`
	Relations   []BranchRelation     `json:"relations"`
	Animal      string               `json:"animal"`
	Luck        LuckCycle            `json:"luck"`
}

func analyze(c Chart, luck LuckCycle) Analysis {
	ps := c.Pillars()
	dm := c.DayMaster()

	a := Analysis{
		Animal: c.Year.Branch().Animal(),
		Luck:   luck,
	}

	// 1. Element tallies.
	for i, p := range ps {
		a.Elements[p.Stem().Element()]++
		a.Elements[p.Branch().Element()]++
		a.HiddenStems[i] = p.Branch().HiddenStems()
		for _, s := range a.HiddenStems[i] {
			a.HiddenElements[s.Element()]++
		}
	}

	// 2. Day master support from the seven other visible characters.
	feeder := (dm.Element() + 4) % 5
	support := 0
	for i, p := range ps {
		if Position(i) != DayPos {
			if e := p.Stem().Element(); e == dm.Element() || e == feeder {
				support++
			}
		}
		if e := p.Branch().Element(); e == dm.Element() || e == feeder {
			support++
		}
	}
	a.DayMaster = DayMaster{
		Stem:     dm,
		Element:  dm.Element(),
		Polarity: dm.Polarity(),
		Support:  support,
		Strong:   support >= 4,
	}

	// 3. Ten gods, visible stems then hidden stems.
	for i, p := range ps {
		if Position(i) == DayPos {
			continue
		}
		a.TenGods = append(a.TenGods, StemGod{Position: Position(i), Stem: p.Stem(), God: sexagenary.TenGodOf(dm, p.Stem())})
	}
	for i, hs := range a.HiddenStems {
		for _, s := range hs {
			a.TenGods = append(a.TenGods, StemGod{Position: Position(i), Hidden: true, Stem: s, God: sexagenary.TenGodOf(dm, s)})
		}
	}

	// 4. Branch clashes and harmonies between every pair of pillars.
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			bi, bj := ps[i].Branch(), ps[j].Branch()
			switch {
			case sexagenary.Clashes(bi, bj):
				a.Relations = append(a.Relations, BranchRelation{Kind: Clash, A: Position(i), B: Position(j)})
			case sexagenary.Combines(bi, bj):
				a.Relations = append(a.Relations, BranchRelation{Kind: Harmony, A: Position(i), B: Position(j)})
			}
		}
	}
	return a
}
