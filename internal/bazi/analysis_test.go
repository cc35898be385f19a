package bazi

import (
	"encoding/json"
	"testing"

	"bazi/internal/sexagenary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisReferenceChart(t *testing.T) {
	res, err := newCalculator(t).Calculate(Input{Year: 1990, Month: 5, Day: 10, Hour: 12, Gender: Male})
	require.NoError(t, err)
	a := res.Analysis

	// 庚午 辛巳 乙亥 壬午
	assert.Equal(t, ElementTally{1, 3, 0, 2, 2}, a.Elements)
	assert.Equal(t, 8, a.Elements.Total())
	assert.Equal(t, []sexagenary.Element{sexagenary.Earth}, a.Elements.Missing())
	assert.Equal(t, []sexagenary.Element{
		sexagenary.Fire, sexagenary.Metal, sexagenary.Water, sexagenary.Wood, sexagenary.Earth,
	}, a.Elements.Ranked())

	assert.Equal(t, sexagenary.Stem(1), a.DayMaster.Stem)
	assert.Equal(t, sexagenary.Wood, a.DayMaster.Element)
	assert.Equal(t, sexagenary.Yin, a.DayMaster.Polarity)
	assert.Equal(t, 2, a.DayMaster.Support)
	assert.False(t, a.DayMaster.Strong)

	assert.Equal(t, "Horse", a.Animal)

	require.Len(t, a.Relations, 1)
	assert.Equal(t, BranchRelation{Kind: Clash, A: MonthPos, B: DayPos}, a.Relations[0])

	visible := a.TenGods[:3]
	assert.Equal(t, StemGod{Position: YearPos, Stem: 6, God: sexagenary.DirectOfficer}, visible[0])
	assert.Equal(t, StemGod{Position: MonthPos, Stem: 7, God: sexagenary.SevenKillings}, visible[1])
	assert.Equal(t, StemGod{Position: HourPos, Stem: 8, God: sexagenary.DirectResource}, visible[2])

	// 午 丁己, 巳 丙庚戊, 亥 壬甲, 午 丁己
	hidden := 0
	for _, hs := range a.HiddenStems {
		hidden += len(hs)
	}
	assert.Equal(t, 9, hidden)
	assert.Len(t, a.TenGods, 3+hidden)
	assert.Equal(t, hidden, a.HiddenElements.Total())
}

func TestLuckCycle(t *testing.T) {
	calc := newCalculator(t)

	// Yang year, male: forward to 芒种 on 1990-06-06.
	res, err := calc.Calculate(Input{Year: 1990, Month: 5, Day: 10, Hour: 12, Gender: Male})
	require.NoError(t, err)
	l := res.Analysis.Luck
	assert.True(t, l.Forward)
	assert.Equal(t, 8, l.StartYears)
	assert.Equal(t, 11, l.StartMonths)
	require.Len(t, l.Pillars, LuckPillars)
	assert.Equal(t, "壬午", l.Pillars[0].Pillar.String())
	assert.Equal(t, "癸未", l.Pillars[1].Pillar.String())
	assert.Equal(t, 8, l.Pillars[0].StartAge)
	assert.Equal(t, 78, l.Pillars[7].StartAge)

	// Yin year, male: backward to 立冬 on 2003-11-08.
	res, err = calc.Calculate(Input{Year: 2003, Month: 11, Day: 24, Hour: 7, Gender: Male})
	require.NoError(t, err)
	l = res.Analysis.Luck
	assert.False(t, l.Forward)
	assert.Equal(t, 5, l.StartYears)
	assert.Equal(t, 4, l.StartMonths)
	assert.Equal(t, "壬戌", l.Pillars[0].Pillar.String())

	// Yin year, female: forward to 大雪 on 2003-12-07.
	res, err = calc.Calculate(Input{Year: 2003, Month: 11, Day: 24, Hour: 7, Gender: Female})
	require.NoError(t, err)
	l = res.Analysis.Luck
	assert.True(t, l.Forward)
	assert.Equal(t, 4, l.StartYears)
	assert.Equal(t, 6, l.StartMonths)
	assert.Equal(t, "甲子", l.Pillars[0].Pillar.String())
}

func TestLuckPillarsKeepPolarity(t *testing.T) {
	res, err := newCalculator(t).Calculate(Input{Year: 2003, Month: 3, Day: 3, Hour: 3, Gender: Female})
	require.NoError(t, err)
	for _, lp := range res.Analysis.Luck.Pillars {
		assert.Equal(t, int(lp.Pillar.Stem())%2, int(lp.Pillar.Branch())%2)
	}
}

func TestResultJSON(t *testing.T) {
	res, err := newCalculator(t).Calculate(Input{Year: 1990, Month: 5, Day: 10, Hour: 12, Gender: Male})
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"year":"庚午"`)
	assert.Contains(t, s, `"display":"庚午年辛巳月乙亥日壬午時"`)
	assert.Contains(t, s, `"god":"direct officer"`)
	assert.Contains(t, s, `"dayMaster":{"stem":"乙","element":"wood","polarity":"yin","support":2,"strong":false}`)
	assert.Contains(t, s, `"startYears":8,"startMonths":11`)
	assert.Contains(t, s, `"relations":[{"kind":"clash","a":"month","b":"day"}]`)
	assert.Contains(t, s, `"animal":"Horse"`)
	assert.NotContains(t, s, `"DayMaster"`)
}
