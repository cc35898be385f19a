package sexagenary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCyclePositionCoversCycle(t *testing.T) {
	seen := make(map[string]bool)
	for n := 0; n < CycleLength; n++ {
		p := FromCyclePosition(n)
		assert.Equal(t, int(p.Stem())%2, int(p.Branch())%2, "polarity at %d", n)
		assert.Equal(t, n, p.Position())
		seen[p.String()] = true
	}
	assert.Len(t, seen, CycleLength)
	assert.Equal(t, "甲子", FromCyclePosition(0).String())
	assert.Equal(t, "癸亥", FromCyclePosition(59).String())
}

func TestFromCyclePositionNegative(t *testing.T) {
	p := FromCyclePosition(-1)
	assert.Equal(t, "癸亥", p.String())
	assert.Equal(t, FromCyclePosition(59), FromCyclePosition(-61))
	assert.True(t, p.Stem().Valid())
	assert.True(t, p.Branch().Valid())
}

func TestNewPillarRejectsMismatchedPolarity(t *testing.T) {
	_, err := NewPillar(0, 1) // 甲丑
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPolarity))

	p, err := NewPillar(6, 6)
	require.NoError(t, err)
	assert.Equal(t, "庚午", p.String())
	assert.Equal(t, 6, p.Position())

	_, err = NewPillar(10, 0)
	assert.Error(t, err)
}

func TestParsePillar(t *testing.T) {
	p, err := ParsePillar("辛巳")
	require.NoError(t, err)
	assert.Equal(t, Stem(7), p.Stem())
	assert.Equal(t, Branch(5), p.Branch())

	_, err = ParsePillar("辛")
	assert.Error(t, err)
	_, err = ParsePillar("辛午")
	assert.Error(t, err)
}

func TestYearPillar(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{1984, "甲子"},
		{1990, "庚午"},
		{2003, "癸未"},
		{2024, "甲辰"},
		{1900, "庚子"},
		{1983, "癸亥"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, YearPillar(tt.year).String(), "year %d", tt.year)
	}
}

func TestYearPillarPeriodicity(t *testing.T) {
	for y := 1800; y < 2200; y++ {
		require.Equal(t, YearPillar(y), YearPillar(y+60), "year %d", y)
	}
}

func TestHourBranchBoundaries(t *testing.T) {
	want := []string{
		"子", "丑", "丑", "寅", "寅", "卯", "卯", "辰", "辰", "巳", "巳", "午",
		"午", "未", "未", "申", "申", "酉", "酉", "戌", "戌", "亥", "亥", "子",
	}
	for h := 0; h < 24; h++ {
		assert.Equal(t, want[h], HourBranch(h).String(), "hour %d", h)
	}
}

func TestHourPillarMidnightWraps(t *testing.T) {
	for s := Stem(0); s < NumStems; s++ {
		late, err := HourPillar(s, 23)
		require.NoError(t, err)
		early, err := HourPillar(s, 0)
		require.NoError(t, err)
		assert.Equal(t, early.Branch(), late.Branch())
		assert.Equal(t, early, late)
	}
}

func TestHourPillarFiveRats(t *testing.T) {
	// 子 hour stem for each day stem: 甲己→甲, 乙庚→丙, 丙辛→戊, 丁壬→庚, 戊癸→壬
	rat := []string{"甲子", "丙子", "戊子", "庚子", "壬子", "甲子", "丙子", "戊子", "庚子", "壬子"}
	for s := Stem(0); s < NumStems; s++ {
		p, err := HourPillar(s, 0)
		require.NoError(t, err)
		assert.Equal(t, rat[s], p.String())
	}

	p, err := HourPillar(1, 12) // 乙 day, 午 hour
	require.NoError(t, err)
	assert.Equal(t, "壬午", p.String())

	p, err = HourPillar(7, 7) // 辛 day, 辰 hour
	require.NoError(t, err)
	assert.Equal(t, "壬辰", p.String())

	_, err = HourPillar(0, 24)
	assert.Error(t, err)
	_, err = HourPillar(0, -1)
	assert.Error(t, err)
}

func TestMonthPillarFiveTigers(t *testing.T) {
	assert.Equal(t, "丙寅", MonthPillar(1984, 2).String())
	assert.Equal(t, "辛巳", MonthPillar(1990, 5).String())
	assert.Equal(t, "癸亥", MonthPillar(2003, 11).String())
	assert.Equal(t, "乙丑", MonthPillar(2003, 1).String())
	// 丑 of one solar year is followed by 寅 of the next at the next position.
	assert.Equal(t, MonthPillar(2003, 1).Add(1), MonthPillar(2004, 2))
}

func TestPillarNames(t *testing.T) {
	p := FromCyclePosition(6)
	assert.Equal(t, "Geng Wu", p.Pinyin())
	assert.Equal(t, "Horse", p.Branch().Animal())
	assert.Equal(t, Metal, p.Stem().Element())
	assert.Equal(t, Fire, p.Branch().Element())
	assert.Equal(t, Yang, p.Stem().Polarity())
}
