package almanac

import (
	"context"
	"testing"
	"time"

	"bazi/internal/sexagenary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJDNRoundTrip(t *testing.T) {
	assert.Equal(t, 2451545, JDN(2000, 1, 1))
	for _, jdn := range []int{2378497, 2415021, 2447892, 2451545, 2460000, 2488070} {
		y, m, d := FromJDN(jdn)
		assert.Equal(t, jdn, JDN(y, m, d))
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2000, 2))
	assert.Equal(t, 28, DaysIn(1900, 2))
	assert.Equal(t, 30, DaysIn(2003, 4))
	assert.Equal(t, 31, DaysIn(2003, 12))
}

func TestDayCyclePositionAnchors(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    string
	}{
		{1949, 10, 1, "甲子"},
		{2000, 1, 1, "戊午"},
		{2024, 2, 10, "甲辰"},
		{1990, 5, 10, "乙亥"},
		{2003, 11, 24, "辛丑"},
	}
	for _, tt := range tests {
		got := sexagenary.FromCyclePosition(DayCyclePosition(tt.y, tt.m, tt.d))
		assert.Equal(t, tt.want, got.String(), "%d-%d-%d", tt.y, tt.m, tt.d)
	}
}

func TestTermTimeAgainstAlmanac(t *testing.T) {
	tests := []struct {
		year, index int
		want        time.Time
	}{
		{2024, 0, time.Date(2024, 2, 4, 16, 27, 0, 0, ChinaStandardTime)},
		{2000, 0, time.Date(2000, 2, 4, 20, 40, 0, 0, ChinaStandardTime)},
		{2023, 21, time.Date(2023, 12, 22, 11, 27, 0, 0, ChinaStandardTime)},
		{1990, 6, time.Date(1990, 5, 6, 2, 35, 0, 0, ChinaStandardTime)},
		{1984, 0, time.Date(1984, 2, 4, 23, 19, 0, 0, ChinaStandardTime)},
		{2021, 0, time.Date(2021, 2, 3, 22, 59, 0, 0, ChinaStandardTime)},
	}
	for _, tt := range tests {
		ev, err := TermTime(tt.year, tt.index)
		require.NoError(t, err)
		diff := ev.Time.Sub(tt.want)
		if diff < 0 {
			diff = -diff
		}
		assert.Less(t, diff, 2*time.Minute, "%s %d: got %s", ev.Name(), tt.year, ev.Time)
	}
}

func TestApparentLongitude(t *testing.T) {
	// 1992-10-13 0h TD: 199°54'21.818"
	assert.InDelta(t, 199.906061, ApparentLongitude(2448908.5), 0.0003)
}

func TestTermTimeRejectsOutOfRange(t *testing.T) {
	_, err := TermTime(2000, 24)
	assert.Error(t, err)
	_, err = TermTime(MinYear-1, 0)
	assert.Error(t, err)
}

func TestTermsOrdered(t *testing.T) {
	evs, err := Terms(2003)
	require.NoError(t, err)
	require.Len(t, evs, NumTerms)
	assert.Equal(t, "小寒", evs[0].Name())
	assert.Equal(t, 2002, evs[0].SolarYear)
	assert.Equal(t, "立春", evs[2].Name())
	assert.Equal(t, 2003, evs[2].SolarYear)
	for i := 1; i < len(evs); i++ {
		assert.True(t, evs[i].Time.After(evs[i-1].Time), "%s before %s", evs[i].Name(), evs[i-1].Name())
		assert.Equal(t, 2003, evs[i].Time.Year())
	}
}

func TestBuild(t *testing.T) {
	table, err := Build(context.Background(), 2003, 2003)
	require.NoError(t, err)

	pillar := func(pos int) string { return sexagenary.FromCyclePosition(pos).String() }

	// 立冬 falls on 2003-11-08.
	e, ok := table.Lookup(2003, 11, 7)
	require.True(t, ok)
	assert.Equal(t, "壬戌", pillar(e.Month))
	assert.Nil(t, e.Term)

	e, ok = table.Lookup(2003, 11, 8)
	require.True(t, ok)
	require.NotNil(t, e.Term)
	assert.Equal(t, 18, e.Term.Index)
	assert.Equal(t, "壬戌", pillar(e.Month))
	assert.Equal(t, "癸亥", pillar(e.MonthAt(23*60)))

	e, ok = table.Lookup(2003, 11, 9)
	require.True(t, ok)
	assert.Equal(t, "癸亥", pillar(e.Month))

	e, ok = table.Lookup(2003, 11, 24)
	require.True(t, ok)
	assert.Equal(t, "辛丑", pillar(e.Day))

	// Before 立春 the month is still 丑 of the previous solar year.
	e, ok = table.Lookup(2003, 2, 3)
	require.True(t, ok)
	assert.Equal(t, "癸丑", pillar(e.Month))

	// Padding on both ends, nothing beyond.
	_, ok = table.Lookup(2002, 12, 1)
	assert.True(t, ok)
	_, ok = table.Lookup(2004, 1, 31)
	assert.True(t, ok)
	_, ok = table.Lookup(2002, 11, 30)
	assert.False(t, ok)
	_, ok = table.Lookup(2004, 2, 1)
	assert.False(t, ok)

	assert.Equal(t, 365+62, table.Len())
}

func TestBuildTermsEveryMonth(t *testing.T) {
	table, err := Build(context.Background(), 1990, 1990)
	require.NoError(t, err)

	opening := 0
	for m := 1; m <= 12; m++ {
		for d := 1; d <= DaysIn(1990, m); d++ {
			e, ok := table.Lookup(1990, m, d)
			require.True(t, ok)
			p := sexagenary.FromCyclePosition(e.Month)
			require.Equal(t, int(p.Stem())%2, int(p.Branch())%2)
			if e.Term != nil && e.Term.Opens() {
				opening++
			}
		}
	}
	assert.Equal(t, 12, opening)

	e, _ := table.Lookup(1990, 5, 10)
	assert.Equal(t, "辛巳", sexagenary.FromCyclePosition(e.Month).String())
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(context.Background(), 2000, 1999)
	assert.Error(t, err)
	_, err = Build(context.Background(), MinYear, 1900)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, 2000, 2001)
	assert.Error(t, err)
}
