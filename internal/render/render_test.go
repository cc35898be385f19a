package render

import (
	"bytes"
	"context"
	"testing"

	"bazi/internal/almanac"
	"bazi/internal/bazi"
	"bazi/internal/engine"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceResult(t *testing.T) *bazi.Result {
	t.Helper()
	tbl, err := almanac.Build(context.Background(), 1990, 1990)
	require.NoError(t, err)
	res, err := bazi.New(engine.NewTableCache(tbl)).Calculate(bazi.Input{Year: 1990, Month: 5, Day: 10, Hour: 12, Gender: bazi.Male})
	require.NoError(t, err)
	return res
}

func TestEnglish(t *testing.T) {
	res := referenceResult(t)
	assert.Equal(t, "Metal Horse, Metal Snake, Wood Pig, Water Horse", English(res.Chart))
}

func TestBirthLine(t *testing.T) {
	in := bazi.Input{Year: 1990, Month: 5, Day: 10, Hour: 12, Minute: 5, Gender: bazi.Female}
	assert.Equal(t, "Thursday, May 10, 1990 12:05", BirthLine(in, monday.LocaleEnUS))
	assert.Equal(t, "1990年5月10日 星期四 12:05", BirthLine(in, monday.LocaleZhCN))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, monday.Locale(monday.LocaleZhCN), ParseLocale("zh-CN"))
	assert.Equal(t, monday.Locale(monday.LocaleZhCN), ParseLocale("zh"))
	assert.Equal(t, monday.Locale(monday.LocaleZhTW), ParseLocale("zh_TW"))
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), ParseLocale("fr"))
	assert.Equal(t, monday.Locale(monday.LocaleEnUS), ParseLocale(""))
}

func TestText(t *testing.T) {
	res := referenceResult(t)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, res, monday.LocaleEnUS, DefaultStyles()))
	out := buf.String()

	for _, want := range []string{
		"庚午年辛巳月乙亥日壬午時",
		"Thursday, May 10, 1990 12:00",
		"Hour", "Day", "Month", "Year",
		"日主", "正官", "七杀", "正印",
		"Day master 乙 (yin wood, weak)",
		"clash month-day",
		"Luck forward from 8y11m: 8 壬午",
	} {
		assert.Contains(t, out, want)
	}

	// Hour column comes first.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Hour")), bytes.Index(buf.Bytes(), []byte("Year")))
}
