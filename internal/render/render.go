// Package render formats a calculated chart for terminals.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"bazi/internal/almanac"
	"bazi/internal/bazi"
	"bazi/internal/sexagenary"

	"github.com/charmbracelet/lipgloss"
	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6b7280")
)

// Styles used by Text. Colors are dropped automatically when the output is
// not a terminal.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Column lipgloss.Style
	Muted  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header: lipgloss.NewStyle().Bold(true).Align(lipgloss.Center),
		Cell:   lipgloss.NewStyle().Align(lipgloss.Center),
		Column: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(muted),
	}
}

// ParseLocale maps "zh", "zh_CN", "en", "en_US" and friends to a monday
// locale. Unknown values fall back to en_US.
func ParseLocale(s string) monday.Locale {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "zh", "zh_cn", "cn":
		return monday.LocaleZhCN
	case "zh_tw", "tw":
		return monday.LocaleZhTW
	}
	return monday.LocaleEnUS
}

// BirthLine is the birth moment written out in the given locale.
func BirthLine(in bazi.Input, locale monday.Locale) string {
	t := time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, 0, 0, almanac.ChinaStandardTime)
	layout := "Monday, January 2, 2006 15:04"
	if locale == monday.LocaleZhCN || locale == monday.LocaleZhTW {
		layout = "2006年1月2日 Monday 15:04"
	}
	return monday.Format(t, layout, locale)
}

// English spells each pillar as element and animal, Year first:
// "Metal Horse, Metal Snake, Wood Pig, Water Horse".
func English(c bazi.Chart) string {
	title := cases.Title(language.English)
	ps := c.Pillars()
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = title.String(p.Stem().Element().String()) + " " + p.Branch().Animal()
	}
	return strings.Join(parts, ", ")
}

// Text writes the chart as four bordered columns, Hour on the left as in a
// printed chart, followed by the analysis summary.
func Text(w io.Writer, res *bazi.Result, locale monday.Locale, st Styles) error {
	title := cases.Title(language.English)
	c := res.Chart
	a := res.Analysis

	// 1. Header lines.
	var b strings.Builder
	b.WriteString(st.Title.Render(res.Display))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(BirthLine(c.Input, locale) + " · " + title.String(string(c.Input.Gender))))
	b.WriteString("\n")

	// 2. Pillar columns.
	gods := make(map[bazi.Position]sexagenary.TenGod)
	for _, g := range a.TenGods {
		if !g.Hidden {
			gods[g.Position] = g.God
		}
	}
	ps := c.Pillars()
	cols := make([]string, 0, len(ps))
	for i := len(ps) - 1; i >= 0; i-- {
		pos := bazi.Position(i)
		p := ps[i]
		god := "日主"
		if g, ok := gods[pos]; ok {
			god = g.Hanzi()
		}
		hidden := make([]string, len(a.HiddenStems[i]))
		for j, s := range a.HiddenStems[i] {
			hidden[j] = s.String()
		}
		cell := lipgloss.JoinVertical(lipgloss.Center,
			st.Header.Render(title.String(pos.String())),
			st.Cell.Render(god),
			st.Cell.Render(p.Stem().String()+" "+p.Stem().Element().Hanzi()),
			st.Cell.Render(p.Branch().String()+" "+p.Branch().Element().Hanzi()),
			st.Muted.Render(strings.Join(hidden, "")),
		)
		cols = append(cols, st.Column.Render(cell))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	// 3. Summary.
	strength := "weak"
	if a.DayMaster.Strong {
		strength = "strong"
	}
	fmt.Fprintf(&b, "%s\n", English(c))
	fmt.Fprintf(&b, "Day master %s (%s %s, %s)\n", a.DayMaster.Stem, a.DayMaster.Polarity, a.DayMaster.Element, strength)

	counts := make([]string, 0, 5)
	for _, e := range sexagenary.Elements() {
		counts = append(counts, fmt.Sprintf("%s %d", e.Hanzi(), a.Elements.Count(e)))
	}
	fmt.Fprintf(&b, "Elements %s\n", strings.Join(counts, "  "))

	if len(a.Relations) > 0 {
		rels := make([]string, len(a.Relations))
		for i, r := range a.Relations {
			rels[i] = fmt.Sprintf("%s %s-%s", r.Kind, r.A, r.B)
		}
		fmt.Fprintf(&b, "Relations %s\n", strings.Join(rels, ", "))
	}

	dir := "forward"
	if !a.Luck.Forward {
		dir = "backward"
	}
	luck := make([]string, len(a.Luck.Pillars))
	for i, lp := range a.Luck.Pillars {
		luck[i] = fmt.Sprintf("%d %s", lp.StartAge, lp.Pillar)
	}
	fmt.Fprintf(&b, "Luck %s from %dy%dm: %s\n", dir, a.Luck.StartYears, a.Luck.StartMonths, strings.Join(luck, " · "))

	_, err := io.WriteString(w, b.String())
	return err
}
