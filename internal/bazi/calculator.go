// Package bazi turns a civil birth date and hour into a four-pillar chart.
package bazi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bazi/internal/engine"
	"bazi/internal/sexagenary"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender accepts male/female and their first letters, any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", &ValidationError{Field: "gender", Value: s, Reason: "must be male or female"}
}

// Input is a civil birth moment in China Standard Time.
type Input struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Gender Gender `json:"gender"`
}

// Mapper supplies calendar entries; *engine.Cache implements it.
type Mapper interface {
	Mapping(year, month, day int) (engine.Entry, error)
}

const (
	DefaultMinYear = 1900
	DefaultMaxYear = 2099
)

type Option func(*Calculator)

// WithYearRange limits accepted birth years; it should match the dataset.
func WithYearRange(min, max int) Option {
	return func(c *Calculator) {
		c.minYear, c.maxYear = min, max
	}
}

// WithLateRatRollover makes a birth at 23:xx take the following day's day
// pillar, the convention of schools that start the day at 子 hour.
func WithLateRatRollover(on bool) Option {
	return func(c *Calculator) { c.lateRat = on }
}

// Calculator is safe for concurrent use; all state lives in the Mapper.
type Calculator struct {
	mapper  Mapper
	minYear int
	maxYear int
	lateRat bool
}

func New(m Mapper, opts ...Option) *Calculator {
	c := &Calculator{
		mapper:  m,
		minYear: DefaultMinYear,
		maxYear: DefaultMaxYear,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// YearRange reports the accepted birth years.
func (c *Calculator) YearRange() (int, int) { return c.minYear, c.maxYear }

// Result is everything derived from one Input.
type Result struct {
	Chart    Chart    `json:"chart"`
	Analysis Analysis `json:"analysis"`
	Display  string   `json:"display"`
}

// Calculate builds the chart and its analysis. The same input always yields
// the same result.
func (c *Calculator) Calculate(in Input) (*Result, error) {
	if err := c.Validate(in); err != nil {
		return nil, err
	}

	entry, err := c.lookup(in.Year, in.Month, in.Day)
	if err != nil {
		return nil, err
	}
	birthMinute := in.Hour*60 + in.Minute

	// Month follows the sun: a jie term during the day splits it.
	month := sexagenary.FromCyclePosition(entry.MonthAt(birthMinute))

	// The solar year turns at 立春, so 子 and 丑 months early in the civil
	// year still belong to the previous one.
	solarYear := in.Year
	if in.Month <= 2 && month.Branch() <= 1 {
		solarYear--
	}
	year := sexagenary.YearPillar(solarYear)

	dayEntry := entry
	if c.lateRat && in.Hour == 23 {
		ny, nm, nd := addDays(in.Year, in.Month, in.Day, 1)
		if dayEntry, err = c.lookup(ny, nm, nd); err != nil {
			return nil, err
		}
	}
	day := sexagenary.FromCyclePosition(dayEntry.Day)

	hour, err := sexagenary.HourPillar(day.Stem(), in.Hour)
	if err != nil {
		return nil, &ValidationError{Field: "hour", Value: in.Hour, Reason: err.Error()}
	}

	chart := Chart{Input: in, Year: year, Month: month, Day: day, Hour: hour}

	luck, err := c.luckCycle(in, chart, entry, birthMinute)
	if err != nil {
		return nil, err
	}

	return &Result{
		Chart:    chart,
		Analysis: analyze(chart, luck),
		Display:  chart.String(),
	}, nil
}

// Validate checks the input against the civil calendar and the supported
// years without touching the table.
func (c *Calculator) Validate(in Input) error {
	if in.Gender != Male && in.Gender != Female {
		return &ValidationError{Field: "gender", Value: in.Gender, Reason: "must be male or female"}
	}
	if in.Year < 1 {
		return &ValidationError{Field: "year", Value: in.Year, Reason: "must be positive"}
	}
	if in.Month < 1 || in.Month > 12 {
		return &ValidationError{Field: "month", Value: in.Month, Reason: "must be 1-12"}
	}
	if n := daysIn(in.Year, in.Month); in.Day < 1 || in.Day > n {
		return &ValidationError{Field: "day", Value: in.Day, Reason: fmt.Sprintf("must be 1-%d for %04d-%02d", n, in.Year, in.Month)}
	}
	if in.Hour < 0 || in.Hour > 23 {
		return &ValidationError{Field: "hour", Value: in.Hour, Reason: "must be 0-23"}
	}
	if in.Minute < 0 || in.Minute > 59 {
		return &ValidationError{Field: "minute", Value: in.Minute, Reason: "must be 0-59"}
	}
	if in.Year < c.minYear || in.Year > c.maxYear {
		return &CoverageError{
			Year: in.Year, Month: in.Month, Day: in.Day,
			Err: fmt.Errorf("supported years are %d-%d", c.minYear, c.maxYear),
		}
	}
	return nil
}

func (c *Calculator) lookup(year, month, day int) (engine.Entry, error) {
	e, err := c.mapper.Mapping(year, month, day)
	if err != nil {
		if errors.Is(err, engine.ErrMappingNotFound) {
			return engine.Entry{}, &CoverageError{Year: year, Month: month, Day: day, Err: err}
		}
		return engine.Entry{}, err
	}
	return e, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func addDays(year, month, day, n int) (int, int, int) {
	t := time.Date(year, time.Month(month), day+n, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month()), t.Day()
}
