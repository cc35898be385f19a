package models

import "bazi/internal/bazi"

// ChartRequest leaves the date and hour nil when absent so a missing field
// is told apart from zero. Minute defaults to 0.
type ChartRequest struct {
	Year   *int   `json:"year"`
	Month  *int   `json:"month"`
	Day    *int   `json:"day"`
	Hour   *int   `json:"hour"`
	Minute int    `json:"minute"`
	Gender string `json:"gender"`
}

type ChartResponse struct {
	Chart             ChartView     `json:"chart"`
	Analysis          bazi.Analysis `json:"analysis"`
	DisplayString     string        `json:"displayString"`
	ChineseCharacters string        `json:"chineseCharacters"`
	English           string        `json:"english"`
	BirthLine         string        `json:"birthLine"`
}

type ChartView struct {
	Input   bazi.Input `json:"input"`
	Year    PillarView `json:"year"`
	Month   PillarView `json:"month"`
	Day     PillarView `json:"day"`
	Hour    PillarView `json:"hour"`
	Stacked string     `json:"stacked"`
}

type PillarView struct {
	Pillar   string `json:"pillar"`
	Pinyin   string `json:"pinyin"`
	Stem     string `json:"stem"`
	Branch   string `json:"branch"`
	Element  string `json:"element"`
	Polarity string `json:"polarity"`
	Animal   string `json:"animal"`
	Position int    `json:"position"`
}

type YearPillar struct {
	Year int `json:"year"`
	PillarView
}

type TermView struct {
	Name   string `json:"name"`
	Time   string `json:"time"`
	Minute int    `json:"minute"`
	Opens  bool   `json:"opens"`
}

type MappingResponse struct {
	Date string `json:"date"`
	Day  string `json:"day"`
	// Month is the pillar at the start of the day, MonthAfter the pillar
	// once Term has begun.
	Month      string    `json:"month"`
	MonthAfter string    `json:"monthAfter,omitempty"`
	Term       *TermView `json:"term,omitempty"`
}

type Page[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type Health struct {
	Status string `json:"status"`
	Years  []int  `json:"years,omitempty"`
	Dates  int    `json:"dates"`
	Loads  int64  `json:"loads"`
	Hits   int64  `json:"hits"`
	Misses int64  `json:"misses"`
	Error  string `json:"error,omitempty"`
}
