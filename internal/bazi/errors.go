package bazi

import "fmt"

// ValidationError rejects input before any table access: the caller should
// ask for a corrected date.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// CoverageError is a well-formed date the dataset cannot answer for, either
// outside the supported years or missing from the table.
type CoverageError struct {
	Year, Month, Day int
	Err              error
}

func (e *CoverageError) Error() string {
	msg := fmt.Sprintf("date %04d-%02d-%02d is not supported", e.Year, e.Month, e.Day)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoverageError) Unwrap() error { return e.Err }
