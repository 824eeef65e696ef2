package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for record store errors.
var (
	ErrLoad  = errors.New("load dataset failed")
	ErrParse = errors.New("parse dataset failed")

	ErrMissingColumn = errors.New("missing required column")
	ErrMissingValue  = errors.New("missing value")
	ErrInvalidNumber = errors.New("invalid number")
)

// LoadError reports a missing or unreadable source, an absent column or a
// structurally broken row. It matches ErrLoad via errors.Is.
type LoadError struct {
	Source string
	Line   int    // 1-based CSV line, 0 when not row-specific
	Column string // empty when not column-specific
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load " + e.Source
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	if e.Column != "" {
		msg += " column " + e.Column
	}
	return msg + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets callers match any LoadError against ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// ParseError reports a numeric cell that does not hold a valid value.
// It matches ErrParse via errors.Is.
type ParseError struct {
	Source string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s line %d column %s value %q: %v", e.Source, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets callers match any ParseError against ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
