// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package format

import (
	"fmt"

	"github.com/creachadair/jedit"
)

// A FormatError describes a JSON validation or formatting failure.  It
// records the offending input along with the position of the first byte at
// which decoding failed. A FormatError is constructed only from a decode
// failure and is not modified after construction.
type FormatError struct {
	Message string // human-readable description of the failure
	Text    string // the raw input text
	Line    int    // line of the failure, 1-based
	Column  int    // column of the failure, 1-based
	Pos     int    // byte offset of the failure, 0-based
	End     int    // end offset of the failure, min(Pos+1, len(Text))
}

// Erroneous returns the span of the input text at which decoding failed.
// It is empty if the failure was at the end of the input.
func (e *FormatError) Erroneous() string { return e.Text[e.Pos:e.End] }

// Error satisfies the error interface.
func (e *FormatError) Error() string {
	s := fmt.Sprintf("%s at line %d, column %d (offset %d)", e.Message, e.Line, e.Column, e.Pos)
	if p := e.Erroneous(); p != "" {
		s += fmt.Sprintf(": %q", p)
	}
	return s
}

func newFormatError(text string, serr *jedit.SyntaxError) *FormatError {
	pos := min(serr.Location.Pos, len(text))
	return &FormatError{
		Message: serr.Message,
		Text:    text,
		Line:    serr.Location.First.Line,
		Column:  serr.Location.First.Column + 1,
		Pos:     pos,
		End:     min(pos+1, len(text)),
	}
}

// A RangeError reports a configuration value outside its permitted range.
// The prior configuration is left unchanged.
type RangeError struct {
	What     string // the name of the setting
	Value    int    // the rejected value
	Min, Max int    // the permitted range, inclusive
}

// Error satisfies the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.What, e.Value, e.Min, e.Max)
}
