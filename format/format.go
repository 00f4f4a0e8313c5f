// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package format implements validation and reformatting of JSON text with a
// configurable policy: indentation width, handling of empty input, and
// optional acceptance of relaxed inputs containing comments and trailing
// commas.
//
// A Formatter accepts either JSON text (a string) or a native Go value, and
// produces pretty-printed or minified JSON text. Reformatted text keeps its
// object members in the order the input wrote them; only unordered native
// maps are rendered in sorted key order. Validation failures are reported as
// [*FormatError] values carrying the line, column, and byte offset of the
// failure; out-of-range configuration is rejected with a [*RangeError] and
// leaves the prior setting unchanged.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creachadair/jedit"
	"github.com/tailscale/hujson"
)

// Bounds on the formatter policy settings.
const (
	DefaultIndent = 2  // the default indentation width
	MaxIndent     = 10 // the maximum accepted indentation width
)

// A Formatter validates and reformats JSON text. Use [New] to construct a
// formatter with default settings. A Formatter is a pure function of its
// input and settings; its methods do not retain the input.
//
// A Formatter is not safe for concurrent use while its settings are being
// modified.
type Formatter struct {
	indent  int
	emptyOK bool
	relaxed bool
}

// New constructs a new Formatter with the default policy: indentation width
// 2, and empty input treated as valid.
func New() *Formatter { return &Formatter{indent: DefaultIndent, emptyOK: true} }

// Indent reports the configured indentation width.
func (f *Formatter) Indent() int { return f.indent }

// SetIndent sets the indentation width used for pretty-printed output.  It
// reports a [*RangeError] without changing the setting if n is outside the
// range [0, MaxIndent]. Width 0 indents nothing but still separates lines.
func (f *Formatter) SetIndent(n int) error {
	if n < 0 || n > MaxIndent {
		return &RangeError{What: "indent width", Value: n, Min: 0, Max: MaxIndent}
	}
	f.indent = n
	return nil
}

// EmptyOK reports whether empty input is considered valid.
func (f *Formatter) EmptyOK() bool { return f.emptyOK }

// SetEmptyOK sets whether empty input is considered valid.
func (f *Formatter) SetEmptyOK(ok bool) { f.emptyOK = ok }

// SetRelaxed sets whether textual input may contain comments and trailing
// commas. When enabled, input is standardized before validation in a way
// that preserves line numbers and byte offsets, so error locations still
// refer to the original text. Input that is invalid even in relaxed form is
// validated with its comments ignored, and the reported location is the
// position of the remaining failure.
func (f *Formatter) SetRelaxed(ok bool) { f.relaxed = ok }

// An Option overrides formatter settings for a single call to Format.
type Option func(*settings)

type settings struct {
	indent  int
	compact bool
}

// WithIndent overrides the indentation width for one call.
func WithIndent(n int) Option { return func(s *settings) { s.indent = n } }

// Compact requests minified output: no newlines and no whitespace between
// tokens.
func Compact() Option { return func(s *settings) { s.compact = true } }

// IsValid reports whether input is valid JSON. The input may be a string of
// JSON text or a native Go value. A nil or empty input is valid or not
// according to the empty-input policy. IsValid never panics and has no side
// effects.
func (f *Formatter) IsValid(input any) bool {
	switch t := input.(type) {
	case nil:
		return f.emptyOK
	case string:
		if t == "" {
			return f.emptyOK
		}
		_, err := f.decodeText(t)
		return err == nil
	default:
		_, err := appendValue(nil, input, "", "", true)
		return err == nil
	}
}

// Format renders input as JSON text using the formatter's policy, as
// optionally overridden by opts. The input may be a string of JSON text,
// which is validated and re-rendered, or a native Go value.
//
// If textual input is malformed, Format reports a [*FormatError] describing
// the location of the failure. A native value that cannot be rendered as
// JSON reports a wrapped generic error. If the per-call indentation is out
// of range, Format reports a [*RangeError].
func (f *Formatter) Format(input any, opts ...Option) (string, error) {
	set := settings{indent: f.indent}
	for _, opt := range opts {
		opt(&set)
	}
	if set.indent < 0 || set.indent > MaxIndent {
		return "", &RangeError{What: "indent width", Value: set.indent, Min: 0, Max: MaxIndent}
	}

	v := input
	if s, ok := input.(string); ok {
		dv, err := f.decodeText(s)
		if err != nil {
			return "", err
		}
		v = dv
	}
	buf, err := appendValue(make([]byte, 0, 256), v, strings.Repeat(" ", set.indent), "", set.compact)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return string(buf), nil
}

// Minify renders input as compact JSON text with no structural whitespace
// and no newlines. It is shorthand for Format(input, Compact()).
func (f *Formatter) Minify(input any) (string, error) {
	return f.Format(input, Compact())
}

// decodeText parses JSON text, applying relaxed-input standardization if it
// is enabled. Objects decode in member order, so reformatted text keeps the
// order the user wrote. The error, if any, is a *FormatError.
func (f *Formatter) decodeText(s string) (any, error) {
	text := s
	if f.relaxed {
		// Standardization replaces comments and trailing commas with spaces,
		// preserving line structure and byte offsets. It fails when the input
		// is malformed even as relaxed JSON; in that case blank out the
		// comments locally, so the decoder reports the true failure position
		// instead of choking on the first comment.
		if clean, err := hujson.Standardize([]byte(s)); err == nil {
			text = string(clean)
		} else {
			text = blankComments(s)
		}
	}
	v, err := jedit.DecodeOrderedString(text)
	if err != nil {
		var serr *jedit.SyntaxError
		if errors.As(err, &serr) {
			return nil, newFormatError(s, serr)
		}
		return nil, &FormatError{Message: err.Error(), Text: s, Line: 1, Column: 1}
	}
	return v, nil
}

// blankComments overwrites line and block comments outside of strings with
// spaces, preserving the length and line structure of the text. Newlines
// inside block comments are kept so line numbers stay aligned.
func blankComments(s string) string {
	buf := []byte(s)
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '"':
			for i++; i < len(buf) && buf[i] != '"'; i++ {
				if buf[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 >= len(buf) {
				return string(buf)
			}
			switch buf[i+1] {
			case '/':
				for ; i < len(buf) && buf[i] != '\n'; i++ {
					buf[i] = ' '
				}
			case '*':
				buf[i], buf[i+1] = ' ', ' '
				for i += 2; i < len(buf); i++ {
					if buf[i] == '*' && i+1 < len(buf) && buf[i+1] == '/' {
						buf[i], buf[i+1] = ' ', ' '
						i++
						break
					} else if buf[i] != '\n' {
						buf[i] = ' '
					}
				}
			}
		}
	}
	return string(buf)
}
