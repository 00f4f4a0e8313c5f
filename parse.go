// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jedit

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Decode parses a single JSON value from r and returns its native Go
// representation: map[string]any for objects, []any for arrays, string,
// int64 or float64 for numbers, bool, or nil for null. The entire input must
// be consumed by the value; trailing non-whitespace data is an error.
//
// In case of a malformed input, the returned error has concrete type
// [*SyntaxError].
func Decode(r io.Reader) (any, error) { return decode(r, false) }

// DecodeOrdered parses a single JSON value from r like [Decode], except
// that objects are represented as [Object] values, which preserve the order
// of their members.
func DecodeOrdered(r io.Reader) (any, error) { return decode(r, true) }

func decode(r io.Reader, ordered bool) (any, error) {
	p := &parser{sc: NewScanner(r), ordered: ordered}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.sc.Next(); err == nil {
		return nil, p.syntaxErrorf(nil, "unexpected %v after value", p.sc.Token())
	} else if err != io.EOF {
		return nil, p.syntaxErrorf(err, "%s", scanMessage(err))
	}
	return v, nil
}

// DecodeString parses a single JSON value from s. See [Decode].
func DecodeString(s string) (any, error) { return Decode(strings.NewReader(s)) }

// DecodeOrderedString parses a single JSON value from s. See [DecodeOrdered].
func DecodeOrderedString(s string) (any, error) { return DecodeOrdered(strings.NewReader(s)) }

// Validate reports whether s is a single well-formed JSON value, returning
// nil if so. Otherwise the returned error has concrete type [*SyntaxError].
func Validate(s string) error {
	_, err := DecodeString(s)
	return err
}

// SyntaxError is the concrete type of errors reported by the decoder for
// malformed input. It records the complete source location of the failure.
type SyntaxError struct {
	Location Location
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location.First, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// A parser consumes scanner tokens and assembles native values.  Each parse
// method expects the current token to be the first token of its production,
// and leaves the last token of the production current.
type parser struct {
	sc      *Scanner
	ordered bool // represent objects as Object rather than map
}

// advance moves to the next input token. If any token types are specified,
// the new token must be one of them. At the end of input, advance reports a
// syntax error wrapping io.EOF.
func (p *parser) advance(tokens ...Token) (Token, error) {
	if err := p.sc.Next(); err == io.EOF {
		return Invalid, p.syntaxErrorf(err, "unexpected end of input")
	} else if err != nil {
		return Invalid, p.syntaxErrorf(err, "%s", scanMessage(err))
	}
	tok := p.sc.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		return tok, p.syntaxErrorf(nil, "%s", tokLabel(tokens, tok))
	}
	return tok, nil
}

func (p *parser) parseValue() (any, error) {
	switch tok := p.sc.Token(); tok {
	case LBrace:
		return p.parseObject()
	case LSquare:
		return p.parseArray()
	case String:
		dec, err := Unquote(string(p.sc.Text()))
		if err != nil {
			return nil, p.syntaxErrorf(err, "invalid string: %v", err)
		}
		return string(dec), nil
	case Integer:
		text := string(p.sc.Text())
		if z, err := strconv.ParseInt(text, 10, 64); err == nil {
			return z, nil
		}
		fallthrough // out of range for int64, fall back to float
	case Number:
		v, err := strconv.ParseFloat(string(p.sc.Text()), 64)
		if err != nil {
			return nil, p.syntaxErrorf(err, "invalid number: %v", err)
		}
		return v, nil
	case True:
		return true, nil
	case False:
		return false, nil
	case Null:
		return nil, nil
	default:
		return nil, p.syntaxErrorf(nil, "unexpected %v", tok)
	}
}

// parseObject consumes an object. Precondition: token == LBrace.
// Members are collected in input order; finishObject converts to the
// representation selected by the decode mode.
func (p *parser) parseObject() (any, error) {
	var obj Object
	tok, err := p.advance(RBrace, String)
	if err != nil {
		return nil, err
	} else if tok == RBrace {
		return p.finishObject(obj), nil // empty object
	}
	for {
		// Current token is the member key.
		key, err := Unquote(string(p.sc.Text()))
		if err != nil {
			return nil, p.syntaxErrorf(err, "invalid object key: %v", err)
		}
		if _, err := p.advance(Colon); err != nil {
			return nil, err
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: string(key), Value: val})

		tok, err := p.advance(RBrace, Comma)
		if err != nil {
			return nil, err
		} else if tok == RBrace {
			return p.finishObject(obj), nil
		}
		if _, err := p.advance(String); err != nil {
			return nil, err
		}
	}
}

func (p *parser) finishObject(obj Object) any {
	if p.ordered {
		if obj == nil {
			obj = Object{}
		}
		return obj
	}
	return obj.Map()
}

// parseArray consumes an array. Precondition: token == LSquare.
func (p *parser) parseArray() ([]any, error) {
	arr := []any{}
	tok, err := p.advance()
	if err != nil {
		return nil, err
	} else if tok == RSquare {
		return arr, nil // empty array
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		tok, err := p.advance(RSquare, Comma)
		if err != nil {
			return nil, err
		} else if tok == RSquare {
			return arr, nil
		}
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) syntaxErrorf(err error, msg string, args ...any) *SyntaxError {
	return &SyntaxError{
		Location: p.sc.Location(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

// scanMessage strips the offset annotation from a scanner error, since the
// syntax error carries the full location already.
func scanMessage(err error) string {
	var pe posError
	if errors.As(err, &pe) {
		return pe.err.Error()
	}
	return err.Error()
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
