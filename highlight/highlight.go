// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package highlight classifies spans of JSON text into semantic categories
// for syntax highlighting.
//
// A Highlighter applies an ordered table of rules to one line of text at a
// time. Rules are tried in priority order and the first rule to match a
// given character position claims it; positions claimed by an earlier rule
// are never reconsidered by a later one. A rule claims its entire match but
// may emit a token covering only a capture group, which is how a key rule
// consumes its surrounding quotes and trailing colon without reporting them
// as separate tokens.
//
// Classification is a pure function of the line text: re-running it on
// unchanged text yields identical tokens, so a host editor can re-classify
// exactly the lines whose content changed.
package highlight

import (
	"regexp"
	"slices"
	"strings"
)

// Category is the semantic category of a classified span.
type Category int

// Constants defining the valid Category values, in rule priority order.
const (
	Invalid   Category = iota
	Key                // object property name
	DateTime           // quoted ISO-8601 date and time value
	Date               // quoted ISO-8601 date-only value
	Uppercase          // quoted all-uppercase constant value
	String             // any other quoted value
	Number             // numeric literal
	Boolean            // true or false
	Null               // null
	Quote              // a bare quotation mark
	Separator          // comma or colon
	Brace              // brace or bracket
)

var categoryStr = [...]string{
	Invalid:   "invalid",
	Key:       "key",
	DateTime:  "datetime",
	Date:      "date",
	Uppercase: "uppercase",
	String:    "string",
	Number:    "number",
	Boolean:   "boolean",
	Null:      "null",
	Quote:     "quote",
	Separator: "separator",
	Brace:     "brace",
}

func (c Category) String() string {
	v := int(c)
	if v < 0 || v >= len(categoryStr) {
		return categoryStr[Invalid]
	}
	return categoryStr[v]
}

// A Token is a classified span of a single line of text. Tokens reported by
// Classify are non-overlapping and sorted by start offset; spans between
// tokens carry no category and render as plain text.
type Token struct {
	Start    int // byte offset within the line, 0-based
	Length   int // length of the span in bytes
	Category Category
}

// A Rule matches one category of span. The rule claims every position of
// its match, but only the capture group selected by Group is reported as a
// token; a group that matches the empty string claims its span without
// reporting a token.
type Rule struct {
	Pattern  *regexp.Regexp
	Group    int // submatch reported as the token; 0 for the whole match
	Category Category

	// ValueOnly rejects a match that is immediately followed, ignoring
	// spaces and tabs, by a colon: such a span is a key, and the key rule
	// has deliberately declined it (for example a key that looks like a
	// date). RE2 has no lookahead, so this is checked after matching.
	ValueOnly bool

	// Word rejects a match bordered by a word character or a dot, standing
	// in for the word-boundary assertions around number and keyword rules.
	Word bool
}

// The default rule patterns. Value patterns capture the quoted content so
// the quotation marks are claimed but not reported.
var (
	keyPat      = regexp.MustCompile(`"((?:\\.|[^"\\])*)"\s*:`)
	dateTimePat = regexp.MustCompile(`"(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?)"`)
	datePat     = regexp.MustCompile(`"(\d{4}-\d{2}-\d{2})"`)
	upperPat    = regexp.MustCompile(`"([A-Z0-9_]{2,})"`)
	stringPat   = regexp.MustCompile(`"((?:\\.|[^"\\])*)"`)
	numberPat   = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)
	booleanPat  = regexp.MustCompile(`(?i)true|false`)
	nullPat     = regexp.MustCompile(`(?i)null`)
	quotePat    = regexp.MustCompile(`"`)
	sepPat      = regexp.MustCompile(`[,:]`)
	bracePat    = regexp.MustCompile(`[{}\[\]]`)
)

// Rules returns the default rule table in priority order: property keys,
// then quoted datetime, date, uppercase-constant, and generic string values,
// then numbers, keywords, and finally unclaimed punctuation.
func Rules() []Rule {
	return []Rule{
		{Pattern: keyPat, Group: 1, Category: Key},
		{Pattern: dateTimePat, Group: 1, Category: DateTime, ValueOnly: true},
		{Pattern: datePat, Group: 1, Category: Date, ValueOnly: true},
		{Pattern: upperPat, Group: 1, Category: Uppercase, ValueOnly: true},
		{Pattern: stringPat, Group: 1, Category: String, ValueOnly: true},
		{Pattern: numberPat, Category: Number, Word: true},
		{Pattern: booleanPat, Category: Boolean, Word: true},
		{Pattern: nullPat, Category: Null, Word: true},
		{Pattern: quotePat, Category: Quote},
		{Pattern: sepPat, Category: Separator},
		{Pattern: bracePat, Category: Brace},
	}
}

// A Highlighter classifies lines of JSON text. A Highlighter is safe for
// concurrent use; it holds no per-line state.
type Highlighter struct {
	rules []Rule
}

// New constructs a Highlighter with the given rules in priority order, or
// with the default rule table if none are given.
func New(rules ...Rule) *Highlighter {
	if len(rules) == 0 {
		rules = Rules()
	}
	return &Highlighter{rules: rules}
}

// Classify reports the classified spans of one line of text, sorted by
// start offset. The result is empty if no rule matches.
func (h *Highlighter) Classify(line string) []Token {
	if line == "" {
		return nil
	}
	claimed := make([]bool, len(line))
	var toks []Token

	for _, rule := range h.rules {
		for _, m := range rule.Pattern.FindAllStringSubmatchIndex(line, -1) {
			if isClaimed(claimed, m[0], m[1]) {
				continue
			}
			if rule.ValueOnly && beforeColon(line, m[1]) {
				continue
			}
			if rule.Word && !wordBounded(line, m[0], m[1]) {
				continue
			}
			gs, ge := m[2*rule.Group], m[2*rule.Group+1]
			if ge > gs {
				toks = append(toks, Token{Start: gs, Length: ge - gs, Category: rule.Category})
			}
			claim(claimed, m[0], m[1])
		}
	}

	slices.SortFunc(toks, func(a, b Token) int { return a.Start - b.Start })
	return toks
}

func isClaimed(claimed []bool, lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func claim(claimed []bool, lo, hi int) {
	for i := lo; i < hi; i++ {
		claimed[i] = true
	}
}

// beforeColon reports whether the next non-blank character at or after pos
// is a colon, marking the preceding match as a key position.
func beforeColon(line string, pos int) bool {
	rest := strings.TrimLeft(line[pos:], " \t")
	return strings.HasPrefix(rest, ":")
}

// wordBounded reports whether the span [lo, hi) is not bordered by word
// characters or dots.
func wordBounded(line string, lo, hi int) bool {
	if lo > 0 && isWordByte(line[lo-1]) {
		return false
	}
	if hi < len(line) && isWordByte(line[hi]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || b == '.' ||
		('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
