// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package editor

import "strings"

// An Edit is the result of applying an editing affordance to a text buffer:
// the replacement buffer contents and the new cursor position.
type Edit struct {
	Text string // the updated buffer contents
	Pos  int    // the updated cursor position, a byte offset
}

var pairs = map[rune]rune{'{': '}', '[': ']', '(': ')', '"': '"'}

// AutoPair handles typing an opening character at pos in text: the closing
// counterpart is inserted along with it and the cursor is placed between
// the two. Typing an opening brace expands to an indented block,
//
//	{
//	  _
//	}
//
// with the inner line indented indent spaces beyond the current line and
// the cursor at its end. The second result is false if ch is not an
// opening character, in which case the host should insert it normally.
func AutoPair(text string, pos int, ch rune, indent int) (Edit, bool) {
	closing, ok := pairs[ch]
	if !ok {
		return Edit{}, false
	}
	if ch == '{' {
		leading := lineIndent(text, pos)
		open := "{\n" + spaces(leading+indent)
		snippet := open + "\n" + spaces(leading) + "}"
		return Edit{Text: text[:pos] + snippet + text[pos:], Pos: pos + len(open)}, true
	}
	return Edit{Text: text[:pos] + string(ch) + string(closing) + text[pos:], Pos: pos + len(string(ch))}, true
}

// NewlineIndent handles the return key at pos in text: the inserted newline
// carries the indentation of the current line.
func NewlineIndent(text string, pos int) Edit {
	ins := "\n" + spaces(lineIndent(text, pos))
	return Edit{Text: text[:pos] + ins + text[pos:], Pos: pos + len(ins)}
}

// ExpandTab handles the tab key at pos in text, inserting indent spaces.
func ExpandTab(text string, pos int, indent int) Edit {
	ins := spaces(indent)
	return Edit{Text: text[:pos] + ins + text[pos:], Pos: pos + len(ins)}
}

// lineIndent reports the number of leading spaces on the line containing
// pos.
func lineIndent(text string, pos int) int {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	n := 0
	for i := start; i < len(text) && text[i] == ' '; i++ {
		n++
	}
	return n
}

func spaces(n int) string { return strings.Repeat(" ", n) }
