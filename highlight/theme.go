// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// A Theme maps categories to rendering styles. A category with no entry
// renders as plain text. Themes are plain values passed in by the host;
// nothing in this package consults ambient terminal or application state to
// pick one.
type Theme map[Category]lipgloss.Style

func fg(hex string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)) }

// DarkTheme returns the default style table for dark backgrounds.
func DarkTheme() Theme {
	return Theme{
		Brace:     fg("#acacac"),
		Quote:     fg("#cccccc"),
		Separator: fg("#acacac"),
		Key:       fg("#f0a966").Bold(true),
		DateTime:  fg("#56b6c2"),
		Date:      fg("#98c379"),
		Uppercase: fg("#ffb86c"),
		String:    fg("#a9dc76"),
		Number:    fg("#f8f8f2"),
		Boolean:   fg("#ff79c6"),
		Null:      fg("#ff79c6"),
	}
}

// LightTheme returns the default style table for light backgrounds.
func LightTheme() Theme {
	return Theme{
		Brace:     fg("#888888"),
		Quote:     fg("#888888"),
		Separator: fg("#707070"),
		Key:       fg("#b03060").Bold(true),
		DateTime:  fg("#008b8b"),
		Date:      fg("#006400"),
		Uppercase: fg("#b22222"),
		String:    fg("#006400"),
		Number:    fg("#00008b"),
		Boolean:   fg("#8b008b"),
		Null:      fg("#8b008b"),
	}
}

// Render paints the classified spans of line using the theme's styles.
// Gaps between tokens are copied through unstyled. The tokens must be
// non-overlapping and sorted by start offset, as reported by Classify.
func (t Theme) Render(line string, toks []Token) string {
	var sb strings.Builder
	pos := 0
	for _, tok := range toks {
		if tok.Start > pos {
			sb.WriteString(line[pos:tok.Start])
		}
		end := tok.Start + tok.Length
		if style, ok := t[tok.Category]; ok {
			sb.WriteString(style.Render(line[tok.Start:end]))
		} else {
			sb.WriteString(line[tok.Start:end])
		}
		pos = end
	}
	sb.WriteString(line[pos:])
	return sb.String()
}
