// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jedit validates, reformats, minifies, and colorizes JSON text.
//
// Usage:
//
//	jedit check [file]    -- validate input and report errors
//	jedit fmt [file]      -- pretty-print input
//	jedit min [file]      -- minify input
//	jedit color [file]    -- print input with syntax highlighting
//
// With no file argument, input is read from stdin.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jedit/format"
	"github.com/creachadair/jedit/highlight"
)

var cli struct {
	Indent  int  `help:"Indentation width for formatted output." short:"i" default:"2"`
	Relaxed bool `help:"Accept comments and trailing commas in input." short:"r"`

	Check checkCmd `cmd:"" help:"Validate JSON input and report errors."`
	Fmt   fmtCmd   `cmd:"" help:"Pretty-print JSON input."`
	Min   minCmd   `cmd:"" help:"Minify JSON input."`
	Color colorCmd `cmd:"" help:"Print JSON input with syntax highlighting."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("jedit"),
		kong.Description("Validate, reformat, and colorize JSON text."),
		kong.UsageOnError(),
	)

	f := format.New()
	if err := f.SetIndent(cli.Indent); err != nil {
		fmt.Fprintf(os.Stderr, "jedit: %v\n", err)
		os.Exit(2)
	}
	f.SetRelaxed(cli.Relaxed)

	if err := ctx.Run(f); err != nil {
		fmt.Fprintf(os.Stderr, "jedit: %v\n", err)
		os.Exit(1)
	}
}

// readInput returns the contents of path, or of stdin if path is empty.
func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

type checkCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Input file (default stdin)."`
}

func (c checkCmd) Run(f *format.Formatter) error {
	text, err := readInput(c.Path)
	if err != nil {
		return err
	}
	if _, err := f.Format(text); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

type fmtCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Input file (default stdin)."`
}

func (c fmtCmd) Run(f *format.Formatter) error {
	text, err := readInput(c.Path)
	if err != nil {
		return err
	}
	out, err := f.Format(text)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type minCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Input file (default stdin)."`
}

func (c minCmd) Run(f *format.Formatter) error {
	text, err := readInput(c.Path)
	if err != nil {
		return err
	}
	out, err := f.Minify(text)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type colorCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Input file (default stdin)."`
	Dark bool   `help:"Use the dark-background style table."`
	Raw  bool   `help:"Colorize the input as-is instead of formatting it first."`
}

func (c colorCmd) Run(f *format.Formatter) error {
	text, err := readInput(c.Path)
	if err != nil {
		return err
	}
	if !c.Raw {
		out, err := f.Format(text)
		if err != nil {
			return err
		}
		text = out
	}
	theme := highlight.LightTheme()
	if c.Dark {
		theme = highlight.DarkTheme()
	}

	h := highlight.New()
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		fmt.Fprintln(w, theme.Render(line, h.Classify(line)))
	}
	return sc.Err()
}
