// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package editor provides the host-facing editing controller of the JSON
// editing support layer.
//
// A Controller sits between a text-editing widget and a format.Formatter.
// The host feeds it raw text changes; the controller coalesces rapid edits
// with a debounce window and reports validity transitions and formatting
// failures through registered callbacks. Formatted or minified text is
// delivered back to the host through a commit callback rather than a return
// value, so a fire-and-forget call path still reaches the user.
//
// Callbacks are invoked synchronously, in subscription order, and never
// re-entrantly within the same debounce cycle. The debounce timer fires on
// a timer goroutine, so the controller guards its own state with a mutex;
// everything else in the core assumes single-threaded use by the host.
package editor

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/creachadair/jedit/format"
)

// Bounds on the debounce window.
const (
	DefaultDebounce = 100 * time.Millisecond  // the default debounce window
	MaxDebounce     = 1000 * time.Millisecond // the maximum debounce window
)

// A Controller wires debounced validity checking and format/minify
// affordances on top of a Formatter. Use New to construct one.
type Controller struct {
	mu       sync.Mutex
	fmtr     *format.Formatter
	text     string
	delay    time.Duration
	timer    *time.Timer
	last     *bool // validity at the most recent check, nil before the first
	validity []func(bool)
	faults   []func(*format.FormatError)
	commit   func(string)
}

// New constructs a Controller around f, or around a default formatter if f
// is nil. The debounce window defaults to DefaultDebounce.
func New(f *format.Formatter) *Controller {
	if f == nil {
		f = format.New()
	}
	return &Controller{fmtr: f, delay: DefaultDebounce}
}

// Formatter returns the controller's formatter, whose policy settings are
// shared with the controller.
func (c *Controller) Formatter() *format.Formatter { return c.fmtr }

// OnValidityChanged registers fn to be called when a validity check
// observes a different result from the previous check. Callbacks fire in
// subscription order.
func (c *Controller) OnValidityChanged(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validity = append(c.validity, fn)
}

// OnFormatError registers fn to be called when Format or Minify fails.
// Callbacks fire in subscription order.
func (c *Controller) OnFormatError(fn func(*format.FormatError)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faults = append(c.faults, fn)
}

// SetCommit registers the callback through which formatted or minified text
// is written back to the host.
func (c *Controller) SetCommit(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commit = fn
}

// SetText records a text change from the host and restarts the debounce
// window. When multiple edits occur within the window only the most recent
// pending check survives; earlier pending timers are canceled.
func (c *Controller) SetText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = s
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.check)
}

// Text returns the most recent text recorded by SetText or produced by
// Format or Minify.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// IsValid reports whether the current text is valid under the formatter's
// policy. It checks immediately, without waiting for the debounce window.
func (c *Controller) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fmtr.IsValid(c.text)
}

// Flush cancels any pending debounce timer and runs the validity check
// immediately.
func (c *Controller) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.check()
}

// Close cancels any pending validity check.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// check evaluates validity for the state at the time the timer fires, and
// notifies observers if the result differs from the previous check.
func (c *Controller) check() {
	c.mu.Lock()
	valid := c.fmtr.IsValid(c.text)
	changed := c.last == nil || *c.last != valid
	c.last = &valid
	fns := slices.Clone(c.validity)
	c.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(valid)
		}
	}
}

// Format pretty-prints the current text using the formatter's policy and
// delivers the result through the commit callback. On failure the error is
// delivered to the OnFormatError observers and the text is left unchanged.
func (c *Controller) Format() { c.apply(func(s string) (string, error) { return c.fmtr.Format(s) }) }

// Minify compacts the current text and delivers the result through the
// commit callback. On failure the error is delivered to the OnFormatError
// observers and the text is left unchanged.
func (c *Controller) Minify() { c.apply(func(s string) (string, error) { return c.fmtr.Minify(s) }) }

func (c *Controller) apply(f func(string) (string, error)) {
	c.mu.Lock()
	text := c.text
	commit := c.commit
	faults := slices.Clone(c.faults)
	c.mu.Unlock()

	out, err := f(text)
	if err != nil {
		var ferr *format.FormatError
		if !errors.As(err, &ferr) {
			ferr = &format.FormatError{Message: err.Error(), Text: text, Line: 1, Column: 1}
		}
		for _, fn := range faults {
			fn(ferr)
		}
		return
	}

	c.mu.Lock()
	c.text = out
	c.mu.Unlock()
	if commit != nil {
		commit(out)
	}
}

// SetIndentWidth sets the formatter's indentation width. It reports a
// *format.RangeError for widths outside [0, format.MaxIndent].
func (c *Controller) SetIndentWidth(n int) error { return c.fmtr.SetIndent(n) }

// SetDebounce sets the debounce window for validity checking. It reports a
// *format.RangeError without changing the setting if d is outside
// [0, MaxDebounce]. A window of 0 checks on the next timer tick.
func (c *Controller) SetDebounce(d time.Duration) error {
	if d < 0 || d > MaxDebounce {
		return &format.RangeError{
			What:  "debounce delay",
			Value: int(d / time.Millisecond),
			Min:   0,
			Max:   int(MaxDebounce / time.Millisecond),
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = d
	return nil
}
