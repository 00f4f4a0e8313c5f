// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jedit provides the parsing core of a JSON-aware text editing
// support layer: a lexical scanner that tracks byte offsets and line/column
// positions, and a decoder that converts JSON text into native Go values.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a
// scanner from an io.Reader and call its Next method to iterate over the
// stream. Next advances to the next input token and returns nil, or reports
// an error:
//
//	s := jedit.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other
// error indicates an I/O or lexical error in the input.
//
// # Decoding
//
// Decode and DecodeString parse a single JSON value into its native Go
// representation: map[string]any, []any, string, int64, float64, bool, or
// nil. In case of a malformed input the error has concrete type
// [*SyntaxError], which carries the full location of the failure.
//
// The higher-level packages build on this core: format implements the
// policy-bearing formatter and validator, tree the mutable document model,
// highlight the token classifier, and editor the host-facing editing
// controller.
package jedit
