// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package tree implements a mutable, order-preserving document model that
// mirrors a JSON value.
//
// A Model owns an arena of nodes addressed by opaque IDs. Each node records
// its kind, an optional object-member key, a scalar value for leaf nodes,
// and the ordered IDs of its children. The parent link is stored as an arena
// ID rather than a pointer, so the child-to-parent back reference is
// non-owning and the structure contains no reference cycles.
//
// Structural mutations (attach, insert, detach, key and value updates)
// return a [*ModelError] for invalid requests and never leave the tree in a
// corrupt shape. Accessors taking a node ID panic if the ID is not a live
// node of the model; passing a stale ID is a programming error, not an
// input error.
//
// A Model is not safe for concurrent use. All operations run synchronously
// on the calling goroutine, and observers registered with Watch are invoked
// synchronously in subscription order.
package tree

import (
	"errors"
	"fmt"
)

// Kind describes the JSON type a node mirrors.
type Kind int

// Constants defining the valid Kind values.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindStr = [...]string{
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k Kind) String() string {
	v := int(k)
	if v < 0 || v >= len(kindStr) {
		return "invalid kind"
	}
	return kindStr[v]
}

// IsContainer reports whether k is an object or array kind.
func (k Kind) IsContainer() bool { return k == Array || k == Object }

// An ID addresses a node within its owning Model. IDs are invalidated by
// Load, which replaces the entire tree.
type ID int

// None is the ID of no node. It is the parent of the root and of any
// detached node.
const None ID = -1

// An Op identifies the kind of change reported by an Event.
type Op int

// Constants defining the valid Op values.
const (
	OpReset  Op = iota // the entire tree was replaced
	OpSet              // a key or value changed in place
	OpInsert           // a child was attached to a parent
	OpRemove           // a child was detached from its parent
)

// An Event describes a change to the model, delivered synchronously to
// observers registered with Watch.
//
// For OpInsert and OpRemove, Row is the child's position within its parent
// at the time of the change; rows at or above an insertion point shift by
// one, so any cached indexed addressing at or above Row must be recomputed.
type Event struct {
	Op     Op
	Node   ID  // the affected node; None for OpReset
	Row    int // the node's row within its parent; -1 when not applicable
	Column int // 0 = key, 1 = value; -1 when not column-specific
}

// Sentinel reasons wrapped by ModelError, for use with errors.Is.
var (
	ErrAttached     = errors.New("node already has a parent")
	ErrDetached     = errors.New("node has no parent")
	ErrCycle        = errors.New("cyclic reparenting")
	ErrNotContainer = errors.New("node is not an object or array")
	ErrNotMember    = errors.New("node is not an object member")
	ErrNotScalar    = errors.New("value is not a scalar")
	ErrBadIndex     = errors.New("index out of range")
	ErrBadColumn    = errors.New("invalid column index")
)

// A ModelError reports an invalid tree mutation or addressing request. It
// wraps one of the sentinel reasons above.
type ModelError struct {
	Op string // the operation that failed

	err error
}

// Error satisfies the error interface.
func (e *ModelError) Error() string { return fmt.Sprintf("model: %s: %v", e.Op, e.err) }

// Unwrap supports error wrapping.
func (e *ModelError) Unwrap() error { return e.err }

func modelErr(op string, err error) *ModelError { return &ModelError{Op: op, err: err} }
