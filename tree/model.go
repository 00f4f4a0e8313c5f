// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"fmt"
	"slices"
)

// A node is one entry of the model's arena. Children are owned by their
// parent; the parent field is a non-owning back reference.
type node struct {
	key      string
	hasKey   bool
	value    any
	kind     Kind
	parent   ID
	children []ID
	alive    bool
}

// A Model is a mutable document tree mirroring a JSON value. The zero value
// is not ready for use; call New.
type Model struct {
	nodes    []node
	root     ID
	headers  []string
	watchers []func(Event)
}

// New constructs an empty Model whose root is a null leaf.
func New() *Model {
	m := &Model{headers: []string{"key", "value"}}
	m.root = m.alloc(node{kind: Null, parent: None, alive: true})
	return m
}

// Root returns the ID of the root node. The root has no parent and no key.
func (m *Model) Root() ID { return m.root }

// Headers returns the header labels used for tabular presentation.
// The defaults are "key" and "value".
func (m *Model) Headers() []string { return m.headers }

// SetHeaders replaces the header labels. The labels have no semantic
// effect on the model.
func (m *Model) SetHeaders(labels []string) { m.headers = slices.Clone(labels) }

// Watch registers fn to be called synchronously for each change to the
// model. Observers are invoked in subscription order.
func (m *Model) Watch(fn func(Event)) { m.watchers = append(m.watchers, fn) }

func (m *Model) notify(evt Event) {
	for _, fn := range m.watchers {
		fn(evt)
	}
}

// Load replaces the entire tree with nodes mirroring the native value v.
// All node IDs from before the call are invalidated. Ordered objects
// (jedit.Object) load in member order; properties of a native Go map are
// loaded in sorted key order, since the map does not preserve insertion
// order.
func (m *Model) Load(v any) error {
	nodes, root, err := buildArena(v)
	if err != nil {
		return err
	}
	m.nodes, m.root = nodes, root
	m.notify(Event{Op: OpReset, Node: None, Row: -1, Column: -1})
	return nil
}

// NewNode constructs a detached subtree mirroring the native value v and
// returns the ID of its root. The new node has no parent and no key; attach
// it with AppendChild or InsertChild.
func (m *Model) NewNode(v any) (ID, error) {
	id, err := build(&m.nodes, v)
	if err != nil {
		return None, err
	}
	return id, nil
}

// Kind reports the kind of the node.
func (m *Model) Kind(id ID) Kind { return m.node(id).kind }

// Key reports the node's object-member key. The second result is false for
// array elements, the root, and detached nodes.
func (m *Model) Key(id ID) (string, bool) {
	n := m.node(id)
	return n.key, n.hasKey
}

// Value reports the node's scalar value. It is nil for containers.
func (m *Model) Value(id ID) any { return m.node(id).value }

// Parent reports the node's parent, or None.
func (m *Model) Parent(id ID) ID { return m.node(id).parent }

// NumChildren reports the number of children of the node.
func (m *Model) NumChildren(id ID) int { return len(m.node(id).children) }

// Child returns the child of parent at the given row.
// It panics if the row is out of range.
func (m *Model) Child(parent ID, row int) ID {
	kids := m.node(parent).children
	if row < 0 || row >= len(kids) {
		panic(fmt.Sprintf("row %d out of range (n=%d)", row, len(kids)))
	}
	return kids[row]
}

// Row reports the node's position within its parent, or -1 if the node has
// no parent.
func (m *Model) Row(id ID) int {
	n := m.node(id)
	if n.parent == None {
		return -1
	}
	return slices.Index(m.node(n.parent).children, id)
}

// AppendChild attaches child as the last child of parent. The child must be
// detached: attaching a node that already has an owner fails with
// ErrAttached, and the previous owner must release it with Detach first.
func (m *Model) AppendChild(parent, child ID) error {
	return m.InsertChild(parent, m.NumChildren(parent), child)
}

// InsertChild attaches child at position at within parent, shifting the
// rows of existing children at or above at by one. Observers receive an
// OpInsert event; indexed addressing cached at or above the insertion point
// must be recomputed.
func (m *Model) InsertChild(parent ID, at int, child ID) error {
	p, c := m.node(parent), m.node(child)
	if !p.kind.IsContainer() {
		return modelErr("insert child", ErrNotContainer)
	}
	if c.parent != None {
		return modelErr("insert child", ErrAttached)
	}
	if at < 0 || at > len(p.children) {
		return modelErr("insert child", ErrBadIndex)
	}
	// Reject attaching a node beneath its own subtree, which would break the
	// single-owner invariant of the parent links.
	for anc := parent; anc != None; anc = m.nodes[anc].parent {
		if anc == child {
			return modelErr("insert child", ErrCycle)
		}
	}
	p.children = slices.Insert(p.children, at, child)
	c.parent = parent
	if p.kind == Array {
		c.key, c.hasKey = "", false
	}
	m.notify(Event{Op: OpInsert, Node: child, Row: at, Column: -1})
	return nil
}

// Detach removes the node from its parent, leaving it and its subtree alive
// but unowned. Detaching a node with no parent fails with ErrDetached.
func (m *Model) Detach(id ID) error {
	n := m.node(id)
	if n.parent == None {
		return modelErr("detach", ErrDetached)
	}
	row := m.Row(id)
	p := m.node(n.parent)
	p.children = slices.Delete(p.children, row, row+1)
	n.parent = None
	m.notify(Event{Op: OpRemove, Node: id, Row: row, Column: -1})
	return nil
}

// Remove detaches the node from its parent and discards its subtree. All
// IDs within the subtree are invalidated.
func (m *Model) Remove(id ID) error {
	if err := m.Detach(id); err != nil {
		return err
	}
	m.kill(id)
	return nil
}

func (m *Model) kill(id ID) {
	n := &m.nodes[id]
	n.alive = false
	for _, kid := range n.children {
		m.kill(kid)
	}
	n.children = nil
}

// SetKey updates the node's object-member key in place. It fails with
// ErrNotMember if the node is not the child of an object.
func (m *Model) SetKey(id ID, key string) error {
	n := m.node(id)
	if n.parent == None || m.node(n.parent).kind != Object {
		return modelErr("set key", ErrNotMember)
	}
	n.key, n.hasKey = key, true
	m.notify(Event{Op: OpSet, Node: id, Row: m.Row(id), Column: 0})
	return nil
}

// SetValue updates the node's scalar value in place, adjusting its kind to
// match. The value must be a scalar (string, number, bool, or nil); tree
// shape is never changed by SetValue, so containers and container values
// are rejected with ErrNotScalar.
func (m *Model) SetValue(id ID, v any) error {
	n := m.node(id)
	if n.kind.IsContainer() {
		return modelErr("set value", ErrNotScalar)
	}
	kind, err := scalarKind(v)
	if err != nil {
		return modelErr("set value", err)
	}
	n.kind, n.value = kind, v
	m.notify(Event{Op: OpSet, Node: id, Row: m.Row(id), Column: 1})
	return nil
}

// An Index addresses one cell of a node in tabular presentation: column 0
// is the node's key, column 1 its value.
type Index struct {
	Node   ID
	Column int
}

// Index resolves the cell at the given row and column beneath parent.
// Invalid rows fail with ErrBadIndex and invalid columns with ErrBadColumn.
func (m *Model) Index(parent ID, row, col int) (Index, error) {
	if col < 0 || col >= len(m.headers) {
		return Index{}, modelErr("index", ErrBadColumn)
	}
	kids := m.node(parent).children
	if row < 0 || row >= len(kids) {
		return Index{}, modelErr("index", ErrBadIndex)
	}
	return Index{Node: kids[row], Column: col}, nil
}

// Data reports the display datum for the addressed cell: the key for column
// 0 (nil for unkeyed nodes) and the scalar value for column 1 (nil for
// containers).
func (m *Model) Data(ix Index) any {
	n := m.node(ix.Node)
	switch ix.Column {
	case 0:
		if n.hasKey {
			return n.key
		}
		return nil
	case 1:
		return n.value
	default:
		return nil
	}
}

// SetData updates the addressed cell: a string key for column 0, a scalar
// value for column 1. Other columns fail with ErrBadColumn.
func (m *Model) SetData(ix Index, v any) error {
	switch ix.Column {
	case 0:
		key, ok := v.(string)
		if !ok {
			return modelErr("set data", fmt.Errorf("%w: key must be a string, not %T", ErrNotScalar, v))
		}
		return m.SetKey(ix.Node, key)
	case 1:
		return m.SetValue(ix.Node, v)
	default:
		return modelErr("set data", ErrBadColumn)
	}
}

// Path traverses from the root along the given path elements, where a
// string resolves an object member by key and an int resolves a child by
// position (negative values count backward from the end). When duplicate
// keys are present, the last member with the key wins, matching JSON's
// last-write lookup semantics.
func (m *Model) Path(path ...any) (ID, error) {
	cur := m.root
	for _, elt := range path {
		n := m.node(cur)
		switch t := elt.(type) {
		case string:
			if n.kind != Object {
				return None, modelErr("path", fmt.Errorf("cannot traverse %v with %q", n.kind, t))
			}
			next := None
			for _, kid := range n.children {
				if k := m.nodes[kid]; k.hasKey && k.key == t {
					next = kid
				}
			}
			if next == None {
				return None, modelErr("path", fmt.Errorf("key %q not found", t))
			}
			cur = next
		case int:
			i, ok := fixBound(len(n.children), t)
			if !ok {
				return None, modelErr("path", fmt.Errorf("%w: %d (n=%d)", ErrBadIndex, t, len(n.children)))
			}
			cur = n.children[i]
		default:
			return None, modelErr("path", fmt.Errorf("invalid path element %T", elt))
		}
	}
	return cur, nil
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// node returns the arena entry for id, or panics if id is not a live node.
func (m *Model) node(id ID) *node {
	if id < 0 || int(id) >= len(m.nodes) || !m.nodes[id].alive {
		panic(fmt.Sprintf("invalid node ID %d", id))
	}
	return &m.nodes[id]
}

func (m *Model) alloc(n node) ID {
	m.nodes = append(m.nodes, n)
	return ID(len(m.nodes) - 1)
}
