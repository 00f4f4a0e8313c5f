// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/creachadair/jedit"
)

// scalarKind maps a native scalar to its node kind. Containers and
// non-JSON types report ErrNotScalar.
func scalarKind(v any) (Kind, error) {
	switch v.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool, nil
	case string:
		return String, nil
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return Number, nil
	default:
		return Null, fmt.Errorf("%w: %T", ErrNotScalar, v)
	}
}

func buildArena(v any) ([]node, ID, error) {
	var nodes []node
	root, err := build(&nodes, v)
	if err != nil {
		return nil, None, err
	}
	return nodes, root, nil
}

// build appends a detached subtree mirroring v to the arena and returns its
// root ID. On error the arena may contain dead entries, which the caller
// discards (Load) or leaves unreachable (NewNode).
func build(nodes *[]node, v any) (ID, error) {
	alloc := func(n node) ID {
		*nodes = append(*nodes, n)
		return ID(len(*nodes) - 1)
	}
	switch t := v.(type) {
	case jedit.Object:
		id := alloc(node{kind: Object, parent: None, alive: true})
		for _, mem := range t {
			kid, err := build(nodes, mem.Value)
			if err != nil {
				return None, err
			}
			(*nodes)[kid].key, (*nodes)[kid].hasKey = mem.Key, true
			(*nodes)[kid].parent = id
			(*nodes)[id].children = append((*nodes)[id].children, kid)
		}
		return id, nil
	case map[string]any:
		id := alloc(node{kind: Object, parent: None, alive: true})
		for _, key := range slices.Sorted(maps.Keys(t)) {
			kid, err := build(nodes, t[key])
			if err != nil {
				return None, err
			}
			(*nodes)[kid].key, (*nodes)[kid].hasKey = key, true
			(*nodes)[kid].parent = id
			(*nodes)[id].children = append((*nodes)[id].children, kid)
		}
		return id, nil
	case []any:
		id := alloc(node{kind: Array, parent: None, alive: true})
		for _, elt := range t {
			kid, err := build(nodes, elt)
			if err != nil {
				return None, err
			}
			(*nodes)[kid].parent = id
			(*nodes)[id].children = append((*nodes)[id].children, kid)
		}
		return id, nil
	default:
		kind, err := scalarKind(v)
		if err != nil {
			return None, modelErr("load", err)
		}
		return alloc(node{kind: kind, value: v, parent: None, alive: true}), nil
	}
}

// Native returns the native value mirrored by the subtree rooted at id: a
// map[string]any for objects, []any for arrays, and the stored scalar
// otherwise. For an object with duplicate keys the last member wins, per
// JSON's last-write lookup semantics; the duplicates themselves are
// preserved by the tree and by JSON.
func (m *Model) Native(id ID) any {
	n := m.node(id)
	switch n.kind {
	case Object:
		obj := make(map[string]any, len(n.children))
		for _, kid := range n.children {
			obj[m.nodes[kid].key] = m.Native(kid)
		}
		return obj
	case Array:
		arr := make([]any, 0, len(n.children))
		for _, kid := range n.children {
			arr = append(arr, m.Native(kid))
		}
		return arr
	default:
		return n.value
	}
}

// JSON renders the subtree rooted at id as compact JSON text, preserving
// the model's child order. This is the order-preserving serialization path;
// pass the result to a format.Formatter for pretty-printing.
func (m *Model) JSON(id ID) string {
	var sb strings.Builder
	m.appendJSON(&sb, id)
	return sb.String()
}

func (m *Model) appendJSON(sb *strings.Builder, id ID) {
	n := m.node(id)
	switch n.kind {
	case Object:
		sb.WriteByte('{')
		for i, kid := range n.children {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(jedit.Quote(m.nodes[kid].key))
			sb.WriteByte(':')
			m.appendJSON(sb, kid)
		}
		sb.WriteByte('}')
	case Array:
		sb.WriteByte('[')
		for i, kid := range n.children {
			if i > 0 {
				sb.WriteByte(',')
			}
			m.appendJSON(sb, kid)
		}
		sb.WriteByte(']')
	case String:
		sb.WriteString(jedit.Quote(n.value.(string)))
	case Bool:
		if n.value.(bool) {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		buf, err := jedit.AppendNumber(nil, n.value)
		if err != nil {
			sb.WriteString("null") // non-finite float stored via SetValue
		} else {
			sb.Write(buf)
		}
	default:
		sb.WriteString("null")
	}
}
