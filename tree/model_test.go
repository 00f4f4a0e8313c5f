// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jedit"
	"github.com/creachadair/jedit/tree"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func mustLoad(t *testing.T, m *tree.Model, input string) {
	t.Helper()
	v, err := jedit.DecodeString(input)
	if err != nil {
		t.Fatalf("Decode %#q: unexpected error: %v", input, err)
	}
	if err := m.Load(v); err != nil {
		t.Fatalf("Load %#q: unexpected error: %v", input, err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	tests := []string{
		`null`,
		`true`,
		`"plain"`,
		`-15`,
		`2.5`,
		`[]`,
		`{}`,
		`[1, ["two", false], null]`,
		`{"a": 1, "b": {"c": [true, 0.5]}, "d": "x"}`,
	}
	m := tree.New()
	for _, input := range tests {
		v, err := jedit.DecodeString(input)
		if err != nil {
			t.Fatalf("Decode %#q: unexpected error: %v", input, err)
		}
		if err := m.Load(v); err != nil {
			t.Errorf("Load %#q: unexpected error: %v", input, err)
			continue
		}
		if diff := cmp.Diff(v, m.Native(m.Root())); diff != "" {
			t.Errorf("Native %#q: (-want, +got)\n%s", input, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	m := tree.New()
	for _, v := range []any{make(chan int), struct{}{}, []any{int64(1), func() {}}} {
		if err := m.Load(v); !errors.Is(err, tree.ErrNotScalar) {
			t.Errorf("Load %T: got %v, wanted ErrNotScalar", v, err)
		}
	}
}

func TestAccessors(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `{"a": [10, 20], "b": "x"}`)

	root := m.Root()
	if got := m.Kind(root); got != tree.Object {
		t.Errorf("Kind(root): got %v, want %v", got, tree.Object)
	}
	if m.Parent(root) != tree.None {
		t.Error("Parent(root): got a parent, want None")
	}
	if got := m.NumChildren(root); got != 2 {
		t.Errorf("NumChildren(root): got %d, want 2", got)
	}

	// Properties load in sorted key order.
	a := m.Child(root, 0)
	if key, ok := m.Key(a); !ok || key != "a" {
		t.Errorf(`Key: got %q, %v; want "a", true`, key, ok)
	}
	if got := m.Kind(a); got != tree.Array {
		t.Errorf("Kind: got %v, want %v", got, tree.Array)
	}
	if m.Value(a) != nil {
		t.Errorf("Value of container: got %v, want nil", m.Value(a))
	}

	elt := m.Child(a, 1)
	if got := m.Value(elt); got != int64(20) {
		t.Errorf("Value: got %v, want 20", got)
	}
	if _, ok := m.Key(elt); ok {
		t.Error("Key of array element: got ok, want false")
	}
	if got := m.Row(elt); got != 1 {
		t.Errorf("Row: got %d, want 1", got)
	}
	if got := m.Parent(elt); got != a {
		t.Errorf("Parent: got %v, want %v", got, a)
	}

	mtest.MustPanic(t, func() { m.Child(root, 2) })
	mtest.MustPanic(t, func() { m.Kind(tree.None) })
	mtest.MustPanic(t, func() { m.Kind(tree.ID(1000)) })
}

func TestStructuralEdits(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `{"b": 1}`)
	root := m.Root()

	// Append a new member and give it a key. Member order is append order,
	// not sorted order.
	n, err := m.NewNode([]any{int64(2), "three"})
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}
	if err := m.AppendChild(root, n); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	if err := m.SetKey(n, "a"); err != nil {
		t.Fatalf("SetKey: unexpected error: %v", err)
	}
	if got, want := m.JSON(root), `{"b":1,"a":[2,"three"]}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	// Insert at the front.
	z, err := m.NewNode(nil)
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}
	if err := m.InsertChild(root, 0, z); err != nil {
		t.Fatalf("InsertChild: unexpected error: %v", err)
	}
	if err := m.SetKey(z, "z"); err != nil {
		t.Fatalf("SetKey: unexpected error: %v", err)
	}
	if got, want := m.JSON(root), `{"z":null,"b":1,"a":[2,"three"]}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	// Detach the array and reattach it elsewhere; its element order and
	// subtree survive, but its key does not survive moving into an array.
	if err := m.Detach(n); err != nil {
		t.Fatalf("Detach: unexpected error: %v", err)
	}
	if m.Parent(n) != tree.None {
		t.Error("Parent after Detach: got a parent, want None")
	}
	arr, err := m.NewNode([]any{})
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}
	if err := m.AppendChild(root, arr); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	if err := m.SetKey(arr, "w"); err != nil {
		t.Fatalf("SetKey: unexpected error: %v", err)
	}
	if err := m.AppendChild(arr, n); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	if _, ok := m.Key(n); ok {
		t.Error("Key after moving into array: got ok, want false")
	}
	if got, want := m.JSON(root), `{"z":null,"b":1,"w":[[2,"three"]]}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	// Remove invalidates the subtree.
	elt := m.Child(n, 0)
	if err := m.Remove(n); err != nil {
		t.Fatalf("Remove: unexpected error: %v", err)
	}
	mtest.MustPanic(t, func() { m.Kind(n) })
	mtest.MustPanic(t, func() { m.Kind(elt) })
	if got, want := m.JSON(root), `{"z":null,"b":1,"w":[]}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}

func TestEditErrors(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `{"a": [1], "s": "leaf"}`)
	root := m.Root()
	arr := m.Child(root, 0)
	leaf := m.Child(root, 1)

	n, err := m.NewNode(true)
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}

	if err := m.AppendChild(leaf, n); !errors.Is(err, tree.ErrNotContainer) {
		t.Errorf("AppendChild to leaf: got %v, wanted ErrNotContainer", err)
	}
	if err := m.InsertChild(arr, 5, n); !errors.Is(err, tree.ErrBadIndex) {
		t.Errorf("InsertChild out of range: got %v, wanted ErrBadIndex", err)
	}
	if err := m.AppendChild(arr, leaf); !errors.Is(err, tree.ErrAttached) {
		t.Errorf("AppendChild of attached node: got %v, wanted ErrAttached", err)
	}
	if err := m.Detach(root); !errors.Is(err, tree.ErrDetached) {
		t.Errorf("Detach root: got %v, wanted ErrDetached", err)
	}

	// Attaching an ancestor beneath its own subtree is rejected.
	if err := m.Detach(arr); err != nil {
		t.Fatalf("Detach: unexpected error: %v", err)
	}
	if err := m.AppendChild(m.Child(arr, 0), arr); !errors.Is(err, tree.ErrNotContainer) {
		t.Errorf("AppendChild to scalar: got %v, wanted ErrNotContainer", err)
	}
	if err := m.AppendChild(root, arr); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	if err := m.Detach(root); !errors.Is(err, tree.ErrDetached) {
		t.Errorf("Detach root: got %v, wanted ErrDetached", err)
	}

	if err := m.SetKey(m.Child(arr, 0), "k"); !errors.Is(err, tree.ErrNotMember) {
		t.Errorf("SetKey of array element: got %v, wanted ErrNotMember", err)
	}
	if err := m.SetValue(arr, 3); !errors.Is(err, tree.ErrNotScalar) {
		t.Errorf("SetValue of container: got %v, wanted ErrNotScalar", err)
	}
	if err := m.SetValue(leaf, make(chan int)); !errors.Is(err, tree.ErrNotScalar) {
		t.Errorf("SetValue of channel: got %v, wanted ErrNotScalar", err)
	}

	var merr *tree.ModelError
	if err := m.Detach(root); !errors.As(err, &merr) {
		t.Errorf("Detach root: got %v, wanted a ModelError", err)
	}
}

func TestCycleRejected(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `[[[]]]`)
	root := m.Root()
	inner := m.Child(m.Child(root, 0), 0)

	if err := m.Detach(m.Child(root, 0)); err != nil {
		t.Fatalf("Detach: unexpected error: %v", err)
	}
	outer := m.Parent(inner)
	if err := m.AppendChild(inner, outer); !errors.Is(err, tree.ErrCycle) {
		t.Errorf("AppendChild of ancestor: got %v, wanted ErrCycle", err)
	}
	if err := m.Detach(inner); err != nil {
		t.Fatalf("Detach: unexpected error: %v", err)
	}
	if err := m.AppendChild(inner, inner); !errors.Is(err, tree.ErrCycle) {
		t.Errorf("AppendChild of self: got %v, wanted ErrCycle", err)
	}
}

func TestSetValue(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `{"a": 1}`)
	a := m.Child(m.Root(), 0)

	// The node's kind tracks the value stored in it.
	for _, test := range []struct {
		value any
		kind  tree.Kind
	}{
		{"text", tree.String},
		{2.5, tree.Number},
		{false, tree.Bool},
		{nil, tree.Null},
		{int64(3), tree.Number},
	} {
		if err := m.SetValue(a, test.value); err != nil {
			t.Errorf("SetValue %v: unexpected error: %v", test.value, err)
			continue
		}
		if got := m.Kind(a); got != test.kind {
			t.Errorf("Kind after SetValue %v: got %v, want %v", test.value, got, test.kind)
		}
		if got := m.Value(a); got != test.value {
			t.Errorf("Value: got %v, want %v", got, test.value)
		}
	}
	if got, want := m.JSON(m.Root()), `{"a":3}`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}

func TestIndexData(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `{"a": 1, "b": [true]}`)
	root := m.Root()

	if got := m.Headers(); !cmp.Equal(got, []string{"key", "value"}) {
		t.Errorf("Headers: got %v", got)
	}
	m.SetHeaders([]string{"name", "content"})
	if got := m.Headers(); !cmp.Equal(got, []string{"name", "content"}) {
		t.Errorf("Headers: got %v", got)
	}

	ix, err := m.Index(root, 0, 0)
	if err != nil {
		t.Fatalf("Index: unexpected error: %v", err)
	}
	if got := m.Data(ix); got != "a" {
		t.Errorf(`Data key: got %v, want "a"`, got)
	}
	ix, err = m.Index(root, 0, 1)
	if err != nil {
		t.Fatalf("Index: unexpected error: %v", err)
	}
	if got := m.Data(ix); got != int64(1) {
		t.Errorf("Data value: got %v, want 1", got)
	}

	// A container cell has a nil value; an unkeyed cell a nil key.
	b, err := m.Index(root, 1, 1)
	if err != nil {
		t.Fatalf("Index: unexpected error: %v", err)
	}
	if got := m.Data(b); got != nil {
		t.Errorf("Data of container: got %v, want nil", got)
	}
	elt, err := m.Index(m.Child(root, 1), 0, 0)
	if err != nil {
		t.Fatalf("Index: unexpected error: %v", err)
	}
	if got := m.Data(elt); got != nil {
		t.Errorf("Data key of element: got %v, want nil", got)
	}

	if _, err := m.Index(root, 0, 2); !errors.Is(err, tree.ErrBadColumn) {
		t.Errorf("Index bad column: got %v, wanted ErrBadColumn", err)
	}
	if _, err := m.Index(root, 9, 0); !errors.Is(err, tree.ErrBadIndex) {
		t.Errorf("Index bad row: got %v, wanted ErrBadIndex", err)
	}

	// SetData routes to SetKey and SetValue by column.
	if err := m.SetData(ix, int64(42)); err != nil {
		t.Fatalf("SetData: unexpected error: %v", err)
	}
	if got := m.Value(m.Child(root, 0)); got != int64(42) {
		t.Errorf("Value: got %v, want 42", got)
	}
	key := tree.Index{Node: m.Child(root, 0), Column: 0}
	if err := m.SetData(key, "aa"); err != nil {
		t.Fatalf("SetData: unexpected error: %v", err)
	}
	if got, _ := m.Key(m.Child(root, 0)); got != "aa" {
		t.Errorf(`Key: got %q, want "aa"`, got)
	}
	if err := m.SetData(key, 5); !errors.Is(err, tree.ErrNotScalar) {
		t.Errorf("SetData non-string key: got %v, wanted ErrNotScalar", err)
	}
	if err := m.SetData(tree.Index{Node: key.Node, Column: 7}, "x"); !errors.Is(err, tree.ErrBadColumn) {
		t.Errorf("SetData bad column: got %v, wanted ErrBadColumn", err)
	}
}

func TestPath(t *testing.T) {
	m := tree.New()
	mustLoad(t, m, `{"a": {"b": [10, 20, 30]}, "c": true}`)

	tests := []struct {
		path []any
		want any
	}{
		{nil, nil}, // the root, a container
		{[]any{"c"}, true},
		{[]any{"a", "b", 0}, int64(10)},
		{[]any{"a", "b", -1}, int64(30)},
		{[]any{"a", "b", -3}, int64(10)},
	}
	for _, test := range tests {
		id, err := m.Path(test.path...)
		if err != nil {
			t.Errorf("Path %v: unexpected error: %v", test.path, err)
			continue
		}
		if got := m.Value(id); got != test.want {
			t.Errorf("Path %v: got %v, want %v", test.path, got, test.want)
		}
	}

	bad := [][]any{
		{"nonesuch"},
		{"a", "b", 3},
		{"a", "b", -4},
		{"c", "d"},  // cannot traverse a scalar
		{"a", true}, // invalid element type
	}
	for _, path := range bad {
		if id, err := m.Path(path...); err == nil {
			t.Errorf("Path %v: got %v, wanted error", path, id)
		}
	}

	// With duplicate keys, the last member wins.
	dup, err := m.NewNode(int64(99))
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}
	if err := m.AppendChild(m.Root(), dup); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	if err := m.SetKey(dup, "a"); err != nil {
		t.Fatalf("SetKey: unexpected error: %v", err)
	}
	id, err := m.Path("a")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if got := m.Value(id); got != int64(99) {
		t.Errorf("Path with duplicate keys: got %v, want 99", got)
	}
}

func TestWatch(t *testing.T) {
	m := tree.New()
	var events []tree.Event
	m.Watch(func(evt tree.Event) { events = append(events, evt) })

	mustLoad(t, m, `{"a": 1}`)
	a := m.Child(m.Root(), 0)
	if err := m.SetValue(a, int64(2)); err != nil {
		t.Fatalf("SetValue: unexpected error: %v", err)
	}
	n, err := m.NewNode("x")
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}
	if err := m.AppendChild(m.Root(), n); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	if err := m.SetKey(n, "b"); err != nil {
		t.Fatalf("SetKey: unexpected error: %v", err)
	}
	if err := m.Remove(n); err != nil {
		t.Fatalf("Remove: unexpected error: %v", err)
	}

	want := []tree.Event{
		{Op: tree.OpReset, Node: tree.None, Row: -1, Column: -1},
		{Op: tree.OpSet, Node: a, Row: 0, Column: 1},
		{Op: tree.OpInsert, Node: n, Row: 1, Column: -1},
		{Op: tree.OpSet, Node: n, Row: 1, Column: 0},
		{Op: tree.OpRemove, Node: n, Row: 1, Column: -1},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("Events: (-want, +got)\n%s", diff)
	}
}

func TestJSONOrder(t *testing.T) {
	// Loading a native map sorts keys; explicit construction preserves the
	// order in which members were attached.
	m := tree.New()
	mustLoad(t, m, `{"b": 2, "a": 1}`)
	if got, want := m.JSON(m.Root()), `{"a":1,"b":2}`; got != want {
		t.Errorf("JSON after Load: got %#q, want %#q", got, want)
	}

	if err := m.Load([]any{}); err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	obj, err := m.NewNode(map[string]any{})
	if err != nil {
		t.Fatalf("NewNode: unexpected error: %v", err)
	}
	if err := m.AppendChild(m.Root(), obj); err != nil {
		t.Fatalf("AppendChild: unexpected error: %v", err)
	}
	for _, key := range []string{"zebra", "apple", "mango"} {
		n, err := m.NewNode(key)
		if err != nil {
			t.Fatalf("NewNode: unexpected error: %v", err)
		}
		if err := m.AppendChild(obj, n); err != nil {
			t.Fatalf("AppendChild: unexpected error: %v", err)
		}
		if err := m.SetKey(n, key); err != nil {
			t.Fatalf("SetKey: unexpected error: %v", err)
		}
	}
	const want = `[{"zebra":"zebra","apple":"apple","mango":"mango"}]`
	if got := m.JSON(m.Root()); got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	// String values are escaped on output.
	if err := m.Load([]any{"a\nb"}); err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if got, want := m.JSON(m.Root()), `["a\nb"]`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}
}

func TestLoadOrdered(t *testing.T) {
	// An ordered decode loads in member order, so the document round-trips
	// through the model without reordering.
	const input = `{"z":1,"a":{"y":2,"b":3},"m":[{"q":4,"p":5}]}`
	v, err := jedit.DecodeOrderedString(input)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	m := tree.New()
	if err := m.Load(v); err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if got := m.JSON(m.Root()); got != input {
		t.Errorf("JSON: got %#q, want %#q", got, input)
	}

	id, err := m.Path("a", "b")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if got := m.Value(id); got != int64(3) {
		t.Errorf("Value: got %v, want 3", got)
	}
}
