// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package format

import (
	"fmt"
	"maps"
	"slices"

	"github.com/creachadair/jedit"
)

// appendValue renders v to buf. In pretty mode every object member and array
// element is placed on its own line, indented by one copy of indent beyond
// prefix; in compact mode no whitespace is written at all. Ordered objects
// render in member order; native Go maps have no insertion order and render
// with their keys sorted.
func appendValue(buf []byte, v any, indent, prefix string, compact bool) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return append(buf, "null"...), nil
	case bool:
		if t {
			return append(buf, "true"...), nil
		}
		return append(buf, "false"...), nil
	case string:
		return append(buf, jedit.Quote(t)...), nil
	case jedit.Object:
		return appendObject(buf, t, indent, prefix, compact)
	case map[string]any:
		obj := make(jedit.Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			obj = append(obj, jedit.Member{Key: key, Value: t[key]})
		}
		return appendObject(buf, obj, indent, prefix, compact)
	case []any:
		return appendArray(buf, t, indent, prefix, compact)
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return jedit.AppendNumber(buf, t)
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

func appendObject(buf []byte, obj jedit.Object, indent, prefix string, compact bool) ([]byte, error) {
	if len(obj) == 0 {
		return append(buf, "{}"...), nil
	}
	buf = append(buf, '{')
	inner := prefix + indent
	for i, mem := range obj {
		if i > 0 {
			buf = append(buf, ',')
		}
		if !compact {
			buf = append(buf, '\n')
			buf = append(buf, inner...)
		}
		buf = append(buf, jedit.Quote(mem.Key)...)
		buf = append(buf, ':')
		if !compact {
			buf = append(buf, ' ')
		}
		var err error
		buf, err = appendValue(buf, mem.Value, indent, inner, compact)
		if err != nil {
			return nil, err
		}
	}
	if !compact {
		buf = append(buf, '\n')
		buf = append(buf, prefix...)
	}
	return append(buf, '}'), nil
}

func appendArray(buf []byte, arr []any, indent, prefix string, compact bool) ([]byte, error) {
	if len(arr) == 0 {
		return append(buf, "[]"...), nil
	}
	buf = append(buf, '[')
	inner := prefix + indent
	for i, elt := range arr {
		if i > 0 {
			buf = append(buf, ',')
		}
		if !compact {
			buf = append(buf, '\n')
			buf = append(buf, inner...)
		}
		var err error
		buf, err = appendValue(buf, elt, indent, inner, compact)
		if err != nil {
			return nil, err
		}
	}
	if !compact {
		buf = append(buf, '\n')
		buf = append(buf, prefix...)
	}
	return append(buf, ']'), nil
}
