// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jedit

// An Object is the order-preserving native representation of a JSON object:
// its members in their original order of appearance. Duplicate keys are
// retained positionally; lookup observes JSON's last-write semantics.
//
// DecodeOrdered produces Object values; Decode produces unordered native
// maps. The two forms are otherwise interchangeable as inputs.
type Object []Member

// A Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Find returns the value of the last member of o with the given key.
// The second result is false if no member has the key.
func (o Object) Find(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Map converts o to an unordered native map. For duplicate keys the last
// member wins. The member values are not converted.
func (o Object) Map() map[string]any {
	m := make(map[string]any, len(o))
	for _, mem := range o {
		m[mem.Key] = mem.Value
	}
	return m
}
