// Package query implements the client-side query cache: structural cache
// keys, query descriptors, a read-through cache over pluggable stores, and
// coarse prefix invalidation after successful mutations.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Key is an ordered sequence of segments identifying a cached query result.
// The first segment is always the resource name. Segments are strings or
// plain maps of primitives; equality is structural, so two keys built from
// maps with different insertion orders compare equal.
type Key []any

// NewKey builds a key rooted at the resource name.
func NewKey(resource string, segments ...any) Key {
	k := make(Key, 0, len(segments)+1)
	k = append(k, resource)
	return append(k, segments...)
}

// Resource returns the key's first segment.
func (k Key) Resource() string {
	if len(k) == 0 {
		return ""
	}
	s, _ := k[0].(string)
	return s
}

// Canonical renders the key as a stable store key. Each segment is JSON
// encoded (encoding/json sorts map keys, making the encoding canonical) and
// segments are joined with "/". The JSON quoting of the resource segment
// keeps prefix matches from crossing resource boundaries ("products" never
// prefixes "productsets").
func (k Key) Canonical() string {
	parts := make([]string, len(k))
	for i, seg := range k {
		parts[i] = encodeSegment(seg)
	}
	return strings.Join(parts, "/")
}

// Equal reports structural equality.
func (k Key) Equal(other Key) bool {
	return k.Canonical() == other.Canonical()
}

// ResourcePrefix returns the canonical prefix shared by every key rooted at
// the resource, for prefix invalidation.
func ResourcePrefix(resource string) string {
	return encodeSegment(resource) + "/"
}

func encodeSegment(seg any) string {
	b, err := json.Marshal(seg)
	if err != nil {
		return fmt.Sprintf("%v", seg)
	}
	return string(b)
}

// valuesMap converts url.Values into a plain map so filters participate in
// structural key equality rather than query-string concatenation.
func valuesMap(filter url.Values) map[string]any {
	m := make(map[string]any, len(filter))
	for key, vals := range filter {
		if len(vals) == 1 {
			m[key] = vals[0]
			continue
		}
		m[key] = vals
	}
	return m
}
