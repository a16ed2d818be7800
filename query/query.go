// Package query implements an order-preserving codec for "k=v&k=v" query strings.
//
// Unlike [net/url.Values], a [Query] keeps the original order of its pairs, tolerates
// duplicate keys and never decodes or encodes escapes: keys and values are kept as written.
package query

//go:generate go tool errtrace -w .

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/uniresource/uniresource/internal/errorutil"
	"github.com/uniresource/uniresource/internal/util"
)

// ErrMissingKey is returned by [Query.Value] when the key is absent.
const ErrMissingKey errorutil.Error = "missing query key"

// Pair is a single key-value pair of a query.
type Pair struct {
	Key   string
	Value string
}

// Query is an immutable ordered list of pairs.
// The zero value and nil are valid empty queries.
type Query struct {
	pairs []Pair
}

// Parse parses the query string.
//
// The input is split on "&", every part is split on its first "=".
// Parts without "=" are dropped. An empty input yields an empty query.
func Parse(s string) *Query {
	q := &Query{}
	if s == "" {
		return q
	}
	for part := range strings.SplitSeq(s, "&") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		q.pairs = append(q.pairs, Pair{k, v})
	}
	return q
}

// New creates a query of the pairs.
func New(pairs ...Pair) *Query {
	return &Query{pairs: slices.Clone(pairs)}
}

// Encode formats the query as "k=v&k=v".
// It returns false for an empty query, which has no textual form.
func (q *Query) Encode() (string, bool) {
	if q.Len() == 0 {
		return "", false
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, p := range q.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String(), true
}

// String returns the encoded query or an empty string.
func (q *Query) String() string {
	s, _ := q.Encode()
	return s
}

// Len returns the number of pairs.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.pairs)
}

// Has reports whether the key is present.
func (q *Query) Has(key string) bool {
	_, ok := util.IterFirst(q.values(key))
	return ok
}

// Value returns the first value of the key.
func (q *Query) Value(key string) (string, error) {
	v, ok := util.IterFirst(q.values(key))
	if !ok {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrMissingKey, "key %q", key))
	}
	return v, nil
}

// Values returns all values of the key in order.
// A missing key yields an empty slice.
func (q *Query) Values(key string) []string {
	vs := slices.Collect(q.values(key))
	if vs == nil {
		return []string{}
	}
	return vs
}

func (q *Query) values(key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if q == nil {
			return
		}
		for _, p := range q.pairs {
			if p.Key == key && !yield(p.Value) {
				return
			}
		}
	}
}

// Keys returns the distinct keys in the order of their first occurrence.
func (q *Query) Keys() []string {
	keys := []string{}
	seen := make(map[string]struct{}, q.Len())
	for _, p := range q.Entries() {
		if _, ok := seen[p.Key]; ok {
			continue
		}
		seen[p.Key] = struct{}{}
		keys = append(keys, p.Key)
	}
	return keys
}

// Entries returns a copy of the pairs.
func (q *Query) Entries() []Pair {
	if q == nil {
		return nil
	}
	return slices.Clone(q.pairs)
}

// All iterates over the pairs in order.
func (q *Query) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if q == nil {
			return
		}
		for _, p := range q.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Equal reports whether both queries have the same pairs in the same order.
func (q *Query) Equal(other *Query) bool {
	return slices.Equal(q.Entries(), other.Entries())
}

// ToBuilder returns a builder holding the pairs of the query.
func (q *Query) ToBuilder() *Builder {
	b := NewBuilder()
	for k, v := range q.All() {
		b.Add(k, v)
	}
	return b
}

// LogValue implements [slog.LogValuer].
func (q *Query) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, q.Len())
	for k, v := range q.All() {
		attrs = append(attrs, slog.String(k, v))
	}
	return slog.GroupValue(attrs...)
}
