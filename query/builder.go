package query

import (
	"slices"
)

// Builder accumulates pairs and builds a [Query].
// Pairs are emitted in the order they were added, duplicates included.
//
// Builder is not safe for concurrent use.
type Builder struct {
	prio    int
	entries map[string][]builderValue
}

type builderValue struct {
	prio  int
	value string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string][]builderValue)}
}

// Add appends the pair.
func (b *Builder) Add(key, value string) *Builder {
	b.entries[key] = append(b.entries[key], builderValue{b.prio, value})
	b.prio++
	return b
}

// AddValues appends a pair for every value.
func (b *Builder) AddValues(key string, values ...string) *Builder {
	for _, v := range values {
		b.Add(key, v)
	}
	return b
}

// Remove drops every pair of the key.
func (b *Builder) Remove(key string) *Builder {
	delete(b.entries, key)
	return b
}

// RemoveValue drops every pair of the key having the value.
func (b *Builder) RemoveValue(key, value string) *Builder {
	vs := slices.DeleteFunc(b.entries[key], func(v builderValue) bool { return v.value == value })
	if len(vs) == 0 {
		delete(b.entries, key)
	} else {
		b.entries[key] = vs
	}
	return b
}

// Build returns the query.
// The builder can be reused afterwards.
func (b *Builder) Build() *Query {
	type prioPair struct {
		prio int
		Pair
	}

	var all []prioPair
	for k, vs := range b.entries {
		for _, v := range vs {
			all = append(all, prioPair{v.prio, Pair{k, v.value}})
		}
	}
	slices.SortStableFunc(all, func(a, c prioPair) int { return a.prio - c.prio })

	q := &Query{pairs: make([]Pair, 0, len(all))}
	for _, p := range all {
		q.pairs = append(q.pairs, p.Pair)
	}
	return q
}
