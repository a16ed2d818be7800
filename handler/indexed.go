package handler

import (
	"iter"
	"slices"

	"github.com/uniresource/uniresource/internal/util"
)

// Indexed is a factory that keeps its factories in buckets keyed by a case-insensitive name.
// A lookup consults only the factories of the matching bucket, in registration order.
//
// Indexed is immutable, use [IndexedBuilder] to assemble it.
type Indexed[H any] struct {
	names   []string
	buckets map[string][]Factory[H]
}

func (x *Indexed[H]) CreateHandler(name string) (H, bool) {
	if x != nil {
		for _, f := range x.buckets[util.LCase(name)] {
			if h, ok := f.CreateHandler(name); ok {
				return h, true
			}
		}
	}
	var zero H
	return zero, false
}

// Has reports whether there is at least one factory registered for the name.
func (x *Indexed[H]) Has(name string) bool {
	if x == nil {
		return false
	}
	return len(x.buckets[util.LCase(name)]) > 0
}

// Names iterates over the registered names in lower case, in the order they were first registered.
func (x *Indexed[H]) Names() iter.Seq[string] {
	if x == nil {
		return func(func(string) bool) {}
	}
	return slices.Values(x.names)
}

// ToBuilder returns a builder pre-populated with the factories of x.
func (x *Indexed[H]) ToBuilder() *IndexedBuilder[H] {
	b := NewIndexedBuilder[H]()
	if x == nil {
		return b
	}
	for _, n := range x.names {
		for _, f := range x.buckets[n] {
			b.Add(n, f)
		}
	}
	return b
}

// IndexedBuilder assembles an [Indexed] factory.
type IndexedBuilder[H any] struct {
	names   []string
	buckets map[string][]Factory[H]
}

// NewIndexedBuilder creates an empty builder.
func NewIndexedBuilder[H any]() *IndexedBuilder[H] {
	return &IndexedBuilder[H]{buckets: make(map[string][]Factory[H])}
}

// Add appends the factory to the bucket of the name.
// Nil factories are ignored.
func (b *IndexedBuilder[H]) Add(name string, f Factory[H]) *IndexedBuilder[H] {
	if f == nil {
		return b
	}
	key := util.LCase(name)
	if _, ok := b.buckets[key]; !ok {
		b.names = append(b.names, key)
	}
	b.buckets[key] = append(b.buckets[key], f)
	return b
}

// AddFunc appends a factory function to the bucket of the name.
func (b *IndexedBuilder[H]) AddFunc(name string, fn func(name string) (H, bool)) *IndexedBuilder[H] {
	if fn == nil {
		return b
	}
	return b.Add(name, FactoryFunc[H](fn))
}

// AddHandler appends a factory that answers the name with h.
func (b *IndexedBuilder[H]) AddHandler(name string, h H) *IndexedBuilder[H] {
	return b.Add(name, Value(name, h))
}

// Build returns the assembled factory.
// The builder can be reused afterwards, further changes do not affect the built factory.
func (b *IndexedBuilder[H]) Build() *Indexed[H] {
	x := &Indexed[H]{
		names:   slices.Clone(b.names),
		buckets: make(map[string][]Factory[H], len(b.buckets)),
	}
	for k, fs := range b.buckets {
		x.buckets[k] = slices.Clone(fs)
	}
	return x
}
