package handler

import (
	"iter"
	"slices"

	"github.com/uniresource/uniresource/internal/util"
)

// Factory creates a handler for a name.
// It returns false when the name is not supported.
type Factory[H any] interface {
	CreateHandler(name string) (H, bool)
}

// FactoryFunc is an adapter to allow the use of ordinary functions as a [Factory].
type FactoryFunc[H any] func(name string) (H, bool)

// CreateHandler calls f(name).
func (f FactoryFunc[H]) CreateHandler(name string) (H, bool) {
	if f == nil {
		var zero H
		return zero, false
	}
	return f(name)
}

// Chain is an ordered list of factories.
// The first factory that returns a handler wins.
type Chain[H any] struct {
	factories []Factory[H]
}

// NewChain creates a chain of the given factories.
// Nil factories are skipped.
func NewChain[H any](factories ...Factory[H]) *Chain[H] {
	c := &Chain[H]{factories: make([]Factory[H], 0, len(factories))}
	for _, f := range factories {
		if f != nil {
			c.factories = append(c.factories, f)
		}
	}
	return c
}

func (c *Chain[H]) CreateHandler(name string) (H, bool) {
	if c != nil {
		for _, f := range c.factories {
			if h, ok := f.CreateHandler(name); ok {
				return h, true
			}
		}
	}
	var zero H
	return zero, false
}

// Len returns the number of factories in the chain.
func (c *Chain[H]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.factories)
}

// Factories iterates over the factories of the chain in order.
func (c *Chain[H]) Factories() iter.Seq[Factory[H]] {
	if c == nil {
		return func(func(Factory[H]) bool) {}
	}
	return slices.Values(c.factories)
}

// Named is a factory answering exactly one name.
// Names are matched case-insensitively.
type Named[H any] struct {
	Name     string
	Supplier func() H
}

// NewNamed creates a factory answering name with the handler produced by supplier.
func NewNamed[H any](name string, supplier func() H) Named[H] {
	return Named[H]{Name: name, Supplier: supplier}
}

// Value creates a factory answering name with the handler h.
func Value[H any](name string, h H) Named[H] {
	return Named[H]{Name: name, Supplier: func() H { return h }}
}

func (n Named[H]) CreateHandler(name string) (H, bool) {
	if n.Supplier == nil || !util.EqFold(n.Name, name) {
		var zero H
		return zero, false
	}
	return n.Supplier(), true
}
