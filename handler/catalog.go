package handler

import "sync"

// Discoverer finds the factories available at the time of the call.
type Discoverer[H any] interface {
	FindAll() []Factory[H]
}

// DiscovererFunc is an adapter to allow the use of ordinary functions as a [Discoverer].
type DiscovererFunc[H any] func() []Factory[H]

// FindAll calls f().
func (f DiscovererFunc[H]) FindAll() []Factory[H] {
	if f == nil {
		return nil
	}
	return f()
}

// Catalog collects capabilities contributed by independent parties.
// Every contributor registers a supplier, [Catalog.FindAll] calls the suppliers
// in registration order and collects their results.
//
// A Catalog of factories is a [Discoverer].
// The zero value is ready to use. Catalog is safe for concurrent use.
type Catalog[T any] struct {
	mu        sync.RWMutex
	suppliers []func() []T
}

// Register adds a supplier of a single capability.
func (c *Catalog[T]) Register(supplier func() T) {
	if supplier == nil {
		return
	}
	c.RegisterAll(func() []T { return []T{supplier()} })
}

// RegisterAll adds a supplier of many capabilities.
func (c *Catalog[T]) RegisterAll(supplier func() []T) {
	if supplier == nil {
		return
	}
	c.mu.Lock()
	c.suppliers = append(c.suppliers, supplier)
	c.mu.Unlock()
}

// FindAll returns the capabilities of all registered suppliers.
func (c *Catalog[T]) FindAll() []T {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	suppliers := c.suppliers
	c.mu.RUnlock()

	var all []T
	for _, s := range suppliers {
		all = append(all, s()...)
	}
	return all
}

// Len returns the number of registered suppliers.
func (c *Catalog[T]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.suppliers)
}
