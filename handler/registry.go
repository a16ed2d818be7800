package handler

//go:generate go tool errtrace -w .

import (
	"iter"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/uniresource/uniresource/internal/syncutil"
	"github.com/uniresource/uniresource/log"
)

// RegistryOptions are the options of a [Registry].
type RegistryOptions struct {
	// Name identifies the registry in logs and metrics.
	Name string
	// Logger is the logger used by the registry.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
	// Metrics receives lookup and discovery observations.
	// If nil, nothing is recorded.
	Metrics *Metrics
}

func (o *RegistryOptions) name() string {
	if o == nil || o.Name == "" {
		return "default"
	}
	return o.Name
}

func (o *RegistryOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *RegistryOptions) metrics() *Metrics {
	if o == nil {
		return nil
	}
	return o.Metrics
}

// Registry is a [Factory] backed by a [Discoverer].
//
// The factories are discovered on the first lookup and chained in discovery order.
// Discovery runs at most once per generation, a new generation starts after [Registry.Reset].
// Handlers resolved within a generation are memoized by name, misses are not.
// Registry is safe for concurrent use.
type Registry[H any] struct {
	disc    Discoverer[H]
	name    string
	log     *slog.Logger
	metrics *Metrics

	mu   sync.Mutex
	gen  uint64
	snap atomic.Pointer[snapshot[H]]
}

type snapshot[H any] struct {
	gen       uint64
	factories []Factory[H]
	chain     *Chain[H]
	memo      syncutil.RWMap[string, resolved[H]]
}

type resolved[H any] struct {
	h  H
	ok bool
}

// NewRegistry creates a registry discovering factories with disc.
// Options are optional, nil is valid.
func NewRegistry[H any](disc Discoverer[H], opts *RegistryOptions) *Registry[H] {
	return &Registry[H]{
		disc:    disc,
		name:    opts.name(),
		log:     opts.log(),
		metrics: opts.metrics(),
	}
}

// CreateHandler resolves the handler for the name through the discovered factories.
func (r *Registry[H]) CreateHandler(name string) (H, bool) {
	s := r.load()
	res, ok := s.memo.Get(name)
	if !ok {
		h, hit := s.chain.CreateHandler(name)
		res = resolved[H]{h, hit}
		if hit {
			res, _ = s.memo.GetOrSet(name, res)
		}
	}
	r.metrics.observeLookup(r.name, name, res.ok)
	return res.h, res.ok
}

// All iterates over the factories of the current generation, discovering them if needed.
func (r *Registry[H]) All() iter.Seq[Factory[H]] {
	return slices.Values(r.load().factories)
}

// Generation returns the number of discoveries performed so far.
func (r *Registry[H]) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Reset drops the discovered factories and the memoized handlers.
// The next lookup runs the discovery again.
func (r *Registry[H]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Store(nil)
	r.log.Debug("handler registry reset", "registry", r.name, "generation", r.gen)
}

func (r *Registry[H]) load() *snapshot[H] {
	if s := r.snap.Load(); s != nil {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s := r.snap.Load(); s != nil {
		return s
	}

	var factories []Factory[H]
	if r.disc != nil {
		factories = r.disc.FindAll()
	}
	r.gen++
	s := &snapshot[H]{
		gen:       r.gen,
		factories: slices.Clone(factories),
		chain:     NewChain(factories...),
	}
	r.snap.Store(s)

	r.metrics.observeDiscovery(r.name, s.chain.Len())
	r.log.Debug("handler factories discovered",
		"registry", r.name,
		"generation", s.gen,
		"factories", s.chain.Len(),
	)
	return s
}
