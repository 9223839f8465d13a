package events

import (
	"context"
	"fmt"
	"sort"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/usecase/format"
)

// Adapter resolves the payload of one event type.
type Adapter struct {
	Extract func(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error)
}

// Registry is built once at startup and is read-only afterwards.
type Registry struct {
	adapters map[entity.EventType]Adapter
}

// NewRegistry copies adapters. Every tag must have a message template.
func NewRegistry(adapters map[entity.EventType]Adapter) (*Registry, error) {
	m := make(map[entity.EventType]Adapter, len(adapters))
	for t, a := range adapters {
		if !format.Supports(t) {
			return nil, fmt.Errorf("register %q: %w", t, entity.ErrUnknownEventType)
		}
		if a.Extract == nil {
			return nil, fmt.Errorf("register %q: nil extractor", t)
		}
		m[t] = a
	}
	return &Registry{adapters: m}, nil
}

// DefaultRegistry registers every supported event type.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultAdapters())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the adapter for t.
func (r *Registry) Lookup(t entity.EventType) (Adapter, bool) {
	a, ok := r.adapters[t]
	return a, ok
}

// Types returns the registered tags sorted by name.
func (r *Registry) Types() []entity.EventType {
	out := make([]entity.EventType, 0, len(r.adapters))
	for t := range r.adapters {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
