package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Opener builds a store. The returned close func may be nil.
type Opener func(ctx context.Context) (Store, func() error, error)

// Registry maps token store names (sqlite, redis, ...) to openers.
type Registry struct {
	mu      sync.RWMutex
	openers map[string]Opener
}

func NewRegistry() *Registry {
	return &Registry{openers: make(map[string]Opener)}
}

func (r *Registry) Register(name string, o Opener) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openers[name] = o
}

func (r *Registry) Open(ctx context.Context, name string) (Store, func() error, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	o, ok := r.openers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("unknown token store %q (have %s)", name, strings.Join(r.Names(), ", "))
	}

	s, closeFn, err := o(ctx)
	if err != nil {
		return nil, nil, err
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return s, closeFn, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.openers))
	for n := range r.openers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
