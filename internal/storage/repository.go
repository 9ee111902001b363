// Package storage contains the storage-agnostic Load contract and the factory
// that backends register with. Backends live in subpackages and register
// themselves in init; import storage/all to enable every built-in backend.
package storage

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"csvetl/pkg/records"
)

// Repository is a load destination. Replace makes the destination hold
// exactly the rows of t (any previous content under the same name is gone)
// and returns the number of rows written. A failed Replace leaves the
// previous content in place wherever the backend allows it.
type Repository interface {
	Replace(ctx context.Context, t *records.Table) (int64, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite" or "csv".
	Kind string
	// DSN is the backend-specific destination: a file path or connection URL.
	DSN string
	// Table names the destination table or collection. File sinks ignore it.
	Table string
	// Log receives batch progress lines; nil keeps backends quiet.
	Log *log.Logger
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind, replacing any previous
// registration.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository of cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds in sorted order.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
