package sequencemock

import (
	"context"
	"sync"

	domain "otsc-backend/internal/domain/sequence"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is an in-memory counter that satisfies sequence.Repository. Set
// NextFn to override behavior; otherwise each prefix counts up from 1.
type Repo struct {
	NextFn func(ctx context.Context, prefix string) (uint64, error)

	mu       sync.Mutex
	counters map[string]uint64
}

func (m *Repo) Next(ctx context.Context, prefix string) (uint64, error) {
	if m.NextFn != nil {
		return m.NextFn(ctx, prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]uint64)
	}
	m.counters[prefix]++
	return m.counters[prefix], nil
}
