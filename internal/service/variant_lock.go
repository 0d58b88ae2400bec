package service

import "sync"

// variantLocks hands out one mutex per variant id so that reservation
// admissions for the same physical unit serialize while admissions for
// different units proceed in parallel. Entries are never evicted; the
// fleet is small and a mutex is a few bytes.
type variantLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newVariantLocks() *variantLocks {
	return &variantLocks{locks: make(map[int]*sync.Mutex)}
}

func (l *variantLocks) forVariant(variantID int) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[variantID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[variantID] = m
	}
	return m
}
