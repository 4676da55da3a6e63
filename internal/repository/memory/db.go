// Package memory holds single-process stores used for STORAGE_DRIVER=memory
// and in tests.
package memory

import "sync"

// DB is the shared state behind the memory repositories. Sessions and marks
// live under one lock so a mark can check its session atomically.
type DB struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRow
	order    []string
	marks    map[string]map[int64]markRow
}

func NewDB() *DB {
	return &DB{
		sessions: make(map[string]*sessionRow),
		marks:    make(map[string]map[int64]markRow),
	}
}
