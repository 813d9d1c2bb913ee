package store

import (
	"path/filepath"
	"sync"
)

// pathLocks holds one mutex per absolute file path so that every store
// instance pointing at the same file serializes its reads and writes.
var pathLocks sync.Map

// lockPath acquires the lock of path and returns the release function.
func lockPath(path string) func() {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	v, _ := pathLocks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
