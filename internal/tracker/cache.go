package tracker

import (
    "sync"
    "time"

    "stocktracker/internal/snapshot"
)

// Entry is the cache's whole state: the latest committed snapshot, when it
// was committed, and the last refresh error if the most recent build
// failed. Snapshot is nil until the first successful refresh.
type Entry struct {
    Snapshot      *snapshot.Snapshot
    LastSuccessAt time.Time
    LastError     error
}

// Cache holds the most recent successfully built snapshot. It is written
// only by the Coordinator and read by any number of concurrent readers.
// Snapshots are immutable once committed, so Entry hands out the shared
// pointer rather than a deep copy.
type Cache struct {
    mu    sync.RWMutex
    entry Entry
}

// Get returns the current state. It never blocks on a refresh and never
// triggers one.
func (c *Cache) Get() Entry {
    c.mu.RLock()
    defer c.mu.RUnlock()
    return c.entry
}

// Commit replaces the stored snapshot wholesale and clears any prior
// error. Visible to all subsequent Get calls before Commit returns.
func (c *Cache) Commit(s *snapshot.Snapshot) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.entry = Entry{Snapshot: s, LastSuccessAt: s.GeneratedAt}
}

// RecordFailure sets only the error field; the previously committed
// snapshot, if any, stays visible.
func (c *Cache) RecordFailure(err error) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.entry.LastError = err
}
