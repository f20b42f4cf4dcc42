package tracker

import (
    "errors"
    "testing"
    "time"

    "stocktracker/internal/snapshot"
)

func testSnapshot(generatedAt time.Time) *snapshot.Snapshot {
    return &snapshot.Snapshot{
        Quotes: []snapshot.Quote{
            {Symbol: "AAPL", CompanyName: "Apple", Price: 178.45, Change: 2.35, IsPositive: true},
        },
        GeneratedAt: generatedAt,
        Stats:       snapshot.Stats{Up: 1, Total: 1},
    }
}

func TestCache_EmptyAtStart(t *testing.T) {
    c := &Cache{}
    entry := c.Get()
    if entry.Snapshot != nil || entry.LastError != nil || !entry.LastSuccessAt.IsZero() {
        t.Fatalf("fresh cache not empty: %+v", entry)
    }
}

func TestCache_CommitReplacesAndClearsError(t *testing.T) {
    c := &Cache{}
    c.RecordFailure(errors.New("boom"))

    at := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
    snap := testSnapshot(at)
    c.Commit(snap)

    entry := c.Get()
    if entry.Snapshot != snap {
        t.Fatalf("snapshot not committed: %+v", entry)
    }
    if !entry.LastSuccessAt.Equal(at) {
        t.Fatalf("last_success_at = %v, want %v", entry.LastSuccessAt, at)
    }
    if entry.LastError != nil {
        t.Fatalf("commit should clear error, got %v", entry.LastError)
    }
}

func TestCache_RecordFailureKeepsSnapshot(t *testing.T) {
    c := &Cache{}
    at := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
    snap := testSnapshot(at)
    c.Commit(snap)

    failure := errors.New("all symbols failed")
    c.RecordFailure(failure)

    entry := c.Get()
    if entry.Snapshot != snap {
        t.Fatalf("snapshot regressed after failure: %+v", entry)
    }
    if !entry.LastSuccessAt.Equal(at) {
        t.Fatalf("last_success_at changed: %v", entry.LastSuccessAt)
    }
    if entry.LastError == nil || entry.LastError.Error() != "all symbols failed" {
        t.Fatalf("error not recorded: %v", entry.LastError)
    }
}
