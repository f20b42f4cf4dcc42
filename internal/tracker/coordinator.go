package tracker

import (
    "context"
    "sync/atomic"
    "time"

    "golang.org/x/sync/singleflight"

    "stocktracker/internal/logger"
    "stocktracker/internal/snapshot"
)

// Builder builds the next snapshot from the tracked symbols and the
// previously committed one.
type Builder interface {
    Build(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error)
}

// Status is the non-blocking view of the coordinator's state.
type Status struct {
    HasData       bool       `json:"has_data"`
    Refreshing    bool       `json:"refreshing"`
    LastSuccessAt *time.Time `json:"last_success_at"`
    LastError     string     `json:"last_error,omitempty"`
    TotalTracked  int        `json:"total_tracked"`
}

// Coordinator is the single entry point for rebuilding the snapshot. All
// triggers (server ticker, client countdown, manual refresh) funnel into
// Refresh; a singleflight group guarantees at most one build in flight,
// with concurrent callers blocking on and sharing the in-flight result.
type Coordinator struct {
    builder    Builder
    cache      *Cache
    symbols    []string
    log        logger.Logger
    group      singleflight.Group
    refreshing atomic.Bool
}

func NewCoordinator(builder Builder, cache *Cache, symbols []string, log logger.Logger) *Coordinator {
    if log == nil {
        log = logger.Nop()
    }
    return &Coordinator{builder: builder, cache: cache, symbols: symbols, log: log}
}

// Refresh rebuilds the snapshot and commits it. On a wholesale build
// failure the error is recorded and the previously cached snapshot stays
// current. The build runs detached from the initiating caller's
// cancellation so one dropped client cannot abort a shared flight.
func (c *Coordinator) Refresh(ctx context.Context) (*snapshot.Snapshot, error) {
    v, err, _ := c.group.Do("refresh", func() (any, error) {
        c.refreshing.Store(true)
        defer c.refreshing.Store(false)

        prev := c.cache.Get().Snapshot
        snap, err := c.builder.Build(context.WithoutCancel(ctx), c.symbols, prev)
        if err != nil {
            c.cache.RecordFailure(err)
            c.log.Errorf("refresh failed: %v", err)
            return nil, err
        }
        c.cache.Commit(snap)
        return snap, nil
    })
    if err != nil {
        return nil, err
    }
    return v.(*snapshot.Snapshot), nil
}

// Current returns the cache state without touching the provider.
func (c *Coordinator) Current() Entry {
    return c.cache.Get()
}

// Status never blocks and never triggers a refresh.
func (c *Coordinator) Status() Status {
    entry := c.cache.Get()
    st := Status{
        HasData:      entry.Snapshot != nil,
        Refreshing:   c.refreshing.Load(),
        TotalTracked: len(c.symbols),
    }
    if !entry.LastSuccessAt.IsZero() {
        t := entry.LastSuccessAt
        st.LastSuccessAt = &t
    }
    if entry.LastError != nil {
        st.LastError = entry.LastError.Error()
    }
    return st
}
