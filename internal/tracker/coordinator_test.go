package tracker

import (
    "context"
    "errors"
    "sync"
    "sync/atomic"
    "testing"
    "time"

    "stocktracker/internal/snapshot"
)

type builderFunc func(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error)

func (f builderFunc) Build(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error) {
    return f(ctx, symbols, prev)
}

func TestCoordinator_RefreshCommitsOnSuccess(t *testing.T) {
    snap := testSnapshot(time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC))
    b := builderFunc(func(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error) {
        if prev != nil {
            t.Fatalf("first refresh should see empty previous, got %+v", prev)
        }
        return snap, nil
    })
    c := NewCoordinator(b, &Cache{}, []string{"AAPL"}, nil)

    got, err := c.Refresh(context.Background())
    if err != nil {
        t.Fatalf("refresh: %v", err)
    }
    if got != snap {
        t.Fatalf("refresh returned %p, want %p", got, snap)
    }
    if entry := c.Current(); entry.Snapshot != snap {
        t.Fatalf("cache not committed: %+v", entry)
    }

    st := c.Status()
    if !st.HasData || st.Refreshing || st.LastError != "" || st.TotalTracked != 1 {
        t.Fatalf("status = %+v", st)
    }
}

func TestCoordinator_FailureKeepsPreviousSnapshot(t *testing.T) {
    snap := testSnapshot(time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC))
    var fail atomic.Bool
    b := builderFunc(func(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error) {
        if fail.Load() {
            return nil, errors.New("all symbols failed")
        }
        return snap, nil
    })
    c := NewCoordinator(b, &Cache{}, []string{"AAPL"}, nil)

    if _, err := c.Refresh(context.Background()); err != nil {
        t.Fatalf("first refresh: %v", err)
    }

    fail.Store(true)
    if _, err := c.Refresh(context.Background()); err == nil {
        t.Fatal("second refresh should fail")
    }

    entry := c.Current()
    if entry.Snapshot != snap {
        t.Fatalf("failed refresh must not clear the snapshot: %+v", entry)
    }
    if st := c.Status(); !st.HasData || st.LastError == "" {
        t.Fatalf("status = %+v", st)
    }
}

func TestCoordinator_AtMostOneConcurrentBuild(t *testing.T) {
    release := make(chan struct{})
    started := make(chan struct{})
    var builds atomic.Int32
    snap := testSnapshot(time.Now().UTC())

    b := builderFunc(func(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error) {
        builds.Add(1)
        close(started)
        <-release
        return snap, nil
    })
    c := NewCoordinator(b, &Cache{}, []string{"AAPL"}, nil)

    results := make([]*snapshot.Snapshot, 2)
    var wg sync.WaitGroup
    wg.Add(1)
    go func() {
        defer wg.Done()
        results[0], _ = c.Refresh(context.Background())
    }()

    <-started
    if st := c.Status(); !st.Refreshing {
        t.Fatalf("status should report in-flight refresh: %+v", st)
    }

    // Second caller joins the in-flight build instead of starting another.
    wg.Add(1)
    go func() {
        defer wg.Done()
        results[1], _ = c.Refresh(context.Background())
    }()

    time.Sleep(20 * time.Millisecond)
    close(release)
    wg.Wait()

    if n := builds.Load(); n != 1 {
        t.Fatalf("builder invoked %d times, want 1", n)
    }
    if results[0] != snap || results[1] != snap {
        t.Fatalf("callers should share the in-flight result: %p %p", results[0], results[1])
    }
}

func TestCoordinator_StatusNeverTriggersBuild(t *testing.T) {
    var builds atomic.Int32
    b := builderFunc(func(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error) {
        builds.Add(1)
        return testSnapshot(time.Now().UTC()), nil
    })
    c := NewCoordinator(b, &Cache{}, []string{"AAPL"}, nil)

    for i := 0; i < 5; i++ {
        _ = c.Status()
        _ = c.Current()
    }
    if n := builds.Load(); n != 0 {
        t.Fatalf("status triggered %d builds", n)
    }
}

func TestCoordinator_DetachedFromCallerCancellation(t *testing.T) {
    snap := testSnapshot(time.Now().UTC())
    b := builderFunc(func(ctx context.Context, symbols []string, prev *snapshot.Snapshot) (*snapshot.Snapshot, error) {
        select {
        case <-ctx.Done():
            return nil, ctx.Err()
        case <-time.After(20 * time.Millisecond):
            return snap, nil
        }
    })
    c := NewCoordinator(b, &Cache{}, []string{"AAPL"}, nil)

    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    got, err := c.Refresh(ctx)
    if err != nil {
        t.Fatalf("build should outlive the initiating caller: %v", err)
    }
    if got != snap {
        t.Fatalf("unexpected snapshot %p", got)
    }
}
