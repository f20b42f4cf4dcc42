package snapshot

import (
    "context"
    "errors"
    "time"

    "golang.org/x/sync/errgroup"

    "stocktracker/internal/logger"
    "stocktracker/internal/provider"
)

const (
    defaultFetchTimeout   = 10 * time.Second
    defaultMaxConcurrency = 5
)

// Builder assembles snapshots by fanning fetches out over the provider.
type Builder struct {
    source         provider.Provider
    fetchTimeout   time.Duration
    maxConcurrency int
    log            logger.Logger
}

type BuilderConfig struct {
    FetchTimeout   time.Duration // per-symbol bound, default 10s
    MaxConcurrency int           // concurrent fetches, default 5
}

func NewBuilder(source provider.Provider, cfg BuilderConfig, log logger.Logger) *Builder {
    if cfg.FetchTimeout <= 0 {
        cfg.FetchTimeout = defaultFetchTimeout
    }
    if cfg.MaxConcurrency <= 0 {
        cfg.MaxConcurrency = defaultMaxConcurrency
    }
    if log == nil {
        log = logger.Nop()
    }
    return &Builder{
        source:         source,
        fetchTimeout:   cfg.FetchTimeout,
        maxConcurrency: cfg.MaxConcurrency,
        log:            log,
    }
}

// Build fetches every symbol concurrently and assembles the next snapshot.
// Per-symbol failures fall back to prev's quote for that symbol, marked
// stale; symbols with no prior quote are omitted. Build fails only when the
// resulting quote set would be empty, with an aggregate error wrapping the
// per-symbol causes. Output order follows the symbols argument regardless
// of fetch completion order.
func (b *Builder) Build(ctx context.Context, symbols []string, prev *Snapshot) (*Snapshot, error) {
    type fetchResult struct {
        quote provider.Quote
        err   error
    }
    results := make([]fetchResult, len(symbols))

    g, gctx := errgroup.WithContext(ctx)
    g.SetLimit(b.maxConcurrency)
    for i, symbol := range symbols {
        i, symbol := i, symbol
        g.Go(func() error {
            fctx, cancel := context.WithTimeout(gctx, b.fetchTimeout)
            defer cancel()
            q, err := b.source.Fetch(fctx, symbol)
            results[i] = fetchResult{quote: q, err: classify(err, symbol)}
            // Failures stay per-symbol; returning them here would cancel
            // sibling fetches through the group context.
            return nil
        })
    }
    _ = g.Wait()

    quotes := make([]Quote, 0, len(symbols))
    var fresh int
    var failures []error
    for i, symbol := range symbols {
        res := results[i]
        if res.err == nil {
            quotes = append(quotes, fromProvider(res.quote))
            fresh++
            continue
        }
        failures = append(failures, res.err)
        if carried, ok := prev.Quote(symbol); ok {
            carried.Stale = true
            quotes = append(quotes, carried)
            b.log.Warnf("fetch %s failed (%v), carrying forward quote from %s", symbol, res.err, carried.FetchedAt.Format(time.RFC3339))
        } else {
            b.log.Warnf("fetch %s failed (%v), no prior quote to carry forward", symbol, res.err)
        }
    }

    if len(quotes) == 0 {
        return nil, provider.NewError(provider.KindAllSymbolsFailed, "", errors.Join(failures...))
    }

    snap := &Snapshot{
        Quotes:      quotes,
        GeneratedAt: time.Now().UTC(),
        Stats:       computeStats(quotes),
    }
    b.log.Infof("built snapshot: %d/%d fresh, %d up, %d down", fresh, len(symbols), snap.Stats.Up, snap.Stats.Down)
    return snap, nil
}

// classify tags bare context timeouts from providers that did not wrap
// their errors themselves.
func classify(err error, symbol string) error {
    if err == nil {
        return nil
    }
    if provider.KindOf(err) != "" {
        return err
    }
    if errors.Is(err, context.DeadlineExceeded) {
        return provider.NewError(provider.KindFetchTimeout, symbol, err)
    }
    return provider.NewError(provider.KindNetworkUnavailable, symbol, err)
}
