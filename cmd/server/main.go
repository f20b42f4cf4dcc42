package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "stocktracker/internal/config"
    "stocktracker/internal/httpx"
    "stocktracker/internal/logger"
    "stocktracker/internal/provider/yahoo"
    "stocktracker/internal/snapshot"
    "stocktracker/internal/tracker"
    "stocktracker/internal/web"
)

func main() {
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil {
        log.Fatalf("config: %v", err)
    }

    zlog, sync, err := logger.New(cfg.Log.Level)
    if err != nil {
        log.Fatalf("logger: %v", err)
    }
    defer sync()

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
    client := yahoo.NewClient(
        yahoo.WithHTTPClient(httpClient),
        yahoo.WithHeader(http.Header{
            "User-Agent": []string{"stock-tracker/1.0"},
        }),
    )
    source := yahoo.New(yahoo.Config{CompanyNames: cfg.CompanyNames()}, client)

    builder := snapshot.NewBuilder(source, snapshot.BuilderConfig{
        FetchTimeout:   time.Duration(cfg.Refresh.FetchTimeoutSec) * time.Second,
        MaxConcurrency: cfg.Refresh.MaxConcurrency,
    }, zlog)
    cache := &tracker.Cache{}
    coord := tracker.NewCoordinator(builder, cache, cfg.Tickers(), zlog)

    srv, err := web.New(cfg, coord, zlog)
    if err != nil {
        zlog.Fatalf("web: %v", err)
    }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    go refreshLoop(ctx, coord, time.Duration(cfg.Refresh.IntervalSec)*time.Second, zlog)

    httpServer := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           srv.Handler(),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        zlog.Infof("server listening on :%s, tracking %d symbols", cfg.Server.Port, len(cfg.Symbols))
        if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            zlog.Fatalf("server: %v", err)
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = httpServer.Shutdown(shutdownCtx)
}

// refreshLoop fetches once at startup and then on a fixed cadence. Failed
// cycles only log; the carry-forward policy in the builder keeps the last
// good data visible.
func refreshLoop(ctx context.Context, coord *tracker.Coordinator, interval time.Duration, zlog logger.Logger) {
    refreshOnce(ctx, coord, zlog)

    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            refreshOnce(ctx, coord, zlog)
        }
    }
}

func refreshOnce(ctx context.Context, coord *tracker.Coordinator, zlog logger.Logger) {
    defer func() {
        if rec := recover(); rec != nil {
            zlog.Errorf("refresh panic: %v", rec)
        }
    }()
    if _, err := coord.Refresh(ctx); err != nil {
        zlog.Errorf("background refresh: %v", err)
    }
}
