package web

import (
    "context"
    "embed"
    "fmt"
    "html/template"
    "net/http"

    "stocktracker/internal/config"
    "stocktracker/internal/logger"
    "stocktracker/internal/snapshot"
    "stocktracker/internal/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Tracker is the coordinator surface the handlers consume.
type Tracker interface {
    Refresh(ctx context.Context) (*snapshot.Snapshot, error)
    Status() tracker.Status
    Current() tracker.Entry
}

// Server renders the dashboard and serves the JSON API on top of the
// tracker. It never talks to the provider directly.
type Server struct {
    cfg     config.Config
    tracker Tracker
    log     logger.Logger
    tmpl    *template.Template
}

func New(cfg config.Config, tr Tracker, log logger.Logger) (*Server, error) {
    if log == nil {
        log = logger.Nop()
    }
    funcs := template.FuncMap{
        "money": func(v float64) string {
            return fmt.Sprintf("$%.*f", cfg.Display.PricePrecision, v)
        },
        "signed": func(v float64) string {
            return fmt.Sprintf("%+.*f", cfg.Display.PricePrecision, v)
        },
        "pct": func(v float64) string {
            return fmt.Sprintf("%+.*f%%", cfg.Display.PricePrecision, v)
        },
        "millions": func(v float64) string {
            return fmt.Sprintf("%.*fM", cfg.Display.VolumePrecision, v)
        },
    }
    tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
    if err != nil {
        return nil, fmt.Errorf("parse templates: %w", err)
    }
    return &Server{cfg: cfg, tracker: tr, log: log, tmpl: tmpl}, nil
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/", s.handleIndex)
    mux.HandleFunc("/api/stocks", s.handleStocks)
    mux.HandleFunc("/api/refresh", s.handleRefresh)
    mux.HandleFunc("/api/status", s.handleStatus)
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.Handle("/static/", http.FileServer(http.FS(staticFS)))
    return withGzip(s.recoverPanic(mux))
}
