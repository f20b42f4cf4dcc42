package web

import (
    "encoding/json"
    "net/http"
    "time"

    "stocktracker/internal/snapshot"
    "stocktracker/internal/tracker"
)

type indexData struct {
    Stocks          []snapshot.Quote
    Stats           snapshot.Stats
    HasData         bool
    LastUpdate      string
    LastError       string
    CurrentSort     string
    RefreshInterval int
    TotalStocks     int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
    if r.URL.Path != "/" {
        s.renderError(w, http.StatusNotFound, "Page not found")
        return
    }
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }

    sortBy := currentSort(r)
    entry := s.tracker.Current()

    data := indexData{
        CurrentSort:     sortBy,
        RefreshInterval: s.cfg.Refresh.IntervalSec,
    }
    if entry.Snapshot != nil {
        data.Stocks = sortQuotes(entry.Snapshot.Quotes, sortBy)
        data.Stats = entry.Snapshot.Stats
        data.HasData = true
        data.LastUpdate = entry.LastSuccessAt.Format("2006-01-02 15:04:05 MST")
        data.TotalStocks = len(data.Stocks)
    }
    if entry.LastError != nil {
        data.LastError = entry.LastError.Error()
    }

    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
        s.log.Errorf("render index: %v", err)
    }
}

type stocksResponse struct {
    Stocks          []snapshot.Quote `json:"stocks"`
    GeneratedAt     *time.Time       `json:"generated_at"`
    Stats           snapshot.Stats   `json:"stats"`
    RefreshInterval int              `json:"refresh_interval"`
    TotalStocks     int              `json:"total_stocks"`
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    entry := s.tracker.Current()
    resp := stocksResponse{
        Stocks:          []snapshot.Quote{},
        RefreshInterval: s.cfg.Refresh.IntervalSec,
    }
    if entry.Snapshot != nil {
        resp.Stocks = sortQuotes(entry.Snapshot.Quotes, currentSort(r))
        t := entry.Snapshot.GeneratedAt
        resp.GeneratedAt = &t
        resp.Stats = entry.Snapshot.Stats
        resp.TotalStocks = len(resp.Stocks)
    }
    writeJSON(w, http.StatusOK, resp)
}

type refreshResponse struct {
    Success bool               `json:"success"`
    Data    *snapshot.Snapshot `json:"data"`
    Error   string             `json:"error,omitempty"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    snap, err := s.tracker.Refresh(r.Context())
    if err != nil {
        writeJSON(w, http.StatusBadGateway, refreshResponse{Success: false, Error: err.Error()})
        return
    }
    writeJSON(w, http.StatusOK, refreshResponse{Success: true, Data: snap})
}

type statusResponse struct {
    tracker.Status
    State           string `json:"status"`
    RefreshInterval int    `json:"refresh_interval"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        return
    }
    writeJSON(w, http.StatusOK, statusResponse{
        Status:          s.tracker.Status(),
        State:           "running",
        RefreshInterval: s.cfg.Refresh.IntervalSec,
    })
}

func (s *Server) renderError(w http.ResponseWriter, code int, message string) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(code)
    if err := s.tmpl.ExecuteTemplate(w, "error.html", struct {
        Code    int
        Message string
    }{code, message}); err != nil {
        s.log.Errorf("render error page: %v", err)
    }
}

func currentSort(r *http.Request) string {
    switch v := r.URL.Query().Get("sort"); v {
    case sortByName, sortByPrice, sortByChange:
        return v
    default:
        return sortByName
    }
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}
