package snapshot

import (
    "time"

    "stocktracker/internal/provider"
)

// Quote is one row of a snapshot: provider data plus the derived display
// fields. Stale marks a quote carried forward from an earlier snapshot
// after a failed fetch.
type Quote struct {
    Symbol         string    `json:"symbol"`
    CompanyName    string    `json:"company_name"`
    Price          float64   `json:"price"`
    PreviousClose  float64   `json:"previous_close"`
    Change         float64   `json:"change"`
    ChangePercent  float64   `json:"change_percent"`
    Volume         int64     `json:"volume"`
    VolumeMillions float64   `json:"volume_millions"`
    IsPositive     bool      `json:"is_positive"`
    IsNegative     bool      `json:"is_negative"`
    Stale          bool      `json:"stale"`
    FetchedAt      time.Time `json:"fetched_at"`
}

// Stats are aggregate counts over a snapshot's quote set.
type Stats struct {
    Up    int `json:"up"`
    Down  int `json:"down"`
    Total int `json:"total"`
}

// Snapshot is the atomic unit served to clients: at most one quote per
// tracked symbol, in configured symbol order. A snapshot is immutable once
// built; presentation sorting must operate on a copy.
type Snapshot struct {
    Quotes      []Quote   `json:"quotes"`
    GeneratedAt time.Time `json:"generated_at"`
    Stats       Stats     `json:"stats"`
}

// Quote returns the entry for symbol, if present.
func (s *Snapshot) Quote(symbol string) (Quote, bool) {
    if s == nil {
        return Quote{}, false
    }
    for _, q := range s.Quotes {
        if q.Symbol == symbol {
            return q, true
        }
    }
    return Quote{}, false
}

// fromProvider computes the derived fields for a freshly fetched quote.
// change_percent is defined as 0 when the previous close is 0 so the API
// never leaks NaN or Inf.
func fromProvider(pq provider.Quote) Quote {
    change := pq.Price - pq.PreviousClose
    changePercent := 0.0
    if pq.PreviousClose != 0 {
        changePercent = change / pq.PreviousClose * 100
    }
    return Quote{
        Symbol:         pq.Symbol,
        CompanyName:    pq.CompanyName,
        Price:          pq.Price,
        PreviousClose:  pq.PreviousClose,
        Change:         change,
        ChangePercent:  changePercent,
        Volume:         pq.Volume,
        VolumeMillions: float64(pq.Volume) / 1_000_000,
        IsPositive:     change > 0,
        IsNegative:     change < 0,
        FetchedAt:      pq.FetchedAt,
    }
}

func computeStats(quotes []Quote) Stats {
    st := Stats{Total: len(quotes)}
    for _, q := range quotes {
        switch {
        case q.IsPositive:
            st.Up++
        case q.IsNegative:
            st.Down++
        }
    }
    return st
}
