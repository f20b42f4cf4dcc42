package provider

import (
    "context"
    "time"
)

// Quote is one symbol's market data as returned by a provider.
// Derived fields (change, percent change, volume in millions) are computed
// by the snapshot builder, not here.
type Quote struct {
    Symbol        string    `json:"symbol"`
    CompanyName   string    `json:"company_name"`
    Price         float64   `json:"price"`
    PreviousClose float64   `json:"previous_close"`
    Volume        int64     `json:"volume"`
    FetchedAt     time.Time `json:"fetched_at"`
}

// Provider fetches a single symbol's quote from an external market-data
// source. Implementations perform exactly one outbound call per Fetch and
// keep no state between calls. Retry policy, if any, belongs to the caller.
type Provider interface {
    Name() string
    Fetch(ctx context.Context, symbol string) (Quote, error)
}
