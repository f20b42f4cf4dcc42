package yahoo

import (
    "context"
    "errors"
    "math"
    "time"

    "stocktracker/internal/provider"
)

type Config struct {
    Name string // display name, default: YahooFinance
    // CompanyNames overrides the display name per ticker; the chart meta
    // shortName is the fallback.
    CompanyNames map[string]string
}

// Source adapts the chart API client to the provider contract.
type Source struct {
    cfg    Config
    client *Client
}

func New(cfg Config, client *Client) *Source {
    if cfg.Name == "" {
        cfg.Name = "YahooFinance"
    }
    return &Source{cfg: cfg, client: client}
}

func (s *Source) Name() string { return s.cfg.Name }

// Fetch requests two days of daily candles so the previous close can be
// taken from actual history, falling back to the chart meta when only one
// session is available.
func (s *Source) Fetch(ctx context.Context, symbol string) (provider.Quote, error) {
    res, err := s.client.getChart(ctx, symbol, "2d", "1d")
    if err != nil {
        return provider.Quote{}, err
    }

    closes, volumes := series(res)

    price := res.Meta.RegularMarketPrice
    if len(closes) > 0 {
        price = closes[len(closes)-1]
    }
    previousClose := res.Meta.ChartPreviousClose
    if previousClose == 0 {
        previousClose = res.Meta.PreviousClose
    }
    if len(closes) >= 2 {
        previousClose = closes[len(closes)-2]
    }
    volume := res.Meta.RegularMarketVolume
    if len(volumes) > 0 {
        volume = volumes[len(volumes)-1]
    }

    if !isFinite(price) || !isFinite(previousClose) || price <= 0 {
        return provider.Quote{}, provider.NewError(provider.KindMalformedData, symbol, errors.New("no usable price in chart data"))
    }
    if volume < 0 {
        volume = 0
    }

    name := s.cfg.CompanyNames[symbol]
    if name == "" {
        name = res.Meta.ShortName
    }
    if name == "" {
        name = symbol
    }

    return provider.Quote{
        Symbol:        symbol,
        CompanyName:   name,
        Price:         price,
        PreviousClose: previousClose,
        Volume:        volume,
        FetchedAt:     time.Now().UTC(),
    }, nil
}

// series flattens the first quote indicator, dropping null points.
func series(res *chartResult) (closes []float64, volumes []int64) {
    if len(res.Indicators.Quote) == 0 {
        return nil, nil
    }
    q := res.Indicators.Quote[0]
    for _, c := range q.Close {
        if c != nil {
            closes = append(closes, *c)
        }
    }
    for _, v := range q.Volume {
        if v != nil {
            volumes = append(volumes, *v)
        }
    }
    return closes, volumes
}

func isFinite(v float64) bool {
    return !math.IsNaN(v) && !math.IsInf(v, 0)
}
