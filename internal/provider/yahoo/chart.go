package yahoo

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net"
    "net/http"
    "net/url"

    "stocktracker/internal/provider"
)

// chartResponse mirrors the v8/finance/chart payload. Close and volume
// series use pointers because Yahoo emits explicit nulls for gaps.
type chartResponse struct {
    Chart struct {
        Result []chartResult `json:"result"`
        Error  *chartError   `json:"error"`
    } `json:"chart"`
}

type chartResult struct {
    Meta struct {
        Symbol              string  `json:"symbol"`
        ShortName           string  `json:"shortName"`
        Currency            string  `json:"currency"`
        RegularMarketPrice  float64 `json:"regularMarketPrice"`
        RegularMarketVolume int64   `json:"regularMarketVolume"`
        ChartPreviousClose  float64 `json:"chartPreviousClose"`
        PreviousClose       float64 `json:"previousClose"`
    } `json:"meta"`
    Timestamp  []int64 `json:"timestamp"`
    Indicators struct {
        Quote []struct {
            Close  []*float64 `json:"close"`
            Volume []*int64   `json:"volume"`
        } `json:"quote"`
    } `json:"indicators"`
}

type chartError struct {
    Code        string `json:"code"`
    Description string `json:"description"`
}

// getChart retrieves the chart for one symbol. rng and interval follow the
// API's own vocabulary ("2d", "1d", ...).
func (c *Client) getChart(ctx context.Context, symbol, rng, interval string) (*chartResult, error) {
    query := url.Values{}
    query.Set("range", rng)
    query.Set("interval", interval)

    u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
    if err != nil {
        return nil, fmt.Errorf("creating request: %w", err)
    }
    req.Header = c.header.Clone()

    res, err := c.httpClient.Do(req)
    if err != nil {
        return nil, provider.NewError(classifyTransport(err), symbol, err)
    }
    defer res.Body.Close()

    switch res.StatusCode {
    case http.StatusOK, http.StatusNotFound:
        // 404 still carries a chart.error body worth reading.

    case http.StatusTooManyRequests:
        return nil, provider.NewError(provider.KindRateLimited, symbol, fmt.Errorf("status %d", res.StatusCode))

    default:
        return nil, provider.NewError(provider.KindNetworkUnavailable, symbol, fmt.Errorf("unexpected status code: %d", res.StatusCode))
    }

    var body chartResponse
    if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
        if res.StatusCode == http.StatusNotFound {
            return nil, provider.NewError(provider.KindSymbolNotFound, symbol, fmt.Errorf("status %d", res.StatusCode))
        }
        return nil, provider.NewError(provider.KindMalformedData, symbol, fmt.Errorf("decoding chart response: %w", err))
    }

    if body.Chart.Error != nil {
        return nil, provider.NewError(provider.KindSymbolNotFound, symbol,
            fmt.Errorf("%s: %s", body.Chart.Error.Code, body.Chart.Error.Description))
    }
    if len(body.Chart.Result) == 0 {
        return nil, provider.NewError(provider.KindSymbolNotFound, symbol, errors.New("empty chart result"))
    }
    return &body.Chart.Result[0], nil
}

func classifyTransport(err error) provider.ErrorKind {
    if errors.Is(err, context.DeadlineExceeded) {
        return provider.KindFetchTimeout
    }
    var ne net.Error
    if errors.As(err, &ne) && ne.Timeout() {
        return provider.KindFetchTimeout
    }
    return provider.KindNetworkUnavailable
}
