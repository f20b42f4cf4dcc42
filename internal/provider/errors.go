package provider

import (
    "errors"
    "fmt"
)

// ErrorKind classifies fetch failures so callers can act on the cause
// without string matching.
type ErrorKind string

const (
    KindNetworkUnavailable ErrorKind = "network_unavailable"
    KindSymbolNotFound     ErrorKind = "symbol_not_found"
    KindMalformedData      ErrorKind = "malformed_provider_data"
    KindRateLimited        ErrorKind = "rate_limited"
    KindFetchTimeout       ErrorKind = "fetch_timeout"
    KindAllSymbolsFailed   ErrorKind = "all_symbols_failed"
)

// Error is a classified provider failure. Symbol is empty for aggregate
// errors that span the whole symbol set.
type Error struct {
    Kind   ErrorKind
    Symbol string
    Err    error
}

func NewError(kind ErrorKind, symbol string, err error) *Error {
    return &Error{Kind: kind, Symbol: symbol, Err: err}
}

func (e *Error) Error() string {
    switch {
    case e.Symbol != "" && e.Err != nil:
        return fmt.Sprintf("%s: %s: %v", e.Symbol, e.Kind, e.Err)
    case e.Symbol != "":
        return fmt.Sprintf("%s: %s", e.Symbol, e.Kind)
    case e.Err != nil:
        return fmt.Sprintf("%s: %v", e.Kind, e.Err)
    default:
        return string(e.Kind)
    }
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the classification of err, or "" when err carries none.
func KindOf(err error) ErrorKind {
    var pe *Error
    if errors.As(err, &pe) {
        return pe.Kind
    }
    return ""
}
