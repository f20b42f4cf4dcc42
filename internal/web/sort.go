package web

import (
    "sort"

    "stocktracker/internal/snapshot"
)

const (
    sortByName   = "name"
    sortByPrice  = "price"
    sortByChange = "change"
)

// sortQuotes returns a sorted copy for display; the canonical snapshot
// order is never mutated.
func sortQuotes(quotes []snapshot.Quote, by string) []snapshot.Quote {
    out := make([]snapshot.Quote, len(quotes))
    copy(out, quotes)
    switch by {
    case sortByName:
        sort.SliceStable(out, func(i, j int) bool { return out[i].CompanyName < out[j].CompanyName })
    case sortByPrice:
        sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
    case sortByChange:
        sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePercent > out[j].ChangePercent })
    }
    return out
}
