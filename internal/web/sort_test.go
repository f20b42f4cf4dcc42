package web

import (
	"testing"

	"stocktracker/internal/snapshot"
)

func TestSortQuotes(t *testing.T) {
	quotes := []snapshot.Quote{
		{Symbol: "MSFT", CompanyName: "Microsoft", Price: 425.10, ChangePercent: -0.25},
		{Symbol: "AAPL", CompanyName: "Apple", Price: 178.45, ChangePercent: 1.33},
		{Symbol: "GOOGL", CompanyName: "Alphabet", Price: 171.20, ChangePercent: 0.47},
	}

	cases := []struct {
		sortBy string
		want   []string
	}{
		{sortByName, []string{"GOOGL", "AAPL", "MSFT"}},
		{sortByPrice, []string{"MSFT", "AAPL", "GOOGL"}},
		{sortByChange, []string{"AAPL", "GOOGL", "MSFT"}},
	}
	for _, tc := range cases {
		t.Run(tc.sortBy, func(t *testing.T) {
			got := sortQuotes(quotes, tc.sortBy)
			for i, sym := range tc.want {
				if got[i].Symbol != sym {
					t.Errorf("sorted[%d] = %s, want %s", i, got[i].Symbol, sym)
				}
			}
		})
	}

	// input slice stays untouched
	if quotes[0].Symbol != "MSFT" {
		t.Errorf("sortQuotes mutated its input")
	}
}
