// Package listingview re-derives filter, search and sort results over listings
// that were already fetched, using the same semantics as the listing store.
// Nothing here is authoritative, results are for display only.
package listingview

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/p2pmarket/domain/listing"
)

const Uncategorized = "Uncategorized"

// Query combines the local view operations, zero values impose nothing
type Query struct {
	Sort   string
	Price  listing.PriceRange
	Search string
}

// Apply filters by price and search text, then sorts for display
func Apply(listings []*listing.Listing, q Query) []*listing.Listing {
	res := FilterByPrice(listings, q.Price)
	res = Search(res, q.Search)
	return Sort(res, q.Sort)
}

// Sort returns a new slice ordered by key, the input is left untouched.
// Equal keys keep their input order and unparseable prices count as zero.
func Sort(listings []*listing.Listing, key string) []*listing.Listing {
	res := make([]*listing.Listing, len(listings))
	copy(res, listings)

	switch listing.ParseViewSort(key) {
	case listing.SortPriceAsc:
		prices := priceIndex(res)
		sort.SliceStable(res, func(i, j int) bool {
			return prices[res[i]].LessThan(prices[res[j]])
		})
	case listing.SortPriceDesc:
		prices := priceIndex(res)
		sort.SliceStable(res, func(i, j int) bool {
			return prices[res[i]].GreaterThan(prices[res[j]])
		})
	case listing.SortDateAsc:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		})
	default:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		})
	}
	return res
}

func priceIndex(listings []*listing.Listing) map[*listing.Listing]decimal.Decimal {
	res := make(map[*listing.Listing]decimal.Decimal, len(listings))
	for _, l := range listings {
		d, err := decimal.NewFromString(strings.TrimSpace(l.Price))
		if err != nil {
			d = decimal.Zero
		}
		res[l] = d
	}
	return res
}

// FilterByPrice keeps listings whose price lies in r, bounds are inclusive
func FilterByPrice(listings []*listing.Listing, r listing.PriceRange) []*listing.Listing {
	res := make([]*listing.Listing, 0, len(listings))
	for _, l := range listings {
		if r.Contains(l.Price) {
			res = append(res, l)
		}
	}
	return res
}

// Search keeps listings whose title or description contains query, ignoring case.
// An empty query keeps everything.
func Search(listings []*listing.Listing, query string) []*listing.Listing {
	q := strings.ToLower(query)
	res := make([]*listing.Listing, 0, len(listings))
	for _, l := range listings {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Title), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			res = append(res, l)
		}
	}
	return res
}

// GroupByCategory partitions listings by category keeping input order in each group
func GroupByCategory(listings []*listing.Listing) map[string][]*listing.Listing {
	res := map[string][]*listing.Listing{}
	for _, l := range listings {
		category := string(l.Category)
		if category == "" {
			category = Uncategorized
		}
		res[category] = append(res[category], l)
	}
	return res
}

// GroupNames returns the categories present in groups, known categories first
// in their declared order, then anything else alphabetically.
func GroupNames(groups map[string][]*listing.Listing) []string {
	res := []string{}
	seen := map[string]bool{}
	for _, c := range listing.Categories {
		if _, ok := groups[string(c)]; ok {
			res = append(res, string(c))
			seen[string(c)] = true
		}
	}
	rest := []string{}
	for name := range groups {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(res, rest...)
}
