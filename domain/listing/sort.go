package listing

import "strings"

type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortViewsDesc SortKey = "views-desc"
	SortLikesDesc SortKey = "likes-desc"
	SortDateAsc   SortKey = "date-asc"
	SortDateDesc  SortKey = "date-desc"
)

// ParseStoreSort maps a query string sort to the keys the store supports.
// Unknown keys sort newest first.
func ParseStoreSort(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price-asc":
		return SortPriceAsc
	case "price-desc":
		return SortPriceDesc
	case "views", "views-desc":
		return SortViewsDesc
	case "likes", "likes-desc":
		return SortLikesDesc
	case "date-asc", "oldest":
		return SortDateAsc
	}
	return SortDateDesc
}

// ParseViewSort maps a sort to the keys a local listing view supports.
// Unknown keys sort newest first.
func ParseViewSort(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortDateAsc:
		return SortDateAsc
	}
	return SortDateDesc
}
