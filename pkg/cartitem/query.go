package cartitem

import (
	"strings"
	"unicode/utf8"
)

// NoMaxPrice disables the price filter.
const NoMaxPrice = -1

// Query narrows a list of cart items. The zero value disables pagination but
// filters on a max price of 0; use NewQuery for the unfiltered defaults.
type Query struct {
	MaxPrice float64
	Prefix   *string
	PageSize int
	Page     int
}

// NewQuery returns a query that keeps every item.
func NewQuery() Query {
	return Query{MaxPrice: NoMaxPrice}
}

// Apply filters by price, then by case-insensitive product prefix, then
// slices out the requested page. The result is never nil.
func (q Query) Apply(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if q.MaxPrice >= 0 && it.Price > q.MaxPrice {
			continue
		}
		if q.Prefix != nil && !hasPrefixFold(it.Product, *q.Prefix) {
			continue
		}
		out = append(out, it)
	}

	if q.PageSize <= 0 {
		return out
	}
	if q.Page < 0 || q.Page > len(out)/q.PageSize {
		return []CartItem{}
	}
	start := q.Page * q.PageSize
	end := min(start+q.PageSize, len(out))
	return out[start:end]
}

// hasPrefixFold reports whether s begins with prefix under simple Unicode
// case folding, comparing rune by rune.
func hasPrefixFold(s, prefix string) bool {
	n := utf8.RuneCountInString(prefix)
	end := 0
	for i := 0; i < n; i++ {
		if end >= len(s) {
			return false
		}
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return strings.EqualFold(s[:end], prefix)
}
