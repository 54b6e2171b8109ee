package orders

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortAmountHigh SortKey = "amount_high"
	SortAmountLow  SortKey = "amount_low"
)

// ParseSortKey falls back to newest-first for unknown values.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortAmountHigh:
		return SortAmountHigh
	case SortAmountLow:
		return SortAmountLow
	default:
		return SortNewest
	}
}

// Filters is pure client-side view state, never persisted.
type Filters struct {
	Status string // "", "all" or one of the Status values
	Search string // substring of order id/number or a product title
	Sort   SortKey
}

// ApplyFilters derives the displayed projection of orders. It is a pure
// function of its inputs: the source slice is never mutated and equal sort
// keys keep the source order (stable sort).
func ApplyFilters(src []Order, f Filters) []Order {
	out := make([]Order, 0, len(src))

	status := strings.ToLower(strings.TrimSpace(f.Status))
	query := strings.ToLower(strings.TrimSpace(f.Search))

	for _, o := range src {
		if status != "" && status != "all" && string(o.Status) != status {
			continue
		}
		if query != "" && !matchesSearch(o, query) {
			continue
		}
		out = append(out, o)
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortAmountHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount() > out[j].Amount()
		})
	case SortAmountLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount() < out[j].Amount()
		})
	default: // newest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

func matchesSearch(o Order, query string) bool {
	if strings.Contains(strings.ToLower(o.ID), query) {
		return true
	}
	if o.Number != "" && strings.Contains(strings.ToLower(o.Number), query) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.ProductTitle), query) {
			return true
		}
	}
	return false
}
