package usecase

import (
	"slices"

	"stock_fetcher/internal/feature/prices/domain/entity"
)

// Merge combines a symbol's persisted bars with freshly fetched ones.
//
// The result holds exactly one bar per Date, ascending. When both inputs carry
// the same Date the fresh bar wins, since it is appended after the existing rows
// and the last one seen is kept. Neither input is modified.
func Merge(existing, fresh []entity.PriceBar) []entity.PriceBar {
	out := make([]entity.PriceBar, 0, len(existing)+len(fresh))
	pos := make(map[int64]int, len(existing)+len(fresh))

	for _, bars := range [][]entity.PriceBar{existing, fresh} {
		for _, b := range bars {
			key := b.Date.UnixNano()
			if i, ok := pos[key]; ok {
				out[i] = b
				continue
			}
			pos[key] = len(out)
			out = append(out, b)
		}
	}

	slices.SortStableFunc(out, func(a, b entity.PriceBar) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
