package suggest

import (
	"sort"

	"github.com/optiverse/opticore/internal/types"
)

// rank sorts candidates by confidence descending and applies the primary
// promotion rule: the best candidate whose category is primary and whose
// confidence clears the threshold becomes the promoted action and leaves
// the general list. Category gates promotion; raw confidence alone never
// promotes a candidate.
//
// The incoming slice is ordered by source priority, and sort.SliceStable
// preserves that order on equal confidence (first registered wins ties).
func rank(candidates []types.ActionSuggestion, threshold float64) ([]types.ActionSuggestion, *types.ActionSuggestion) {
	ranked := make([]types.ActionSuggestion, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	for i, c := range ranked {
		if c.Category == types.CategoryPrimary && c.Confidence > threshold {
			promoted := c
			ranked = append(ranked[:i], ranked[i+1:]...)
			return ranked, &promoted
		}
	}
	return ranked, nil
}
