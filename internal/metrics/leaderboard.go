package metrics

import "sort"

// rankedCount is one leaderboard row before it is mapped onto a
// concrete response type.
type rankedCount[K comparable] struct {
	Key   K
	Count int64
}

// rankByCount groups keys, counts occurrences, and sorts descending by
// count. Ties keep first-encountered order, so the result is
// reproducible for a fixed input ordering. A limit of zero or less
// means no truncation.
//
// Every leaderboard in the bundle goes through this one function so
// tie-breaking behaves identically across pages, browsers, referrers,
// and geography.
func rankByCount[K comparable](keys []K, limit int) []rankedCount[K] {
	counts := make(map[K]int64, len(keys))
	order := make([]K, 0, len(keys))
	for _, key := range keys {
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	ranked := make([]rankedCount[K], 0, len(order))
	for _, key := range order {
		ranked = append(ranked, rankedCount[K]{Key: key, Count: counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
