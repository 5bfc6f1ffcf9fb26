package feeds

// Interleave spreads entries from different sources evenly so one
// prolific feed cannot dominate the ticker.
// Instead of: [A1, A2, A3, B1, B2, C1] (per-feed clusters)
// Produces:   [A1, B1, C1, A2, B2, A3] (round-robin by source)
//
// Source order is first-seen order within items. The result is capped
// at limit entries; limit <= 0 means no cap.
func Interleave(items []Item, limit int) []Item {
	if len(items) == 0 {
		return items
	}
	if limit <= 0 {
		limit = len(items)
	}

	// Group by source, preserving first-seen order
	bySource := make(map[string][]Item)
	var order []string
	for _, item := range items {
		if _, exists := bySource[item.SourceName]; !exists {
			order = append(order, item.SourceName)
		}
		bySource[item.SourceName] = append(bySource[item.SourceName], item)
	}

	result := make([]Item, 0, min(len(items), limit))
	idx := make(map[string]int, len(order))
	for len(result) < limit {
		added := false
		for _, source := range order {
			i := idx[source]
			if i < len(bySource[source]) {
				result = append(result, bySource[source][i])
				idx[source] = i + 1
				added = true
				if len(result) >= limit {
					break
				}
			}
		}
		if !added {
			break
		}
	}
	return result
}
