package engine

// ============================================================================
// FILTERS — Column-Value Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL column constraints per row in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// Matching is exact: the statistics feed spells its codes consistently and
// "Regions" must not match "regions".
// ============================================================================

// Filters maps a column name to its allowed values.
// OR within a column, AND across columns. Empty = all.
type Filters map[string][]string

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ApplyFilters returns a view of rows matching all column filters.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for col, allowed := range filters {
		if len(allowed) > 0 {
			sets[col] = toSet(allowed)
		}
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for col, set := range sets {
			if !set[view.Value(i, col)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
