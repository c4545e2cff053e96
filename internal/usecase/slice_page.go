package usecase

// SlicePage returns the page-th window of pageSize names (1-based).
// A window past the end is empty, never nil. Callers validate page >= 1 and
// pageSize >= 1; out-of-range input yields an empty window.
func SlicePage(names []string, page, pageSize int) []string {
	if page < 1 || pageSize < 1 || page-1 > len(names)/pageSize {
		return []string{}
	}

	start := (page - 1) * pageSize
	end := start + min(pageSize, len(names)-start)

	window := make([]string, end-start)
	copy(window, names[start:end])
	return window
}
