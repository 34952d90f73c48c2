package render

// DefaultPageSize matches the selection widget capacity of the hosting
// platform.
const DefaultPageSize = 25

// Page projects one page out of items: the visible slice plus the total page
// count. It is a pure function; selection state lives with the caller. An
// out-of-range index clamps to the nearest valid page, and an empty list
// still reports one (empty) page.
func Page[T any](items []T, pageSize, pageIndex int) ([]T, int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex > totalPages-1 {
		pageIndex = totalPages - 1
	}
	start := pageIndex * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
