package catalog

// Page is a "load more" view: a prefix of the filtered and sorted result.
type Page[T any] struct {
	Items   []T
	Total   int
	Visible int
	HasMore bool
}

// Paginate takes the first visible items. It never reorders or refetches.
func Paginate[T any](items []T, visible int) Page[T] {
	if visible < 0 {
		visible = 0
	}
	n := min(visible, len(items))
	return Page[T]{
		Items:   items[:n],
		Total:   len(items),
		Visible: n,
		HasMore: n < len(items),
	}
}

// NextVisible grows the visible count by one page.
func NextVisible(visible, pageSize int) int {
	if visible < 0 {
		visible = 0
	}
	return visible + pageSize
}
