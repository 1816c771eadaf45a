package importer

// chunks splits items into consecutive batches of at most size elements,
// preserving order. Batch size and concurrency stay explicit parameters of
// the refresh loop instead of inlined constants.
func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	var out [][]T
	for size < len(items) {
		out = append(out, items[:size:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
