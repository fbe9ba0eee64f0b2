package carousel

// Build returns the render sequence for items: the originals followed by
// l.RepeatCount() items taken cyclically from the start.
//
// The result never aliases items. An empty input is returned as is.
func Build[T any](items []T, l Layout) []T {
	n := len(items)
	if n == 0 {
		return items
	}

	repeat := l.RepeatCount()
	seq := make([]T, 0, n+repeat)
	seq = append(seq, items...)
	for k := 0; k < repeat; k++ {
		seq = append(seq, items[k%n])
	}
	return seq
}

// SourceIndex maps a position in a render sequence built from n items back to
// the index of the original item.
func SourceIndex(pos, n int) int {
	if n <= 0 {
		return 0
	}
	i := pos % n
	if i < 0 {
		i += n
	}
	return i
}
