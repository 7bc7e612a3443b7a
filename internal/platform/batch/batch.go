// Package batch holds slice helpers shared by the orchestrators and the
// repositories.
package batch

// DedupeLast collapses items that share a key. The surviving item keeps the
// position of the first occurrence and the value of the last one. Items for
// which key reports false are dropped.
func DedupeLast[T any, K comparable](items []T, key func(T) (K, bool)) []T {
	if len(items) == 0 {
		return nil
	}

	index := make(map[K]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		if pos, seen := index[k]; seen {
			out[pos] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

// Range is a half-open [Start, End) window over a slice.
type Range struct {
	Start int
	End   int
}

func (r Range) Size() int {
	return r.End - r.Start
}

// Partition splits n items into ceil(n/size) contiguous ranges.
func Partition(n, size int) []Range {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}

	out := make([]Range, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out
}
