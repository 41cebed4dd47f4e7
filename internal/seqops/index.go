package seqops

import "slices"

// FindIndices returns every index of seq holding value, in order. Each search
// resumes one past the previous match. The result is empty, not nil, when
// value isn't found.
//
// e.g. FindIndices([]string{"apple", "tomato", "apple", "banana"}, "apple") is [0 2]
func FindIndices[T comparable](seq []T, value T) []int {
	indices := []int{}

	for offset := 0; offset < len(seq); {
		i := slices.Index(seq[offset:], value)
		if i < 0 {
			break
		}

		indices = append(indices, offset+i)
		offset += i + 1
	}

	return indices
}
