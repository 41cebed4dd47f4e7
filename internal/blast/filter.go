package blast

import (
	"cmp"
	"slices"
)

// cull removes hits whose extended range is entirely contained in another
// hit of the same spacer, on the same subject and strand.
//
// blastn can report more than one HSP for a spacer at a single locus, eg:
// either side of a mismatch cluster. Once extended to the spacer's full
// length they cover the same protospacer and only the best scoring one is kept.
//
// Order of the remaining hits is otherwise unchanged.
func cull(hits []Hit) []Hit {
	order := make([]int, len(hits))
	for i := range order {
		order[i] = i
	}

	// group by spacer, subject and strand, then by start index.
	// for hits with the same start, put the larger then the better scoring one first
	slices.SortStableFunc(order, func(i, j int) int {
		a, b := &hits[i], &hits[j]
		aLo, aHi := a.bounds()
		bLo, bHi := b.bounds()

		return cmp.Or(
			cmp.Compare(a.QueryID, b.QueryID),
			cmp.Compare(a.SubjectID, b.SubjectID),
			cmp.Compare(a.Strand, b.Strand),
			cmp.Compare(aLo, bLo),
			cmp.Compare(bHi, aHi),
			cmp.Compare(b.BitScore, a.BitScore),
		)
	})

	// only keep those that aren't encompassed by the last kept hit in their group
	keep := make([]bool, len(hits))
	last := -1
	for _, i := range order {
		h := &hits[i]
		if last >= 0 && sameLocus(&hits[last], h) {
			_, lastHi := hits[last].bounds()
			if _, hi := h.bounds(); hi <= lastHi {
				continue
			}
		}

		keep[i] = true
		last = i
	}

	culled := make([]Hit, 0, len(hits))
	for i, h := range hits {
		if keep[i] {
			culled = append(culled, h)
		}
	}
	return culled
}

// sameLocus is whether two hits are of the same spacer, on the same subject strand.
func sameLocus(a, b *Hit) bool {
	return a.QueryID == b.QueryID && a.SubjectID == b.SubjectID && a.Strand == b.Strand
}
