package seqops

// Hamming returns the Hamming distance of two sequences as given (dist), with
// the first shifted one position to the left (distPlus1), and with the second
// shifted one position to the left (distMinus1).
//
// Positions past the end of the shorter sequence count as mismatches, so
// sequences needn't be the same length. The shifted distances let callers
// tolerate a single base register shift at repeat/spacer boundaries.
func Hamming(seq1, seq2 string) (dist, distPlus1, distMinus1 int) {
	r1, r2 := []rune(seq1), []rune(seq2)

	dist = mismatches(r1, r2)
	distPlus1 = mismatches(shift(r1), r2)
	distMinus1 = mismatches(r1, shift(r2))

	return dist, distPlus1, distMinus1
}

// shift drops the first symbol.
func shift(seq []rune) []rune {
	if len(seq) == 0 {
		return seq
	}
	return seq[1:]
}

// mismatches counts the positions that differ, including overhang.
func mismatches(seq1, seq2 []rune) (count int) {
	for i := 0; i < max(len(seq1), len(seq2)); i++ {
		if i >= len(seq1) || i >= len(seq2) || seq1[i] != seq2[i] {
			count++
		}
	}
	return count
}
