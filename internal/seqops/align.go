// Package seqops holds the sequence primitives shared by the cctk commands:
// global pairwise alignment, reverse complements, shift tolerant Hamming
// distances and index lookup.
package seqops

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// GapChar is the gap marker inserted into aligned strings.
const GapChar = '-'

// ErrInvalidScoring is returned when a scoring parameter isn't a finite number.
var ErrInvalidScoring = errors.New("invalid scoring")

// Scoring is a linear gap scoring scheme for Needleman-Wunsch alignment.
type Scoring struct {
	// Match is the score for aligning two identical symbols
	Match float64 `json:"match"`

	// Mismatch is the score for aligning two different symbols
	Mismatch float64 `json:"mismatch"`

	// Gap is the score for every gap position, there's no separate open/extend penalty
	Gap float64 `json:"gap"`
}

// DefaultScoring strongly rewards matches so spacers are aligned across their full length.
var DefaultScoring = Scoring{Match: 100, Mismatch: -1, Gap: -2}

// Validate returns an ErrInvalidScoring if any parameter is NaN or infinite.
func (s Scoring) Validate() error {
	params := []struct {
		name  string
		value float64
	}{
		{"match", s.Match},
		{"mismatch", s.Mismatch},
		{"gap", s.Gap},
	}

	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number, not %v", ErrInvalidScoring, p.name, p.value)
		}
	}

	return nil
}

// pair returns the score of aligning two symbols against one another.
func (s Scoring) pair(same bool) float64 {
	if same {
		return s.Match
	}
	return s.Mismatch
}

// scoreMatrix is the dynamic programming grid. It has a row per symbol in seq2
// and a column per symbol in seq1, plus the leading all-gap row and column.
type scoreMatrix [][]float64

// newScoreMatrix fills a grid for seq1 and seq2 where each cell holds the best
// score of aligning the first j symbols of seq1 against the first i of seq2.
func newScoreMatrix[T comparable](seq1, seq2 []T, s Scoring) scoreMatrix {
	grid := make(scoreMatrix, len(seq2)+1)
	for i := range grid {
		grid[i] = make([]float64, len(seq1)+1)
		grid[i][0] = s.Gap * float64(i)
	}
	for j := range grid[0] {
		grid[0][j] = s.Gap * float64(j)
	}

	for i := 1; i <= len(seq2); i++ {
		for j := 1; j <= len(seq1); j++ {
			grid[i][j] = max(
				grid[i-1][j-1]+s.pair(seq1[j-1] == seq2[i-1]),
				grid[i][j-1]+s.Gap,
				grid[i-1][j]+s.Gap,
			)
		}
	}

	return grid
}

// optimum is the score of the best global alignment.
func (g scoreMatrix) optimum() float64 {
	last := g[len(g)-1]
	return last[len(last)-1]
}

// backtrace walks the grid from the bottom right cell back to the origin.
//
// When more than one move explains a cell's score, the diagonal is taken first,
// then left (gap in seq2), then up (gap in seq1). Any of them is optimal; the
// order only pins which of the equally scoring alignments comes back.
func backtrace[T comparable](g scoreMatrix, seq1, seq2 []T, gap T, s Scoring) (aligned1, aligned2 []T) {
	i, j := len(seq2), len(seq1)
	aligned1 = make([]T, 0, i+j)
	aligned2 = make([]T, 0, i+j)

	for i > 0 && j > 0 {
		current := g[i][j]

		switch {
		case current == g[i-1][j-1]+s.pair(seq1[j-1] == seq2[i-1]):
			aligned1 = append(aligned1, seq1[j-1])
			aligned2 = append(aligned2, seq2[i-1])
			i--
			j--
		case current == g[i][j-1]+s.Gap:
			aligned1 = append(aligned1, seq1[j-1])
			aligned2 = append(aligned2, gap)
			j--
		default:
			aligned1 = append(aligned1, gap)
			aligned2 = append(aligned2, seq2[i-1])
			i--
		}
	}

	// one of the sequences is used up, pair the rest of the other with gaps
	for ; j > 0; j-- {
		aligned1 = append(aligned1, seq1[j-1])
		aligned2 = append(aligned2, gap)
	}
	for ; i > 0; i-- {
		aligned1 = append(aligned1, gap)
		aligned2 = append(aligned2, seq2[i-1])
	}

	// built from the end of the sequences, flip to read first-to-last
	slices.Reverse(aligned1)
	slices.Reverse(aligned2)

	return aligned1, aligned2
}

// Needle globally aligns two token sequences with the Needleman-Wunsch algorithm
// and returns them, equal in length, with gap inserted where needed.
//
// Tokens are compared with ==. Time and memory are O(len(seq1)*len(seq2)).
func Needle[T comparable](seq1, seq2 []T, gap T, s Scoring) (aligned1, aligned2 []T, err error) {
	if err = s.Validate(); err != nil {
		return nil, nil, err
	}

	grid := newScoreMatrix(seq1, seq2, s)
	aligned1, aligned2 = backtrace(grid, seq1, seq2, gap, s)

	return aligned1, aligned2, nil
}

// NeedleStrings is Needle for strings. Symbols are runes, compared case-sensitively,
// and gaps are marked with GapChar.
func NeedleStrings(seq1, seq2 string, s Scoring) (aligned1, aligned2 string, err error) {
	a1, a2, err := Needle([]rune(seq1), []rune(seq2), GapChar, s)
	if err != nil {
		return "", "", err
	}

	return string(a1), string(a2), nil
}

// Score sums the scheme's score over every column of an alignment. A column with
// gap on either side costs s.Gap. Columns past the end of the shorter sequence
// are ignored.
func Score[T comparable](aligned1, aligned2 []T, gap T, s Scoring) float64 {
	var total float64
	for k := 0; k < min(len(aligned1), len(aligned2)); k++ {
		if aligned1[k] == gap || aligned2[k] == gap {
			total += s.Gap
		} else {
			total += s.pair(aligned1[k] == aligned2[k])
		}
	}
	return total
}

// ScoreStrings is Score for aligned strings.
func ScoreStrings(aligned1, aligned2 string, s Scoring) float64 {
	return Score([]rune(aligned1), []rune(aligned2), GapChar, s)
}
