package seqops

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestNeedleStrings(t *testing.T) {
	unit := Scoring{Match: 1, Mismatch: -1, Gap: -1}

	type args struct {
		seq1 string
		seq2 string
		s    Scoring
	}
	tests := []struct {
		name  string
		args  args
		want1 string
		want2 string
	}{
		{
			"both empty",
			args{"", "", DefaultScoring},
			"",
			"",
		},
		{
			"first empty",
			args{"", "ACGT", DefaultScoring},
			"----",
			"ACGT",
		},
		{
			"second empty",
			args{"ACGT", "", DefaultScoring},
			"ACGT",
			"----",
		},
		{
			"identical",
			args{"ACGT", "ACGT", DefaultScoring},
			"ACGT",
			"ACGT",
		},
		{
			"single deletion",
			args{"ACGT", "AGT", DefaultScoring},
			"ACGT",
			"A-GT",
		},
		{
			"single insertion",
			args{"AGT", "ACGT", DefaultScoring},
			"A-GT",
			"ACGT",
		},
		{
			"tie prefers the diagonal",
			args{"AA", "A", unit},
			"AA",
			"-A",
		},
		{
			"tie prefers left over up",
			args{"AB", "BA", unit},
			"-AB",
			"BA-",
		},
		{
			"case sensitive",
			args{"acgt", "ACGT", DefaultScoring},
			"acgt",
			"ACGT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got1, got2, err := NeedleStrings(tt.args.seq1, tt.args.seq2, tt.args.s)
			if err != nil {
				t.Fatalf("NeedleStrings() error = %v", err)
			}
			if got1 != tt.want1 || got2 != tt.want2 {
				t.Errorf("NeedleStrings() = (%q, %q), want (%q, %q)", got1, got2, tt.want1, tt.want2)
			}
		})
	}
}

func TestNeedle_tokens(t *testing.T) {
	seq1 := []string{"spacer1", "spacer2", "spacer3"}
	seq2 := []string{"spacer1", "spacer3"}

	got1, got2, err := Needle(seq1, seq2, "-", DefaultScoring)
	if err != nil {
		t.Fatal(err)
	}

	want1 := []string{"spacer1", "spacer2", "spacer3"}
	want2 := []string{"spacer1", "-", "spacer3"}
	if !reflect.DeepEqual(got1, want1) {
		t.Errorf("Needle() aligned1 = %v, want %v", got1, want1)
	}
	if !reflect.DeepEqual(got2, want2) {
		t.Errorf("Needle() aligned2 = %v, want %v", got2, want2)
	}
}

func TestNeedle_ints(t *testing.T) {
	got1, got2, err := Needle([]int{1, 2, 3, 4}, []int{1, 3, 4}, 0, Scoring{Match: 2.5, Mismatch: -0.5, Gap: -1.5})
	if err != nil {
		t.Fatal(err)
	}

	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(got1, want) {
		t.Errorf("Needle() aligned1 = %v, want %v", got1, want)
	}
	if want := []int{1, 0, 3, 4}; !reflect.DeepEqual(got2, want) {
		t.Errorf("Needle() aligned2 = %v, want %v", got2, want)
	}
}

func TestNeedle_invalidScoring(t *testing.T) {
	tests := []struct {
		name string
		s    Scoring
	}{
		{"NaN match", Scoring{Match: math.NaN(), Mismatch: -1, Gap: -2}},
		{"infinite mismatch", Scoring{Match: 1, Mismatch: math.Inf(-1), Gap: -2}},
		{"infinite gap", Scoring{Match: 1, Mismatch: -1, Gap: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a1, a2, err := NeedleStrings("ACGT", "ACGT", tt.s)
			if !errors.Is(err, ErrInvalidScoring) {
				t.Errorf("NeedleStrings() error = %v, want %v", err, ErrInvalidScoring)
			}
			if a1 != "" || a2 != "" {
				t.Errorf("NeedleStrings() = (%q, %q), want empty results on error", a1, a2)
			}
		})
	}
}

// GATTACA vs GCATGCU is the textbook example, its optimum under +1/-1/-1 is 0
func TestNeedleStrings_gattaca(t *testing.T) {
	s := Scoring{Match: 1, Mismatch: -1, Gap: -1}

	a1, a2, err := NeedleStrings("GATTACA", "GCATGCU", s)
	if err != nil {
		t.Fatal(err)
	}

	if len(a1) != len(a2) {
		t.Fatalf("aligned lengths differ: %q %q", a1, a2)
	}
	if ungapped := strings.ReplaceAll(a1, "-", ""); ungapped != "GATTACA" {
		t.Errorf("aligned1 without gaps = %q, want GATTACA", ungapped)
	}
	if ungapped := strings.ReplaceAll(a2, "-", ""); ungapped != "GCATGCU" {
		t.Errorf("aligned2 without gaps = %q, want GCATGCU", ungapped)
	}
	if got := ScoreStrings(a1, a2, s); got != 0 {
		t.Errorf("ScoreStrings(%q, %q) = %v, want 0", a1, a2, got)
	}
	if got := newScoreMatrix([]rune("GATTACA"), []rune("GCATGCU"), s).optimum(); got != 0 {
		t.Errorf("optimum() = %v, want 0", got)
	}
}

// check the alignment invariants over a spread of inputs and schemes
func TestNeedleStrings_properties(t *testing.T) {
	pairs := [][2]string{
		{"ACGT", "ACGT"},
		{"GTTTCAATCCACGCGCCCACGTGGGGCGCGAC", "GTTTCAATCCACGCGCCCACGTGGGGCGCGAC"},
		{"ATGCGATCGATCGTAGCTAGCTAGCTAGCTA", "ATGCGATCGTTCGTAGCTAGCAGCTAGCTAAA"},
		{"CTTGCTCGACGGGCAT", "ATTGCTCGACTGGGCATCC"},
		{"AAAAAAAA", "TTTT"},
		{"A", "TTTTTTTTTT"},
		{"GATTACA", "GCATGCU"},
		{"acgtACGT", "ACGTacgt"},
	}
	schemes := []Scoring{
		DefaultScoring,
		{Match: 1, Mismatch: -1, Gap: -1},
		{Match: 2, Mismatch: -3, Gap: -5},
		{Match: 0.5, Mismatch: -0.25, Gap: -0.75},
	}

	for _, s := range schemes {
		for _, p := range pairs {
			seq1, seq2 := p[0], p[1]

			a1, a2, err := NeedleStrings(seq1, seq2, s)
			if err != nil {
				t.Fatal(err)
			}

			if len(a1) != len(a2) {
				t.Errorf("%v %s/%s: aligned lengths %d != %d", s, seq1, seq2, len(a1), len(a2))
				continue
			}
			if got := strings.ReplaceAll(a1, "-", ""); got != seq1 {
				t.Errorf("%v %s/%s: aligned1 without gaps = %s", s, seq1, seq2, got)
			}
			if got := strings.ReplaceAll(a2, "-", ""); got != seq2 {
				t.Errorf("%v %s/%s: aligned2 without gaps = %s", s, seq1, seq2, got)
			}
			for k := range a1 {
				if a1[k] == '-' && a2[k] == '-' {
					t.Errorf("%v %s/%s: gap in both at column %d", s, seq1, seq2, k)
				}
			}

			optimum := newScoreMatrix([]rune(seq1), []rune(seq2), s).optimum()
			if got := ScoreStrings(a1, a2, s); got != optimum {
				t.Errorf("%v %s/%s: alignment scores %v, optimum is %v", s, seq1, seq2, got, optimum)
			}

			// swapping the inputs finds an alignment of the same length and score
			b2, b1, err := NeedleStrings(seq2, seq1, s)
			if err != nil {
				t.Fatal(err)
			}
			if ScoreStrings(b1, b2, s) != optimum {
				t.Errorf("%v %s/%s: swapped alignment isn't optimal", s, seq1, seq2)
			}
		}
	}
}

func TestScoringValidate(t *testing.T) {
	if err := DefaultScoring.Validate(); err != nil {
		t.Errorf("DefaultScoring.Validate() = %v", err)
	}

	err := Scoring{Match: 1, Mismatch: math.NaN(), Gap: -1}.Validate()
	if !errors.Is(err, ErrInvalidScoring) {
		t.Fatalf("Validate() = %v, want ErrInvalidScoring", err)
	}
	if !strings.Contains(err.Error(), "mismatch") {
		t.Errorf("Validate() = %v, want the parameter named", err)
	}
}
