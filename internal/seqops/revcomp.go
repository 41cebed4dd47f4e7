package seqops

// revCompMap maps nucleotides to their complements. Case is kept.
var revCompMap = map[rune]rune{
	'A': 'T',
	'T': 'A',
	'C': 'G',
	'G': 'C',
	'a': 't',
	't': 'a',
	'c': 'g',
	'g': 'c',
}

// RevComp returns the reverse complement of a nucleotide sequence. Symbols
// other than ACGT/acgt (N, IUPAC codes, gaps) are reversed but not complemented.
func RevComp(seq string) string {
	runes := []rune(seq)
	revComp := make([]rune, len(runes))

	for i, r := range runes {
		if c, ok := revCompMap[r]; ok {
			r = c
		}
		revComp[len(runes)-1-i] = r
	}

	return string(revComp)
}
