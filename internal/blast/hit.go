package blast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// outfmt is the tabular format requested from blastn: the 12 standard
// columns plus the query and subject lengths.
const outfmt = "6 std qlen slen"

// columns are the names of the outfmt columns, in order.
var columns = []string{
	"qseqid", "sseqid", "pident", "length", "mismatch", "gapopen",
	"qstart", "qend", "sstart", "send", "evalue", "bitscore",
	"qlen", "slen",
}

// Strand is the subject strand a hit is on.
type Strand string

const (
	// Plus is the top strand, the hit reads left to right on the subject
	Plus Strand = "plus"

	// Minus is the bottom strand, the hit reads right to left on the subject
	Minus Strand = "minus"
)

// Hit is one line of blastn output. Coordinates are 1-based and inclusive,
// as BLAST reports them.
type Hit struct {
	// query (spacer) sequence id
	QueryID string `json:"qseqid"`

	// subject (eg: reference genome) sequence id
	SubjectID string `json:"sseqid"`

	// percentage of identical matches
	Identity float64 `json:"pident"`

	// alignment length
	Length int `json:"length"`

	// number of mismatches
	Mismatch int `json:"mismatch"`

	// number of gap openings
	GapOpen int `json:"gapopen"`

	// start and end of the alignment in the query
	QueryStart int `json:"qstart"`
	QueryEnd   int `json:"qend"`

	// start and end of the alignment in the subject. start > end on the minus strand
	SubjectStart int `json:"sstart"`
	SubjectEnd   int `json:"send"`

	// expect value, kept as blastn wrote it
	Evalue string `json:"evalue"`

	// bit score
	BitScore float64 `json:"bitscore"`

	// length of the query and subject sequences
	QueryLen   int `json:"qlen"`
	SubjectLen int `json:"slen"`

	// strand of the subject the hit is on
	Strand Strand `json:"strand"`

	// whether the hit stops short of either end of the query
	Truncated bool `json:"truncated"`

	// subject coordinates of the hit extended to the full query length
	ExtendedStart int `json:"sstart_mod"`
	ExtendedEnd   int `json:"send_mod"`
}

// ParseError is a malformed line in blastn output.
type ParseError struct {
	// 1-based line number
	Line int

	// name of the bad column, empty if the line was too short
	Column string

	Err error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %s: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseHits reads blastn tabular output into Hits. Blank lines and
// comment lines (outfmt 7) are skipped.
func parseHits(r io.Reader) (hits []Hit, err error) {
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")

		// comment lines start with a #
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		h, perr := parseHit(line)
		if perr != nil {
			perr.Line = lineNumber
			return nil, perr
		}

		hits = append(hits, h)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blastn output: %w", err)
	}

	return hits, nil
}

// parseHit turns one tab separated line into a Hit.
func parseHit(line string) (Hit, *ParseError) {
	cols := strings.Split(line, "\t")
	if len(cols) < len(columns) {
		return Hit{}, &ParseError{Err: fmt.Errorf("expected %d columns, found %d", len(columns), len(cols))}
	}

	var perr *ParseError
	atoi := func(i int) int {
		n, err := strconv.Atoi(strings.TrimSpace(cols[i]))
		if err != nil && perr == nil {
			perr = &ParseError{Column: columns[i], Err: err}
		}
		return n
	}
	atof := func(i int) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(cols[i]), 64)
		if err != nil && perr == nil {
			perr = &ParseError{Column: columns[i], Err: err}
		}
		return f
	}

	h := Hit{
		QueryID:      cols[0],
		SubjectID:    cols[1],
		Identity:     atof(2),
		Length:       atoi(3),
		Mismatch:     atoi(4),
		GapOpen:      atoi(5),
		QueryStart:   atoi(6),
		QueryEnd:     atoi(7),
		SubjectStart: atoi(8),
		SubjectEnd:   atoi(9),
		Evalue:       strings.TrimSpace(cols[10]),
		BitScore:     atof(11),
		QueryLen:     atoi(12),
		SubjectLen:   atoi(13),
	}
	if perr != nil {
		return Hit{}, perr
	}

	h.Strand = Plus
	if h.SubjectStart > h.SubjectEnd {
		h.Strand = Minus
	}
	h.Truncated = h.QueryStart != 1 || h.QueryEnd != h.QueryLen
	h.extend()

	return h, nil
}

// extend sets the subject coordinates that the hit would have if it spanned
// the whole query, clamped to the subject's ends.
func (h *Hit) extend() {
	head := h.QueryStart - 1        // unmatched query bases before the hit
	tail := h.QueryLen - h.QueryEnd // unmatched query bases after the hit

	if h.Strand == Plus {
		h.ExtendedStart = h.clamp(h.SubjectStart - head)
		h.ExtendedEnd = h.clamp(h.SubjectEnd + tail)
	} else {
		h.ExtendedStart = h.clamp(h.SubjectStart + head)
		h.ExtendedEnd = h.clamp(h.SubjectEnd - tail)
	}
}

// clamp keeps a subject coordinate within [1, slen].
func (h *Hit) clamp(pos int) int {
	pos = max(pos, 1)
	if h.SubjectLen > 0 {
		pos = min(pos, h.SubjectLen)
	}
	return pos
}

// bounds returns the extended hit as a low, high range on the plus strand.
func (h *Hit) bounds() (lo, hi int) {
	return min(h.ExtendedStart, h.ExtendedEnd), max(h.ExtendedStart, h.ExtendedEnd)
}
