package blast

import (
	"fmt"
	"strings"
)

// window is a subject range fetched with blastdbcmd: an extended hit
// plus the flanking bases on either side of it.
type window struct {
	// subject entry in the blastdb
	entry string

	// 1-based inclusive range on the plus strand
	lo, hi int

	// strand to fetch. blastdbcmd returns the reverse complement for minus
	strand Strand

	// number of flanking bases before and after the protospacer,
	// in the orientation of the fetched sequence
	upstream, downstream int
}

// newWindow returns the window for an extended hit with up to flank
// bases on each side. Flanks are cut short at the ends of the subject.
func newWindow(h *Hit, flank int) window {
	lo, hi := h.bounds()

	w := window{
		entry:  h.SubjectID,
		lo:     h.clamp(lo - flank),
		hi:     h.clamp(hi + flank),
		strand: h.Strand,
	}

	// on the minus strand the high end of the plus strand comes first
	if h.Strand == Plus {
		w.upstream, w.downstream = lo-w.lo, w.hi-hi
	} else {
		w.upstream, w.downstream = w.hi-hi, lo-w.lo
	}

	return w
}

// length is the number of bases blastdbcmd should return for the window.
func (w window) length() int {
	return w.hi - w.lo + 1
}

// batchLine is the window as a line in a blastdbcmd -entry_batch file:
// "entry lo-hi strand"
func (w window) batchLine() string {
	return fmt.Sprintf("%s %d-%d %s", w.entry, w.lo, w.hi, w.strand)
}

// split cuts a sequence fetched for the window into its upstream flank,
// protospacer and downstream flank, all in the spacer's orientation.
func (w window) split(seq string) (upstream, protospacer, downstream string, err error) {
	if len(seq) != w.length() {
		return "", "", "", fmt.Errorf(
			"expected %d bases from %s, blastdbcmd returned %d", w.length(), w.batchLine(), len(seq),
		)
	}

	seq = strings.ToUpper(seq)
	end := len(seq) - w.downstream

	return seq[:w.upstream], seq[w.upstream:end], seq[end:], nil
}
