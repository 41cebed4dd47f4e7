// Package blast finds spacer matches (protospacers) in BLAST databases.
//
// Spacers are searched for with blastn. Hits that blastn cut short because of
// mismatches near a spacer's ends are extended to the spacer's full length,
// the protospacer and its flanks (for PAM analysis) are fetched with
// blastdbcmd, and each protospacer is aligned back to its spacer to report
// mismatches.
package blast

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/crisprtk/cctk/config"
	"github.com/crisprtk/cctk/internal/seqops"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Record is a blastn hit of a spacer with its extended protospacer.
type Record struct {
	Hit

	// the database the hit was found in
	Database string `json:"database"`

	// bases before the protospacer, on the spacer's strand
	Upstream string `json:"upstream"`

	// the subject sequence matched by the full length spacer
	Protospacer string `json:"protospacer"`

	// bases after the protospacer, on the spacer's strand
	Downstream string `json:"downstream"`

	// global alignment of the spacer and protospacer
	AlignedSpacer      string `json:"aligned_spacer"`
	AlignedProtospacer string `json:"aligned_protospacer"`

	// mismatching and gapped columns in the alignment, and their 0-based positions
	Mismatches        int   `json:"mismatches"`
	Gaps              int   `json:"gaps"`
	MismatchPositions []int `json:"mismatch_positions"`
	GapPositions      []int `json:"gap_positions"`

	// Hamming distance of spacer and protospacer: unshifted, spacer shifted
	// one base left, protospacer shifted one base left
	Hamming [3]int `json:"hamming"`
}

// compare aligns the spacer to the protospacer and counts the differences.
func (r *Record) compare(spacer string, s seqops.Scoring) error {
	aligned1, aligned2, err := seqops.NeedleStrings(spacer, r.Protospacer, s)
	if err != nil {
		return err
	}
	r.AlignedSpacer, r.AlignedProtospacer = aligned1, aligned2

	a1, a2 := []rune(aligned1), []rune(aligned2)
	gapped := make([]bool, len(a1))
	mismatched := make([]bool, len(a1))
	for k := range a1 {
		switch {
		case a1[k] == seqops.GapChar || a2[k] == seqops.GapChar:
			gapped[k] = true
		case a1[k] != a2[k]:
			mismatched[k] = true
		}
	}

	r.GapPositions = seqops.FindIndices(gapped, true)
	r.MismatchPositions = seqops.FindIndices(mismatched, true)
	r.Gaps, r.Mismatches = len(r.GapPositions), len(r.MismatchPositions)

	dist, distPlus1, distMinus1 := seqops.Hamming(spacer, r.Protospacer)
	r.Hamming = [3]int{dist, distPlus1, distMinus1}

	return nil
}

// SpacersCmd is run by `cctk blast`: it finds the spacers in each database
// and writes the extended hits to the output file.
func SpacersCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)

	start := time.Now()
	records, err := Spacers(cmd.Context(), flags, conf)
	if err != nil {
		stderr.Fatal(err)
	}

	if err := write(flags, records, time.Since(start).Seconds()); err != nil {
		stderr.Fatal(err)
	}

	if conf.Verbose {
		if err := summarize(os.Stderr, records); err != nil {
			stderr.Fatal(err)
		}
		stderr.Printf("wrote %d hits to %s in %.2fs", len(records), flags.out, time.Since(start).Seconds())
	}
}

// Spacers BLASTs the spacers against every database, concurrently, and returns
// the records for their hits. Records are grouped by database in flag order.
func Spacers(ctx context.Context, flags *Flags, conf *config.Config) ([]Record, error) {
	if err := conf.Align.Scoring().Validate(); err != nil {
		return nil, err
	}

	spacers, err := readSpacers(flags.in)
	if err != nil {
		return nil, err
	}

	results := make([][]Record, len(flags.dbs))
	g, ctx := errgroup.WithContext(ctx)
	for i, db := range flags.dbs {
		b := &blastExec{db: db, in: flags.in, conf: conf}

		g.Go(func() error {
			records, err := b.search(ctx, spacers)
			if err != nil {
				return err
			}

			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []Record
	for _, r := range results {
		records = append(records, r...)
	}

	return records, nil
}

// search runs blastn against the database, then fetches and compares the
// extended protospacer of each hit.
func (b *blastExec) search(ctx context.Context, spacers map[string]string) ([]Record, error) {
	hits, err := b.run(ctx)
	if err != nil {
		return nil, err
	}
	hits = cull(hits)
	if b.conf.Verbose {
		stderr.Printf("%d hits in %s", len(hits), b.db)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	windows := make([]window, len(hits))
	for i := range hits {
		windows[i] = newWindow(&hits[i], b.conf.Flank)
	}

	seqs, err := b.fetch(ctx, windows)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(hits))
	for i, h := range hits {
		spacer, ok := lookupSpacer(spacers, h.QueryID)
		if !ok {
			return nil, fmt.Errorf("failed to find spacer %s from %s in %s", h.QueryID, b.db, b.in)
		}

		r := Record{Hit: h, Database: b.db}
		if r.Upstream, r.Protospacer, r.Downstream, err = windows[i].split(seqs[i]); err != nil {
			return nil, err
		}
		if err = r.compare(spacer, b.conf.Align.Scoring()); err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	return records, nil
}

// lookupSpacer finds a spacer by the query id blastn reported, which has
// a "lcl|" prefix for some local ids.
func lookupSpacer(spacers map[string]string, queryID string) (string, bool) {
	if spacer, ok := spacers[queryID]; ok {
		return spacer, true
	}
	spacer, ok := spacers[strings.TrimPrefix(queryID, "lcl|")]
	return spacer, ok
}
