package blast

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/crisprtk/cctk/config"
)

// blastExec is a small utility object for executing BLAST+ against one database.
type blastExec struct {
	// the path to the database we're BLASTing against
	db string

	// the input FASTA file of spacers
	in string

	// settings, including the paths to the BLAST+ executables
	conf *config.Config
}

// flags returns the blastn arguments.
// https://www.ncbi.nlm.nih.gov/books/NBK279684/
func (b *blastExec) flags() []string {
	flags := []string{
		"-query", b.in,
		"-db", b.db,
		"-task", b.conf.Blast.Task,
		"-outfmt", outfmt,
		"-num_threads", strconv.Itoa(b.conf.Blast.Threads),
		"-max_target_seqs", strconv.Itoa(b.conf.Blast.MaxTargetSeqs),
		"-evalue", b.conf.Blast.Evalue,
	}

	return append(flags, strings.Fields(b.conf.Blast.Options)...)
}

// run calls the external blastn binary on the spacers and parses its output.
//
// blastn writing anything to stderr is treated as a failure, same as a non-zero exit.
func (b *blastExec) run(ctx context.Context) ([]Hit, error) {
	blastCmd := exec.CommandContext(ctx, b.conf.Blastn, b.flags()...)

	var stdout, stderr bytes.Buffer
	blastCmd.Stdout = &stdout
	blastCmd.Stderr = &stderr

	if err := blastCmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to execute blastn against %s: %w: %s", b.db, err, stderr.String())
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("failed to execute blastn against %s: %s", b.db, stderr.String())
	}

	hits, err := parseHits(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse blastn output for %s: %w", b.db, err)
	}

	return hits, nil
}

// fetch queries the sequence of every window from the database with a
// single blastdbcmd call. Sequences are returned in the order of windows.
//
// The database must have been made with -parse_seqids for entries to be found.
func (b *blastExec) fetch(ctx context.Context, windows []window) ([]string, error) {
	// -entry_batch rather than -entry, each line carries its own range and strand
	entryFile, err := os.CreateTemp("", "cctk-blastdbcmd-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(entryFile.Name())

	batch := bufio.NewWriter(entryFile)
	for _, w := range windows {
		fmt.Fprintln(batch, w.batchLine())
	}
	if err := batch.Flush(); err != nil {
		entryFile.Close()
		return nil, fmt.Errorf("failed to write blastdbcmd entry file at %s: %w", entryFile.Name(), err)
	}
	if err := entryFile.Close(); err != nil {
		return nil, err
	}

	// a blastdbcmd command (for querying a DB, very different from blastn)
	queryCmd := exec.CommandContext(
		ctx,
		b.conf.Blastdbcmd,
		"-db", b.db,
		"-dbtype", "nucl",
		"-entry_batch", entryFile.Name(),
		"-outfmt", "%s", // sequence only, one line per entry
	)

	var stdout, stderr bytes.Buffer
	queryCmd.Stdout = &stdout
	queryCmd.Stderr = &stderr

	if err := queryCmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to query %d regions from %s: %w: %s", len(windows), b.db, err, stderr.String())
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("failed to query %d regions from %s: %s", len(windows), b.db, stderr.String())
	}

	seqs := parseSequences(stdout.String())
	if len(seqs) != len(windows) {
		return nil, fmt.Errorf("queried %d regions from %s but blastdbcmd returned %d", len(windows), b.db, len(seqs))
	}

	return seqs, nil
}

// parseSequences returns the non-empty, non-header lines of blastdbcmd output.
func parseSequences(output string) (seqs []string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		seqs = append(seqs, line)
	}
	return seqs
}
