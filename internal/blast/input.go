package blast

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/crisprtk/cctk/config"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains the parsed cobra flags of the blast command.
type Flags struct {
	// the FASTA file of spacers to search for
	in string

	// the name of the file to write the output to
	out string

	// a list of dbs to run BLAST against (their paths on the filesystem)
	dbs []string
}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(in, out string, dbs []string) *Flags {
	return &Flags{
		in:  in,
		out: out,
		dbs: dbs,
	}
}

// parseCmdFlags gathers the spacer path, out path and dbs from a cobra cmd object
// and returns them with a Config built from viper.
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	var err error
	fs := &Flags{}

	if fs.in, err = cmd.Flags().GetString("spacers"); fs.in == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no spacer file [-s]")
	}

	if fs.out, err = cmd.Flags().GetString("out"); fs.out == "" || err != nil {
		cmd.Help()
		stderr.Fatal("no output path [-o]")
	}

	dbString, err := cmd.Flags().GetString("db")
	if err != nil || dbString == "" {
		cmd.Help()
		stderr.Fatal("no BLAST database [-d]")
	}

	if fs.dbs, err = parseDBs(dbString); err != nil {
		stderr.Fatalf("failed to find any BLAST databases: %v", err)
	}

	c, err := config.New()
	if err != nil {
		stderr.Fatal(err)
	}

	return fs, c
}

// parseDBs turns a single string of comma separated BLAST dbs into a
// slice of absolute paths to the BLAST dbs on the local fs
func parseDBs(dbList string) (paths []string, err error) {
	noSpaceDBs := strings.Replace(dbList, " ", "", -1)
	for _, db := range strings.Split(noSpaceDBs, ",") {
		if db == "" {
			continue
		}

		absPath, err := filepath.Abs(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create absolute path: %v", err)
		}

		paths = append(paths, absPath)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no databases in %q", dbList)
	}

	return
}

// readSpacers parses a (multi) FASTA file of spacers to a map from id to
// upper-cased sequence.
func readSpacers(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spacer file: %w", err)
	}
	defer f.Close()

	spacers := make(map[string]string)
	scanner := seqio.NewScanner(fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAredundant)))
	for scanner.Next() {
		s := scanner.Seq().(*linear.Seq)

		id := s.Name()
		if _, seen := spacers[id]; seen {
			return nil, fmt.Errorf("failed to parse %s: duplicate spacer id %s", path, id)
		}

		spacers[id] = strings.ToUpper(string(alphabet.LettersToBytes(s.Seq)))
	}
	if err := scanner.Error(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// opened and parsed file but found nothing
	if len(spacers) < 1 {
		return nil, fmt.Errorf("failed to parse spacer(s) from %s", path)
	}

	return spacers, nil
}
