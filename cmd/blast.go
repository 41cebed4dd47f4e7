package cmd

import (
	"github.com/crisprtk/cctk/internal/blast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dbHelp = `path to BLAST db files (not including the file extensions). Comma separate
multiple dbs. Each must have been made with 'makeblastdb -parse_seqids'.`

	maxTargetSeqsHelp = `blastn -max_target_seqs. blastn stops looking after it finds an internal
limit of sequences per query that beat the evalue cutoff, not the best ones.
With few spacers and many expected hits it may need raising: if doubling it
finds no new hits, it's high enough.`

	optionsHelp = `other blastn options. Don't set -query -db -task -outfmt -num_threads
-max_target_seqs or -evalue here.`
)

// blastCmd is for finding spacer matches (protospacers) in BLAST databases.
var blastCmd = &cobra.Command{
	Use:                        "blast",
	Short:                      "Find spacer matches in BLAST databases and extend truncated hits",
	Run:                        blast.SpacersCmd,
	SuggestionsMinimumDistance: 2,
	Long: `BLAST spacers against one or more BLAST databases. Hits that blastn cut short
because of mismatches are extended to the spacer's full length and the
mismatches reported. Bases up and downstream of each protospacer are
reported for PAM analysis.

Writes JSON if the output file ends with .json, TSV otherwise.`,
	Example: "  cctk blast -d genomes/all -s spacers.fa -o protospacers.tsv -f 10",
	Aliases: []string{"search"},
}

// set flags
func init() {
	blastCmd.Flags().StringP("db", "d", "", dbHelp)
	blastCmd.Flags().StringP("spacers", "s", "", "FASTA file of spacers")
	blastCmd.Flags().StringP("out", "o", "", "output file name")
	blastCmd.Flags().StringP("evalue", "e", "10", "blastn evalue cutoff")
	blastCmd.Flags().IntP("max-target-seqs", "m", 10000, maxTargetSeqsHelp)
	blastCmd.Flags().IntP("threads", "t", 1, "number of threads for each blastn run")
	blastCmd.Flags().StringP("options", "x", "", optionsHelp)
	blastCmd.Flags().IntP("flank", "f", 10, "number of bases to report up and downstream of protospacers")

	viper.BindPFlag("blast.evalue", blastCmd.Flags().Lookup("evalue"))
	viper.BindPFlag("blast.max-target-seqs", blastCmd.Flags().Lookup("max-target-seqs"))
	viper.BindPFlag("blast.threads", blastCmd.Flags().Lookup("threads"))
	viper.BindPFlag("blast.options", blastCmd.Flags().Lookup("options"))
	viper.BindPFlag("flank", blastCmd.Flags().Lookup("flank"))

	RootCmd.AddCommand(blastCmd)
}
