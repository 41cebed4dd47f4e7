package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crisprtk/cctk/internal/seqops"
	"github.com/spf13/cobra"
)

// revcompCmd is for reverse complementing nucleotide sequences.
var revcompCmd = &cobra.Command{
	Use:                        "revcomp [seq] ... [seqN]",
	Short:                      "Reverse complement nucleotide sequences",
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Long: `Reverse complement each sequence, one per line. Case is kept and symbols
other than ACGT are reversed without being complemented.`,
	Example: "  cctk revcomp GTTTCAATCCACGCGCCCACG",
	Aliases: []string{"rc"},
	Run: func(cmd *cobra.Command, args []string) {
		for _, seq := range args {
			fmt.Fprintln(cmd.OutOrStdout(), seqops.RevComp(seq))
		}
	},
}

// hammingCmd is for comparing two sequences with single base shift tolerance.
var hammingCmd = &cobra.Command{
	Use:                        "hamming [seq1] [seq2]",
	Short:                      "Hamming distances of two sequences, as given and shifted by one base",
	Args:                       cobra.ExactArgs(2),
	SuggestionsMinimumDistance: 2,
	Long: `Print three tab separated Hamming distances: of the sequences as given, with
seq1 shifted one base to the left, and with seq2 shifted one base to the
left. Bases past the end of the shorter sequence count as mismatches.`,
	Example: "  cctk hamming GTTTCAATCC TGTTTCAATC",
	Run: func(cmd *cobra.Command, args []string) {
		dist, distPlus1, distMinus1 := seqops.Hamming(args[0], args[1])
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\t%d\n", dist, distPlus1, distMinus1)
	},
}

// indicesCmd is for finding every position of a token in a list.
var indicesCmd = &cobra.Command{
	Use:                        "indices [value] [token] ... [tokenN]",
	Short:                      "Find every 0-based index at which a value occurs in a list",
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  cctk indices sp1 sp1 sp2 sp1 sp3",
	Run: func(cmd *cobra.Command, args []string) {
		indices := seqops.FindIndices(args[1:], args[0])

		fields := make([]string, len(indices))
		for i, index := range indices {
			fields[i] = strconv.Itoa(index)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, " "))
	},
}

// set flags
func init() {
	RootCmd.AddCommand(revcompCmd)
	RootCmd.AddCommand(hammingCmd)
	RootCmd.AddCommand(indicesCmd)
}
