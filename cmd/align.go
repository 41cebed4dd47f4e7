package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/crisprtk/cctk/config"
	"github.com/crisprtk/cctk/internal/seqops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// alignCmd is for globally aligning two sequences.
var alignCmd = &cobra.Command{
	Use:                        "align [seq1] [seq2]",
	Short:                      "Globally align two sequences (Needleman-Wunsch)",
	Run:                        alignExec,
	Args:                       cobra.ExactArgs(2),
	SuggestionsMinimumDistance: 2,
	Long: `Align two sequences end to end with the Needleman-Wunsch algorithm and a
linear gap penalty. Prints the aligned sequences, with '-' for gaps, and
the alignment's score.

With --tokens each sequence is a comma separated list (eg: spacer ids in
an array) and the lists are aligned token by token.

When more than one alignment is optimal the one returned is fixed: at each
step back through the score matrix a match/mismatch is taken first, then a
gap in seq2, then a gap in seq1.`,
	Example: `  cctk align GATTACA GCATGCU --match 1 --mismatch -1 --gap -1
  cctk align --tokens sp1,sp2,sp3,sp4 sp1,sp3,sp4`,
}

// alignExec aligns the two arguments and writes the alignment to stdout.
func alignExec(cmd *cobra.Command, args []string) {
	conf, err := config.New()
	if err != nil {
		stderr.Fatal(err)
	}
	s := conf.Align.Scoring()
	out := cmd.OutOrStdout()

	if asTokens, _ := cmd.Flags().GetBool("tokens"); asTokens {
		aligned1, aligned2, err := seqops.Needle(splitTokens(args[0]), splitTokens(args[1]), "-", s)
		if err != nil {
			stderr.Fatal(err)
		}

		// line the tokens up in columns
		tw := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
		fmt.Fprintln(tw, strings.Join(aligned1, "\t"))
		fmt.Fprintln(tw, strings.Join(aligned2, "\t"))
		tw.Flush()

		fmt.Fprintf(out, "score: %g\n", seqops.Score(aligned1, aligned2, "-", s))
		return
	}

	aligned1, aligned2, err := seqops.NeedleStrings(args[0], args[1], s)
	if err != nil {
		stderr.Fatal(err)
	}

	fmt.Fprintln(out, aligned1)
	fmt.Fprintln(out, aligned2)
	fmt.Fprintf(out, "score: %g\n", seqops.ScoreStrings(aligned1, aligned2, s))
}

// splitTokens splits a comma separated list. An empty string has no tokens.
func splitTokens(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, ",")
}

// set flags
func init() {
	alignCmd.Flags().Float64("match", seqops.DefaultScoring.Match, "score for aligning identical symbols")
	alignCmd.Flags().Float64("mismatch", seqops.DefaultScoring.Mismatch, "score for aligning different symbols")
	alignCmd.Flags().Float64("gap", seqops.DefaultScoring.Gap, "score for each gap position")
	alignCmd.Flags().BoolP("tokens", "k", false, "align comma separated token lists rather than strings")

	viper.BindPFlag("align.match", alignCmd.Flags().Lookup("match"))
	viper.BindPFlag("align.mismatch", alignCmd.Flags().Lookup("mismatch"))
	viper.BindPFlag("align.gap", alignCmd.Flags().Lookup("gap"))

	RootCmd.AddCommand(alignCmd)
}
