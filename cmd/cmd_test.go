package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
		resetFlags(RootCmd)
	})

	if err := RootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

// resetFlags returns every flag of c, and its subcommands, to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func Test_align(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			"default scoring",
			[]string{"align", "ACGT", "AGT"},
			"ACGT\nA-GT\nscore: 298\n",
		},
		{
			"empty sequence",
			[]string{"align", "ACG", ""},
			"ACG\n---\nscore: -6\n",
		},
		{
			"unit scoring",
			[]string{"align", "AB", "BA", "--match", "1", "--mismatch", "-1", "--gap", "-1"},
			"-AB\nBA-\nscore: -1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := execute(t, tt.args...); got != tt.want {
				t.Errorf("align = %q, want %q", got, tt.want)
			}
		})
	}
}

// the optimal score is fixed even when the alignment isn't unique
func Test_align_gattaca(t *testing.T) {
	got := execute(t, "align", "GATTACA", "GCATGCU", "--match", "1", "--mismatch", "-1", "--gap", "-1")

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("align = %q, want 3 lines", got)
	}
	if strings.ReplaceAll(lines[0], "-", "") != "GATTACA" || strings.ReplaceAll(lines[1], "-", "") != "GCATGCU" {
		t.Errorf("align = %q, %q; gaps removed they should be the input", lines[0], lines[1])
	}
	if lines[2] != "score: 0" {
		t.Errorf("align %s, want score: 0", lines[2])
	}
}

func Test_align_tokens(t *testing.T) {
	got := execute(t, "align", "--tokens", "sp1,sp2,sp3", "sp1,sp3")

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("align --tokens = %q, want 3 lines", got)
	}
	if fields := strings.Join(strings.Fields(lines[0]), " "); fields != "sp1 sp2 sp3" {
		t.Errorf("align --tokens seq1 = %q", lines[0])
	}
	if fields := strings.Join(strings.Fields(lines[1]), " "); fields != "sp1 - sp3" {
		t.Errorf("align --tokens seq2 = %q", lines[1])
	}
	if lines[2] != "score: 198" {
		t.Errorf("align --tokens %s, want score: 198", lines[2])
	}
}

func Test_revcomp(t *testing.T) {
	if got := execute(t, "revcomp", "ACGT", "aacg", "GTTTCAATCCACGCGCCCACG"); got != "ACGT\ncgtt\nCGTGGGCGCGTGGATTGAAAC\n" {
		t.Errorf("revcomp = %q", got)
	}
}

func Test_hamming(t *testing.T) {
	if got := execute(t, "hamming", "ACGT", "ACCT"); got != "1\t4\t3\n" {
		t.Errorf("hamming = %q, want %q", got, "1\t4\t3\n")
	}
}

func Test_indices(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"found", []string{"indices", "sp1", "sp1", "sp2", "sp1"}, "0 2\n"},
		{"missing", []string{"indices", "sp9", "sp1", "sp2"}, "\n"},
		{"no tokens", []string{"indices", "sp1"}, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := execute(t, tt.args...); got != tt.want {
				t.Errorf("indices = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_docs(t *testing.T) {
	dir := t.TempDir()
	execute(t, "docs", "--dir", dir)

	tests := []struct {
		file string
		want string
	}{
		{"cctk.md", "---\nlayout: default\ntitle: cctk\nnav_order: 0\nhas_children: true\npermalink: /\n---\n"},
		{"cctk_blast.md", "---\nlayout: default\ntitle: blast\nparent: cctk\n"},
		{"cctk_align.md", "---\nlayout: default\ntitle: align\nparent: cctk\n"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			contents, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(contents), tt.want) {
				t.Errorf("%s starts with %q, want %q", tt.file, string(contents)[:min(len(contents), len(tt.want))], tt.want)
			}
		})
	}

	// hidden
	if _, err := os.Stat(filepath.Join(dir, "cctk_docs.md")); !os.IsNotExist(err) {
		t.Error("docs were written for the docs command")
	}
}
