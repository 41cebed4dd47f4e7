package blast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// Output is a struct containing the results of a spacer search.
type Output struct {
	// Spacers is the path of the spacer FASTA
	Spacers string `json:"spacers"`

	// Databases that were searched
	Databases []string `json:"databases"`

	// Time, ex: "2018/01/01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Hits are the extended hits of every spacer
	Hits []Record `json:"hits"`
}

// header is the first row of TSV output. It starts with the blastn columns.
var header = append(slices.Clone(columns),
	"strand", "truncated", "sstart_mod", "send_mod", "database",
	"upstream", "protospacer", "downstream",
	"aligned_spacer", "aligned_protospacer", "mismatches", "gaps",
	"hamming", "hamming_plus1", "hamming_minus1",
)

// write saves the records to the output file: JSON if it ends with .json, TSV otherwise.
func write(flags *Flags, records []Record, seconds float64) error {
	if strings.EqualFold(filepath.Ext(flags.out), ".json") {
		return writeJSON(flags, records, seconds)
	}

	f, err := os.Create(flags.out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := writeTSV(w, records); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", flags.out, err)
	}

	return f.Close()
}

// writeJSON writes the records, with the search's metadata, as indented JSON.
func writeJSON(flags *Flags, records []Record, seconds float64) error {
	if records == nil {
		records = []Record{}
	}

	out := Output{
		Spacers:   flags.in,
		Databases: flags.dbs,
		Time:      time.Now().Format("2006/01/02 15:04:05"),
		Execution: seconds,
		Hits:      records,
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}

	if err = os.WriteFile(flags.out, output, 0666); err != nil {
		return fmt.Errorf("failed to write the output: %w", err)
	}

	return nil
}

// writeTSV writes a header and one tab separated row per record.
func writeTSV(w io.Writer, records []Record) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, r := range records {
		if _, err := fmt.Fprintln(w, strings.Join(r.row(), "\t")); err != nil {
			return err
		}
	}

	return nil
}

// row is the record's TSV fields, matching header.
func (r *Record) row() []string {
	itoa := strconv.Itoa
	ftoa := func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return []string{
		r.QueryID,
		r.SubjectID,
		ftoa(r.Identity),
		itoa(r.Length),
		itoa(r.Mismatch),
		itoa(r.GapOpen),
		itoa(r.QueryStart),
		itoa(r.QueryEnd),
		itoa(r.SubjectStart),
		itoa(r.SubjectEnd),
		r.Evalue,
		ftoa(r.BitScore),
		itoa(r.QueryLen),
		itoa(r.SubjectLen),
		string(r.Strand),
		strconv.FormatBool(r.Truncated),
		itoa(r.ExtendedStart),
		itoa(r.ExtendedEnd),
		r.Database,
		r.Upstream,
		r.Protospacer,
		r.Downstream,
		r.AlignedSpacer,
		r.AlignedProtospacer,
		itoa(r.Mismatches),
		itoa(r.Gaps),
		itoa(r.Hamming[0]),
		itoa(r.Hamming[1]),
		itoa(r.Hamming[2]),
	}
}

// summarize writes a table of hit counts per spacer and database.
func summarize(w io.Writer, records []Record) error {
	type key struct {
		spacer, db string
	}

	counts := make(map[key]int)
	var keys []key
	for _, r := range records {
		k := key{r.QueryID, r.Database}
		if _, counted := counts[k]; !counted {
			keys = append(keys, k)
		}
		counts[k]++
	}

	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	fmt.Fprintf(tw, "spacer\thits\tdatabase\t\n")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", k.spacer, counts[k], k.db)
	}

	return tw.Flush()
}
