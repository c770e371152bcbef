// Package report prints pipeline statistics for people (fixed-width lines)
// and for tools (JSON lines).
package report

import (
	"fmt"
	"io"

	"github.com/Observe-l/dnastore/pipeline"
)

var legend = []string{
	"for each packet, these statistics are shown in two groups:",
	"1.1 inner decode failures, 1.2 bytes thus declared as erasures",
	"1.3 outer-code total errors detected in packet, 1.4 max errors detected in a single decode",
	"2.1 outer-code uncorrected-after-decode total, 2.2 same, but max in single decode",
	"2.3 outer-code non-zero status count; if zero, the outer code corrected all errors",
	"2.4 actual number of byte errors compared to the known plaintext",
}

func Legend(w io.Writer) error {
	for _, l := range legend {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// Verdict is the per-packet tag.
func Verdict(st pipeline.Stats) string {
	if st.OK() {
		return "packet OK"
	}
	return "packet NOT ok"
}

// Packet writes "id: (a b c d) (e f g h) verdict".
func Packet(w io.Writer, id int, st pipeline.Stats) error {
	f := st.Fields()
	_, err := fmt.Fprintf(w, "%3d: (%3d %3d %3d %3d) (%3d %3d %3d %3d) %s\n",
		id, f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], Verdict(st))
	return err
}

// Totals writes the run verdict followed by the TOT line.
func Totals(w io.Writer, res pipeline.RunResult) error {
	verdict := "all packets OK"
	if !res.OK() {
		verdict = "some packets had errors!"
	}
	f := res.Total.Fields()
	_, err := fmt.Fprintf(w, "%s\nTOT: (%4d %4d %4d %4d) (%4d %4d %4d %4d)\n",
		verdict, f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7])
	return err
}
