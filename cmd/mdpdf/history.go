package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	mdpdf "github.com/RedwanK/markdown-to-pdf"
)

// ErrMissingFilename is returned when history is called without a file.
var ErrMissingFilename = errors.New("history requires an output filename")

// runHistory prints the version ledger entries for one output file.
func runHistory(args []string, env *Environment) error {
	var outputDir string
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.StringVarP(&outputDir, "output-dir", "o", "dist", "output directory holding the ledger")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", mdpdf.ErrInvalidOptions, err)
	}
	if fs.NArg() == 0 {
		return ErrMissingFilename
	}

	ledger := mdpdf.NewLedger(outputDir)
	entries, err := ledger.HistoryFor(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(env.Stdout, "no versions recorded for %s\n", fs.Arg(0))
		return nil
	}

	w := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tDATE\tTIME\tAUTHOR\tNOTE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Version, e.Date, e.Time, e.Author, e.Note)
	}
	return w.Flush()
}
