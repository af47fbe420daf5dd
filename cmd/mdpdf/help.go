package main

import (
	"fmt"
	"io"
)

// printUsage writes the top level usage text.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `mdpdf converts Markdown documents to PDF via pandoc and LaTeX.

Usage:
  mdpdf convert [flags] <source.md|dir>...
  mdpdf history [flags] <output.pdf>
  mdpdf init-metadata [path]
  mdpdf version
  mdpdf help

Passing sources without a subcommand runs convert. Each file argument
becomes its own PDF. A directory argument merges its markdown files,
found recursively and sorted by path, into one <dirname>.pdf separated
by page breaks, with front matter merged in document order. Each
conversion appends one entry to the .version ledger in the output
directory.

Run "mdpdf convert --help" for the full flag list.
`)
}
