// Package mdpdf converts Markdown documents to PDF through Pandoc and LaTeX.
//
// # Quick Start
//
// Create a service from options and convert a file:
//
//	svc := mdpdf.New(mdpdf.Options{OutputDir: "dist"})
//	out, err := svc.Convert("report.md", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", out)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Front matter extraction and merge (YAML preamble)
//  2. Diagram fence substitution (Mermaid, PlantUML) and remote image capture
//  3. Markdown to LaTeX conversion via Pandoc
//  4. LaTeX post-processing (float stabilization, TOC extraction)
//  5. Template rendering and LaTeX compilation
//  6. Version ledger append
//
// Diagram rendering and remote image failures degrade gracefully: the
// offending block or reference is preserved with a visible note and the
// conversion continues. Pandoc and LaTeX failures are fatal for the
// current document and carry the tool's diagnostics.
//
// # Version Ledger
//
// Every completed conversion appends one record to a .version file in the
// output directory. Records are append-only and version numbers are
// per-filename, starting at 1. A single ledger file is not safe for
// concurrent writers; serialize conversions into the same output
// directory externally.
//
// # External Tools
//
// The pipeline shells out to pandoc and a LaTeX engine (xelatex by
// default), and optionally to mermaid-cli (mmdc), plantuml, and pdfinfo.
// All of them are reached through small capability interfaces so tests
// run without the binaries installed.
package mdpdf
