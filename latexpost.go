package mdpdf

import (
	"regexp"
	"strings"
)

// Precompiled patterns over pandoc's LaTeX output.
var (
	// A line holding nothing but a stray \\ left behind by the converter.
	strayContinuationLine = regexp.MustCompile(`(?m)^[ \t]*\\\\[ \t]*\n`)

	// A trailing \\ immediately preceding an environment close.
	continuationBeforeEnd = regexp.MustCompile(`\\\\[ \t]*(\n[ \t]*\\end\{)`)

	// Float environment openers with their optional placement specifier.
	floatOpener = regexp.MustCompile(`\\begin\{(figure|longtable)\}(\[[^\]]*\])?`)

	// Pandoc's sectioning pattern: \hypertarget{anchor}{% \section{Title}\label{label}}
	// Titles may contain one level of braces (e.g. \textbf{...}).
	sectioningPattern = regexp.MustCompile(
		`\\hypertarget\{([^}]*)\}\{%\s*\\(section|subsection|subsubsection|paragraph|subparagraph)\*?\{((?:[^{}]|\{[^{}]*\})*)\}\\label\{([^}]*)\}\}`)

	titleLineBreaks = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// sectionLevels maps pandoc sectioning commands to heading levels 1-5.
var sectionLevels = map[string]int{
	"section":       1,
	"subsection":    2,
	"subsubsection": 3,
	"paragraph":     4,
	"subparagraph":  5,
}

// LatexPostProcessor sanitizes and stabilizes the LaTeX text returned by
// pandoc and extracts the table-of-contents model from it.
type LatexPostProcessor struct {
	IncludeTOC bool
}

// Process runs the full post-processing pass and returns the cleaned
// text together with the extracted TOC entries. Entries are nil whenever
// TOC inclusion is disabled, regardless of what the text contains.
func (p LatexPostProcessor) Process(latex string) (string, []TocEntry) {
	latex = SanitizeLatex(latex)
	latex = StabilizeFloats(latex)
	if !p.IncludeTOC {
		return latex, nil
	}
	return latex, ExtractTocEntries(latex)
}

// SanitizeLatex removes line-continuation artifacts pandoc leaves behind:
// lines holding only a stray \\ and a trailing \\ right before an
// environment-closing directive.
func SanitizeLatex(latex string) string {
	latex = strayContinuationLine.ReplaceAllString(latex, "")
	latex = continuationBeforeEnd.ReplaceAllString(latex, "$1")
	return latex
}

// StabilizeFloats forces in-place placement on figure and longtable
// environments lacking an explicit specifier. Openers that already carry
// one are left untouched.
func StabilizeFloats(latex string) string {
	return floatOpener.ReplaceAllStringFunc(latex, func(match string) string {
		groups := floatOpener.FindStringSubmatch(match)
		if groups[2] != "" {
			return match
		}
		return match + "[H]"
	})
}

// ExtractTocEntries scans the converted LaTeX for pandoc's sectioning
// pattern and returns the ordered heading model. Titles spanning several
// lines are collapsed to single spaces.
func ExtractTocEntries(latex string) []TocEntry {
	var entries []TocEntry
	for _, m := range sectioningPattern.FindAllStringSubmatch(latex, -1) {
		entries = append(entries, TocEntry{
			Level:  sectionLevels[m[2]],
			Title:  strings.TrimSpace(titleLineBreaks.ReplaceAllString(m[3], " ")),
			Anchor: m[1],
			Label:  m[4],
		})
	}
	return entries
}
