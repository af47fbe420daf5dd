package mdpdf

import "strings"

// PdfinfoProber recovers the Author field from a PDF's embedded metadata
// using the pdfinfo binary. It implements AuthorProber for ledger
// bootstrap reconciliation; a missing binary or a PDF without an Author
// field simply yields an empty author.
type PdfinfoProber struct {
	runner CommandRunner
}

// NewPdfinfoProber creates a prober with a real command runner.
func NewPdfinfoProber() *PdfinfoProber {
	return &PdfinfoProber{runner: &ExecRunner{}}
}

// Author returns the PDF's embedded author, or "" when none can be
// recovered.
func (p *PdfinfoProber) Author(path string) string {
	stdout, _, err := p.runner.Run("pdfinfo", path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(stdout, "\n") {
		if value, found := strings.CutPrefix(line, "Author:"); found {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
