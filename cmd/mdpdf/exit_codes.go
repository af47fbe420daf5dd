package main

import (
	"errors"
	"os"

	mdpdf "github.com/RedwanK/markdown-to-pdf"
	"github.com/RedwanK/markdown-to-pdf/internal/config"
)

// Exit codes for the mdpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, ledger write
	ExitTool    = 4 // Pandoc or LaTeX failure
)

// exitCodeFor returns the appropriate exit code for an error. It uses
// errors.Is, so producers must wrap causes with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool failures (exit 4)
	if errors.Is(err, mdpdf.ErrPandocConversion) ||
		errors.Is(err, mdpdf.ErrLatexCompilation) {
		return ExitTool
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdpdf.ErrReadMarkdown) ||
		errors.Is(err, mdpdf.ErrLedgerWrite) ||
		errors.Is(err, ErrMetadataExists) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, mdpdf.ErrInvalidOptions) ||
		errors.Is(err, mdpdf.ErrNoInputDocuments) ||
		errors.Is(err, ErrNoSources) ||
		errors.Is(err, ErrOutputFileManySources) ||
		errors.Is(err, ErrBadMetaEntry) ||
		errors.Is(err, ErrMissingFilename) {
		return ExitUsage
	}

	return ExitGeneral
}
