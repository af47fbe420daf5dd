package mdpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoInputDocuments = errors.New("no input documents provided")
	ErrReadMarkdown     = errors.New("failed to read markdown file")

	// Fatal pipeline errors: the current document cannot be produced.
	ErrPandocConversion = errors.New("pandoc conversion failed")
	ErrLatexCompilation = errors.New("latex compilation failed")
	ErrTemplateRender   = errors.New("template rendering failed")

	// Style transcoding errors.
	ErrStyleRewriteLoop = errors.New("style transcoding did not reach a fixed point")

	// Diagram and remote asset errors. These are degrade-only: the
	// substitution pass reports them inline and never aborts a conversion.
	ErrRendererDisabled = errors.New("diagram renderer is disabled")
	ErrRendererNotFound = errors.New("diagram renderer binary not found")
	ErrDiagramRender    = errors.New("diagram rendering failed")
	ErrRemoteFetch      = errors.New("remote image fetch failed")

	// Ledger errors. Parse problems are skipped line by line; write
	// problems are fatal because history integrity cannot be guaranteed.
	ErrLedgerWrite = errors.New("failed to write version ledger")

	// Options validation errors.
	ErrInvalidOptions = errors.New("invalid conversion options")
)
