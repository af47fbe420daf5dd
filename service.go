package mdpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RedwanK/markdown-to-pdf/internal/fileutil"
)

// pageBreakDirective separates documents merged into one output.
const pageBreakDirective = "\\newpage"

// markdownConverter abstracts the Markdown to LaTeX conversion step.
type markdownConverter interface {
	ToLaTeX(path string, resourceDirs []string) (string, error)
}

// documentCompiler abstracts the LaTeX compilation step.
type documentCompiler interface {
	Compile(texPath string, searchPaths []string) (string, error)
}

// documentRenderer abstracts the template rendering step.
type documentRenderer interface {
	Render(body string, meta Metadata, frontMatterPreamble string, toc []TocEntry) (string, error)
}

// Service coordinates one conversion pipeline: front matter, diagram
// substitution, style transcoding, pandoc, LaTeX post-processing,
// template rendering, compilation, and the version ledger. A Service is
// built per Options value and holds no process-wide state. It is
// single-threaded; run parallel conversions with separate Services and
// disjoint output directories.
type Service struct {
	opts        Options
	transcoder  StyleTranscoder
	substitutor *DiagramSubstitutor
	converter   markdownConverter
	renderer    documentRenderer
	compiler    documentCompiler
	ledger      *Ledger
	now         func() time.Time
}

// ServiceOption customizes a Service, mainly for tests injecting fakes.
type ServiceOption func(*Service)

// WithMarkdownConverter replaces the pandoc converter.
func WithMarkdownConverter(c markdownConverter) ServiceOption {
	return func(s *Service) { s.converter = c }
}

// WithCompiler replaces the LaTeX compiler.
func WithCompiler(c documentCompiler) ServiceOption {
	return func(s *Service) { s.compiler = c }
}

// WithRenderer replaces the template renderer.
func WithRenderer(r documentRenderer) ServiceOption {
	return func(s *Service) { s.renderer = r }
}

// WithClock replaces the time source used for ledger entries.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithDiagramRenderer registers or replaces a diagram language renderer.
func WithDiagramRenderer(language string, r DiagramRenderer) ServiceOption {
	return func(s *Service) { s.substitutor.Register(language, r) }
}

// WithRemoteDownloader replaces the remote image downloader.
func WithRemoteDownloader(d RemoteDownloader) ServiceOption {
	return func(s *Service) { s.substitutor.SetDownloader(d) }
}

// New creates a Service from options. Mermaid and PlantUML renderers and
// the remote image downloader are registered according to their configs;
// disabled capabilities stay registered so their fences degrade with a
// visible note instead of silently passing through pandoc.
func New(opts Options, serviceOpts ...ServiceOption) *Service {
	s := &Service{
		opts:        opts,
		substitutor: NewDiagramSubstitutor(),
		converter:   NewPandocConverter(opts.Pandoc),
		renderer:    NewTemplateRenderer(opts.Template),
		compiler:    NewLatexCompiler(opts.Latex),
		ledger:      NewLedger(opts.OutputDir),
		now:         time.Now,
	}
	s.substitutor.Register("mermaid", NewMermaidRenderer(opts.Mermaid))
	s.substitutor.Register("plantuml", NewPlantUMLRenderer(opts.PlantUML))
	s.substitutor.SetDownloader(NewRemoteImageDownloader(opts.RemoteImage))
	s.ledger.SetAuthorProber(NewPdfinfoProber())

	for _, opt := range serviceOpts {
		opt(s)
	}
	return s
}

// Convert runs the pipeline for one markdown file. An empty outputPath
// derives <OutputDir>/<stem>.pdf from the source name. Returns the
// written PDF path.
func (s *Service) Convert(markdownPath, outputPath string) (string, error) {
	return s.ConvertMany([]string{markdownPath}, outputPath)
}

// ConvertMany merges several markdown documents into one output, joined
// by page breaks, with front matter merged in document order. Exactly
// one ledger entry is written for the merged output regardless of how
// many documents went in.
func (s *Service) ConvertMany(markdownPaths []string, outputPath string) (string, error) {
	if len(markdownPaths) == 0 {
		return "", ErrNoInputDocuments
	}
	if err := s.opts.Validate(); err != nil {
		return "", err
	}

	outputDir, err := filepath.Abs(s.opts.OutputDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return "", err
	}

	firstSource, err := filepath.Abs(markdownPaths[0])
	if err != nil {
		return "", err
	}
	sourceDir := filepath.Dir(firstSource)

	if outputPath == "" {
		stem := strings.TrimSuffix(filepath.Base(firstSource), filepath.Ext(firstSource))
		outputPath = filepath.Join(outputDir, stem+".pdf")
	} else if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(outputDir, outputPath)
	}

	workDir, cleanup, err := s.workDir()
	if err != nil {
		return "", err
	}
	defer cleanup()

	combined := FrontMatter{}
	bodies := make([]string, 0, len(markdownPaths))
	for i, mdPath := range markdownPaths {
		body, err := s.prepareDocument(mdPath, workDir, i, combined)
		if err != nil {
			return "", err
		}
		bodies = append(bodies, body)
	}
	merged := strings.Join(bodies, "\n\n"+pageBreakDirective+"\n\n")

	processedPath := filepath.Join(workDir, "document.md")
	if err := os.WriteFile(processedPath, []byte(merged), 0o600); err != nil {
		return "", err
	}

	latexBody, err := s.converter.ToLaTeX(processedPath, []string{workDir, sourceDir})
	if err != nil {
		return "", err
	}

	post := LatexPostProcessor{IncludeTOC: s.opts.Template.IncludeTOC}
	latexBody, tocEntries := post.Process(latexBody)

	meta := ResolveMetadata(s.opts.Metadata, combined, sourceDir, s.now())
	preamble := scalarString(combined[preambleKey])

	document, err := s.renderer.Render(latexBody, meta, preamble, tocEntries)
	if err != nil {
		return "", err
	}

	texPath := filepath.Join(workDir, "document.tex")
	if err := os.WriteFile(texPath, []byte(document), 0o600); err != nil {
		return "", err
	}

	pdfPath, err := s.compiler.Compile(texPath, []string{workDir, sourceDir})
	if err != nil {
		return "", err
	}

	// Bootstrap state must be captured before the copy overwrites a
	// pre-ledger output file: its mtime and embedded author are the
	// synthetic version-1 record.
	var bootstrap *VersionEntry
	if !s.ledger.Exists() {
		if entry, ok := s.ledger.BootstrapEntry(outputPath); ok {
			bootstrap = &entry
		}
	}

	if err := fileutil.CopyFile(pdfPath, outputPath); err != nil {
		return "", err
	}

	if err := s.recordVersion(outputPath, bootstrap); err != nil {
		return "", err
	}
	return outputPath, nil
}

// prepareDocument runs the per-document text stages: front matter
// extraction and merge, diagram and remote image substitution, and
// style transcoding. Returns the processed body.
func (s *Service) prepareDocument(mdPath, workDir string, index int, combined FrontMatter) (string, error) {
	raw, err := os.ReadFile(mdPath) // #nosec G304 -- source paths are user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	fm, body := ExtractFrontMatter(string(raw))
	MergeFrontMatter(combined, fm)

	// Same-named sources from different directories must not share
	// asset names, so the document index goes into the stem.
	stem := strings.TrimSuffix(filepath.Base(mdPath), filepath.Ext(mdPath))
	stem = fmt.Sprintf("%s-%d", stem, index)
	result := s.substitutor.Substitute(body, workDir, stem)

	return s.transcoder.Transcode(result.Body)
}

// recordVersion appends this conversion's ledger entry, preceded by the
// bootstrap entry when one was synthesized.
func (s *Service) recordVersion(outputPath string, bootstrap *VersionEntry) error {
	filename := filepath.Base(outputPath)

	version, err := s.ledger.NextVersion(filename)
	if err != nil {
		return err
	}
	if bootstrap != nil && version <= bootstrap.Version {
		version = bootstrap.Version + 1
	}

	entry := s.ledger.BuildEntry(version, s.now(), filename, s.opts.Author, s.opts.Note)
	return s.ledger.AppendEntries([]VersionEntry{entry}, bootstrap)
}

// workDir creates the temporary working directory for one conversion.
// The cleanup function is a no-op when KeepTempDir is set.
func (s *Service) workDir() (string, func(), error) {
	dir, err := os.MkdirTemp("", "mdpdf-")
	if err != nil {
		return "", nil, err
	}
	if s.opts.KeepTempDir {
		return dir, func() {}, nil
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}
