package mdpdf

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// diagramsSubdir is the directory under the working dir receiving
// rendered diagram and downloaded image assets.
const diagramsSubdir = "diagrams"

// remoteImagePattern matches markdown image references whose target is an
// absolute network URL.
var remoteImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\((https?://[^)\s]+)\)`)

// DiagramRenderer is the capability rendering one diagram language.
// Implementations wrap external binaries (mmdc, plantuml); tests inject
// fakes. Render writes the asset under outDir using assetStem as the
// file name stem and returns the asset path.
type DiagramRenderer interface {
	Enabled() bool
	Render(source, outDir, assetStem string) (string, error)
}

// RemoteDownloader is the capability fetching remote image references.
type RemoteDownloader interface {
	Enabled() bool
	Download(url, outDir, assetStem string) (string, error)
}

// DiagramBlock records one substituted (or attempted) fenced diagram.
type DiagramBlock struct {
	Language  string
	Source    string
	Ordinal   int    // zero-based, per language, first-seen order
	AssetPath string // empty when rendering failed
}

// SubstitutionResult is the outcome of one substitution pass.
type SubstitutionResult struct {
	Body   string
	Blocks []DiagramBlock
	Assets []string
}

// DiagramSubstitutor replaces fenced diagram blocks and remote image
// references with local assets. Renderers are looked up per language tag;
// adding a diagram family means registering an implementation.
type DiagramSubstitutor struct {
	renderers  map[string]DiagramRenderer
	downloader RemoteDownloader
}

// NewDiagramSubstitutor creates an empty substitutor. Without registered
// renderers or a downloader the pass leaves the body untouched.
func NewDiagramSubstitutor() *DiagramSubstitutor {
	return &DiagramSubstitutor{renderers: make(map[string]DiagramRenderer)}
}

// Register binds a renderer to a fenced code block language tag.
func (s *DiagramSubstitutor) Register(language string, r DiagramRenderer) {
	s.renderers[strings.ToLower(language)] = r
}

// SetDownloader installs the remote image downloader capability.
func (s *DiagramSubstitutor) SetDownloader(d RemoteDownloader) {
	s.downloader = d
}

// Substitute runs the full pass over body: every registered diagram
// language first, then remote image references. Failures never abort;
// the offending block or reference is preserved with an inline note and
// ordinals of other languages are unaffected.
func (s *DiagramSubstitutor) Substitute(body, workDir, docStem string) SubstitutionResult {
	result := SubstitutionResult{Body: body}

	languages := make([]string, 0, len(s.renderers))
	for language := range s.renderers {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	for _, language := range languages {
		s.substituteLanguage(&result, language, workDir, docStem)
	}
	s.substituteRemoteImages(&result, workDir, docStem)

	return result
}

// substituteLanguage replaces the fenced blocks of a single language in
// document order, assigning zero-based ordinals as blocks are seen.
func (s *DiagramSubstitutor) substituteLanguage(result *SubstitutionResult, language, workDir, docStem string) {
	renderer := s.renderers[language]
	pattern := fencePattern(language)
	outDir := filepath.Join(workDir, diagramsSubdir)
	ordinal := 0

	result.Body = pattern.ReplaceAllStringFunc(result.Body, func(match string) string {
		source := pattern.FindStringSubmatch(match)[1]
		block := DiagramBlock{Language: language, Source: source, Ordinal: ordinal}
		ordinal++

		stem := fmt.Sprintf("%s-%03d", docStem, block.Ordinal)

		if renderer == nil || !renderer.Enabled() {
			result.Blocks = append(result.Blocks, block)
			return degradedFence(match, language, ErrRendererDisabled)
		}

		assetPath, err := renderer.Render(source, outDir, stem)
		if err != nil {
			result.Blocks = append(result.Blocks, block)
			return degradedFence(match, language, err)
		}

		block.AssetPath = assetPath
		result.Blocks = append(result.Blocks, block)
		result.Assets = append(result.Assets, assetPath)
		return includeDirective(workDir, assetPath)
	})
}

// substituteRemoteImages downloads http(s) image targets and rewrites the
// references to local assets. A failed or disabled download keeps the
// original reference followed by a visible comment marker.
func (s *DiagramSubstitutor) substituteRemoteImages(result *SubstitutionResult, workDir, docStem string) {
	outDir := filepath.Join(workDir, diagramsSubdir)
	ordinal := 0

	result.Body = remoteImagePattern.ReplaceAllStringFunc(result.Body, func(match string) string {
		groups := remoteImagePattern.FindStringSubmatch(match)
		alt, url := groups[1], groups[2]

		stem := fmt.Sprintf("%s-remote-%03d", docStem, ordinal)
		ordinal++

		if s.downloader == nil || !s.downloader.Enabled() {
			return match
		}

		assetPath, err := s.downloader.Download(url, outDir, stem)
		if err != nil {
			return fmt.Sprintf("%s <!-- remote image unavailable: %v -->", match, err)
		}

		result.Assets = append(result.Assets, assetPath)
		return fmt.Sprintf("![%s](%s)", alt, relativeAssetPath(workDir, assetPath))
	})
}

// fencePattern matches a fenced code block tagged with the language.
func fencePattern(language string) *regexp.Regexp {
	return regexp.MustCompile("(?s)```" + regexp.QuoteMeta(language) + "[ \t]*\n(.*?)\n```")
}

// degradedFence preserves the original fenced block verbatim and appends
// a blockquote note so the failure stays visible in the document.
func degradedFence(match, language string, err error) string {
	return fmt.Sprintf("%s\n\n> diagram rendering unavailable (%s): %v\n", match, language, err)
}

// includeDirective builds the centered image inclusion replacing a
// rendered block. The path is quoted and relative to the working dir so
// the document stays portable across TEXINPUTS roots.
func includeDirective(workDir, assetPath string) string {
	rel := relativeAssetPath(workDir, assetPath)
	return `\begin{center}\includegraphics[width=\linewidth,keepaspectratio]{"` + rel + `"}\end{center}`
}

// relativeAssetPath renders assetPath relative to workDir with forward
// slashes, falling back to the absolute path when no relation exists.
func relativeAssetPath(workDir, assetPath string) string {
	rel, err := filepath.Rel(workDir, assetPath)
	if err != nil {
		return path.Clean(filepath.ToSlash(assetPath))
	}
	return filepath.ToSlash(rel)
}
