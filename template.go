package mdpdf

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/RedwanK/markdown-to-pdf/internal/assets"
	"github.com/RedwanK/markdown-to-pdf/internal/latexutil"
)

// Template delimiters. LaTeX uses braces heavily, so the default {{ }}
// actions would collide with constructs like \textbf{{...}}.
const (
	templateDelimLeft  = "<<"
	templateDelimRight = ">>"
)

// templateContext is the data rendered into the LaTeX document template.
type templateContext struct {
	Body       string
	Preamble   string
	Metadata   Metadata
	ShowCover  bool
	ShowTOC    bool
	TocEntries []TocEntry
}

// TemplateRenderer renders the final .tex document around the converted
// body. The template comes from TemplateConfig.TemplatePath or falls
// back to the embedded default.
type TemplateRenderer struct {
	config TemplateConfig
	tmpl   *template.Template
}

// NewTemplateRenderer creates a renderer for the given configuration.
func NewTemplateRenderer(config TemplateConfig) *TemplateRenderer {
	return &TemplateRenderer{config: config}
}

// Render produces the complete LaTeX document. The preamble combines, in
// order: the configured preamble file, the configured inline preamble,
// and the document's front matter preamble. Metadata fields are escaped
// by the template; body and preamble are passed through as LaTeX.
func (r *TemplateRenderer) Render(body string, meta Metadata, frontMatterPreamble string, toc []TocEntry) (string, error) {
	tmpl, err := r.template()
	if err != nil {
		return "", err
	}

	preamble, err := r.buildPreamble(frontMatterPreamble)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	ctx := templateContext{
		Body:       body,
		Preamble:   preamble,
		Metadata:   meta,
		ShowCover:  r.config.IncludeCover,
		ShowTOC:    r.config.IncludeTOC,
		TocEntries: toc,
	}
	if err := tmpl.Execute(&out, ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return out.String(), nil
}

// template parses the document template once and caches it.
func (r *TemplateRenderer) template() (*template.Template, error) {
	if r.tmpl != nil {
		return r.tmpl, nil
	}

	source := assets.DefaultTemplate()
	if r.config.TemplatePath != "" {
		data, err := os.ReadFile(r.config.TemplatePath) // #nosec G304 -- template path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
		}
		source = string(data)
	}

	tmpl, err := template.New("document").
		Delims(templateDelimLeft, templateDelimRight).
		Funcs(template.FuncMap{"latex": latexutil.Escape}).
		Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	r.tmpl = tmpl
	return tmpl, nil
}

// buildPreamble joins the preamble sources that are present.
func (r *TemplateRenderer) buildPreamble(frontMatterPreamble string) (string, error) {
	var parts []string
	if r.config.PreamblePath != "" {
		data, err := os.ReadFile(r.config.PreamblePath) // #nosec G304 -- preamble path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
		}
		parts = append(parts, strings.TrimSpace(string(data)))
	}
	if r.config.ExtraPreamble != "" {
		parts = append(parts, strings.TrimSpace(r.config.ExtraPreamble))
	}
	if frontMatterPreamble != "" {
		parts = append(parts, strings.TrimSpace(frontMatterPreamble))
	}
	return strings.Join(parts, "\n"), nil
}
