package mdpdf

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PandocConfig controls the Markdown to LaTeX conversion step.
type PandocConfig struct {
	Executable string   `yaml:"executable"`
	FromFormat string   `yaml:"fromFormat"`
	ToFormat   string   `yaml:"toFormat"`
	ExtraArgs  []string `yaml:"extraArgs"`
}

// DefaultPandocConfig returns the pandoc defaults used by the pipeline.
// --listings routes code blocks through the listings package and the
// float-placement variable keeps pandoc's own floats in place.
func DefaultPandocConfig() PandocConfig {
	return PandocConfig{
		Executable: "pandoc",
		FromFormat: "markdown",
		ToFormat:   "latex",
		ExtraArgs:  []string{"--listings", "-V", "float-placement=H"},
	}
}

// Validate checks pandoc settings.
func (c PandocConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Executable, validation.Required),
		validation.Field(&c.FromFormat, validation.Required),
		validation.Field(&c.ToFormat, validation.Required),
	)
}

// LatexConfig controls the LaTeX engine invocation.
type LatexConfig struct {
	Executable string   `yaml:"executable"`
	Runs       int      `yaml:"runs"`
	ExtraArgs  []string `yaml:"extraArgs"`
}

// DefaultLatexConfig returns xelatex with two passes, enough for the
// table of contents and cross references to settle.
func DefaultLatexConfig() LatexConfig {
	return LatexConfig{Executable: "xelatex", Runs: 2}
}

// Validate checks LaTeX engine settings.
func (c LatexConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Executable, validation.Required),
		validation.Field(&c.Runs, validation.Required, validation.Min(1)),
	)
}

// MermaidConfig controls the mermaid-cli diagram renderer.
type MermaidConfig struct {
	Enabled         bool     `yaml:"enabled"`
	CLIPath         string   `yaml:"cliPath"`
	OutputFormat    string   `yaml:"outputFormat"`
	Theme           string   `yaml:"theme"`
	BackgroundColor string   `yaml:"backgroundColor"`
	ConfigFile      string   `yaml:"configFile"`
	ExtraArgs       []string `yaml:"extraArgs"`
	PuppeteerArgs   []string `yaml:"puppeteerArgs"`
}

// DefaultMermaidConfig returns mermaid settings suitable for headless
// environments. PNG is preferred over SVG for LaTeX inclusion.
func DefaultMermaidConfig() MermaidConfig {
	return MermaidConfig{
		Enabled:       true,
		CLIPath:       "mmdc",
		OutputFormat:  "png",
		PuppeteerArgs: []string{"--no-sandbox", "--disable-setuid-sandbox"},
	}
}

// Validate checks mermaid settings. Disabled renderers are not validated:
// a disabled family must never block a conversion.
func (c MermaidConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.CLIPath, validation.Required),
		validation.Field(&c.OutputFormat, validation.In("png", "svg", "pdf")),
	)
}

// PlantUMLConfig controls the plantuml diagram renderer.
type PlantUMLConfig struct {
	Enabled      bool     `yaml:"enabled"`
	CLIPath      string   `yaml:"cliPath"`
	OutputFormat string   `yaml:"outputFormat"`
	Charset      string   `yaml:"charset"`
	ExtraArgs    []string `yaml:"extraArgs"`
}

// DefaultPlantUMLConfig returns the plantuml defaults.
func DefaultPlantUMLConfig() PlantUMLConfig {
	return PlantUMLConfig{
		Enabled:      true,
		CLIPath:      "plantuml",
		OutputFormat: "png",
		Charset:      "UTF-8",
	}
}

// Validate checks plantuml settings, skipping disabled renderers.
func (c PlantUMLConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.CLIPath, validation.Required),
		validation.Field(&c.OutputFormat, validation.In("png", "svg", "eps", "pdf")),
	)
}

// RemoteImageConfig controls downloading of http(s) image references.
type RemoteImageConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

// DefaultRemoteImageConfig returns remote image defaults.
func DefaultRemoteImageConfig() RemoteImageConfig {
	return RemoteImageConfig{
		Enabled:   true,
		Timeout:   10 * time.Second,
		UserAgent: "markdown-to-pdf/1.0",
	}
}

// Validate checks remote image settings, skipping a disabled downloader.
func (c RemoteImageConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Duration(1))),
	)
}

// TemplateConfig selects the LaTeX template and extra preamble sources.
type TemplateConfig struct {
	TemplatePath  string `yaml:"templatePath"`  // empty = embedded default
	PreamblePath  string `yaml:"preamblePath"`  // LaTeX file injected into the preamble
	ExtraPreamble string `yaml:"extraPreamble"` // inline LaTeX appended to the preamble
	IncludeCover  bool   `yaml:"includeCover"`
	IncludeTOC    bool   `yaml:"includeToc"`
}

// DefaultTemplateConfig returns the embedded template with cover and TOC.
func DefaultTemplateConfig() TemplateConfig {
	return TemplateConfig{IncludeCover: true, IncludeTOC: true}
}

// Options is the complete per-conversion configuration. A Service is
// constructed from one Options value; there is no process-wide state.
type Options struct {
	OutputDir   string            `yaml:"outputDir"`
	KeepTempDir bool              `yaml:"keepTempDir"`
	Metadata    Metadata          `yaml:"metadata"`
	Template    TemplateConfig    `yaml:"template"`
	Pandoc      PandocConfig      `yaml:"pandoc"`
	Latex       LatexConfig       `yaml:"latex"`
	Mermaid     MermaidConfig     `yaml:"mermaid"`
	PlantUML    PlantUMLConfig    `yaml:"plantuml"`
	RemoteImage RemoteImageConfig `yaml:"remoteImages"`
	Author      string            `yaml:"author"` // ledger author for new entries
	Note        string            `yaml:"note"`   // ledger note for new entries
}

// DefaultOptions returns a fully populated Options value writing to dir.
func DefaultOptions(dir string) Options {
	return Options{
		OutputDir:   dir,
		Template:    DefaultTemplateConfig(),
		Pandoc:      DefaultPandocConfig(),
		Latex:       DefaultLatexConfig(),
		Mermaid:     DefaultMermaidConfig(),
		PlantUML:    DefaultPlantUMLConfig(),
		RemoteImage: DefaultRemoteImageConfig(),
	}
}

// Validate checks the whole options tree. Errors wrap ErrInvalidOptions so
// callers can map them to a usage exit code with errors.Is.
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.OutputDir, validation.Required),
		validation.Field(&o.Pandoc),
		validation.Field(&o.Latex),
		validation.Field(&o.Mermaid),
		validation.Field(&o.PlantUML),
		validation.Field(&o.RemoteImage),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}
