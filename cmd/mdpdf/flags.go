package main

import (
	flag "github.com/spf13/pflag"
)

// convertFlags holds every flag of the convert command.
type convertFlags struct {
	configName     string
	outputDir      string
	outputFile     string
	templatePath   string
	preamblePath   string
	preambleInline string
	metaFile       string
	metaEntries    []string

	disableMermaid    bool
	mermaidCLI        string
	mermaidFormat     string
	mermaidTheme      string
	mermaidBackground string
	mermaidConfig     string
	mermaidArgs       []string
	puppeteerArgs     []string

	disablePlantuml bool
	plantumlCLI     string
	plantumlFormat  string
	plantumlCharset string
	plantumlArgs    []string

	disableRemoteImages bool
	remoteTimeout       float64
	remoteUserAgent     string

	disableCover bool
	disableTOC   bool
	keepTemp     bool

	pandocPath  string
	pandocArgs  []string
	latexEngine string
	latexRuns   int
	latexArgs   []string

	author  string
	note    string
	verbose bool
}

// newConvertFlagSet builds the pflag set for the convert command.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVar(&f.configName, "config", "", "config file path or name")
	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory (default dist)")
	fs.StringVarP(&f.outputFile, "output-file", "f", "", "output PDF name, single source only")
	fs.StringVar(&f.templatePath, "template", "", "custom LaTeX template")
	fs.StringVar(&f.preamblePath, "preamble", "", "LaTeX file injected into the preamble")
	fs.StringVar(&f.preambleInline, "preamble-inline", "", "inline LaTeX appended to the preamble")
	fs.StringVar(&f.metaFile, "meta", "", "YAML/JSON metadata file")
	fs.StringArrayVar(&f.metaEntries, "meta-entry", nil, "metadata entry key=value (repeatable)")

	fs.BoolVar(&f.disableMermaid, "disable-mermaid", false, "disable mermaid rendering")
	fs.StringVar(&f.mermaidCLI, "mermaid-cli", "", "path to the mmdc binary")
	fs.StringVar(&f.mermaidFormat, "mermaid-format", "", "mermaid output format (png/svg)")
	fs.StringVar(&f.mermaidTheme, "mermaid-theme", "", "mermaid theme")
	fs.StringVar(&f.mermaidBackground, "mermaid-background", "", "mermaid background color")
	fs.StringVar(&f.mermaidConfig, "mermaid-config", "", "mermaid JSON config file")
	fs.StringArrayVar(&f.mermaidArgs, "mermaid-arg", nil, "extra mmdc argument (repeatable)")
	fs.StringArrayVar(&f.puppeteerArgs, "puppeteer-arg", nil, "extra Chromium argument for mmdc (repeatable)")

	fs.BoolVar(&f.disablePlantuml, "disable-plantuml", false, "disable plantuml rendering")
	fs.StringVar(&f.plantumlCLI, "plantuml-cli", "", "path to the plantuml binary")
	fs.StringVar(&f.plantumlFormat, "plantuml-format", "", "plantuml output format (png/svg/eps)")
	fs.StringVar(&f.plantumlCharset, "plantuml-charset", "", "plantuml source charset")
	fs.StringArrayVar(&f.plantumlArgs, "plantuml-arg", nil, "extra plantuml argument (repeatable)")

	fs.BoolVar(&f.disableRemoteImages, "disable-remote-images", false, "disable remote image capture")
	fs.Float64Var(&f.remoteTimeout, "remote-image-timeout", 0, "remote image timeout in seconds")
	fs.StringVar(&f.remoteUserAgent, "remote-image-user-agent", "", "User-Agent for remote images")

	fs.BoolVar(&f.disableCover, "disable-cover", false, "omit the cover page")
	fs.BoolVar(&f.disableTOC, "disable-toc", false, "omit the table of contents")
	fs.BoolVar(&f.keepTemp, "keep-temp", false, "keep the temporary working directory")

	fs.StringVar(&f.pandocPath, "pandoc", "", "path to the pandoc binary")
	fs.StringArrayVar(&f.pandocArgs, "pandoc-arg", nil, "extra pandoc argument (repeatable)")
	fs.StringVar(&f.latexEngine, "latex-engine", "", "LaTeX engine (xelatex/pdflatex/lualatex)")
	fs.IntVar(&f.latexRuns, "latex-runs", 0, "number of LaTeX passes")
	fs.StringArrayVar(&f.latexArgs, "latex-arg", nil, "extra LaTeX engine argument (repeatable)")

	fs.StringVar(&f.author, "author", "", "author recorded in the version ledger")
	fs.StringVar(&f.note, "note", "", "note recorded in the version ledger")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")

	return fs
}
