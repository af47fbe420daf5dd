package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	mdpdf "github.com/RedwanK/markdown-to-pdf"
	"github.com/RedwanK/markdown-to-pdf/internal/config"
	"github.com/RedwanK/markdown-to-pdf/internal/yamlutil"
)

// Sentinel errors for the convert command.
var (
	ErrNoSources             = errors.New("no markdown sources given")
	ErrOutputFileManySources = errors.New("--output-file requires a single source argument")
	ErrBadMetaEntry          = errors.New("metadata entry must be key=value")
)

// runConvert converts each source argument in order: a file becomes its
// own PDF, a directory becomes one merged PDF of its markdown files.
func runConvert(args []string, env *Environment) error {
	var f convertFlags
	fs := newConvertFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", mdpdf.ErrInvalidOptions, err)
	}

	sources := fs.Args()
	if len(sources) == 0 {
		return ErrNoSources
	}
	if f.outputFile != "" && len(sources) > 1 {
		return fmt.Errorf("%w: got %d source arguments", ErrOutputFileManySources, len(sources))
	}

	opts, err := buildOptions(&f, env)
	if err != nil {
		return err
	}
	svc := mdpdf.New(opts, mdpdf.WithClock(env.Now))

	for _, source := range sources {
		pdfPath, err := convertSource(svc, source, f.outputFile)
		if err != nil {
			return err
		}
		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", source, pdfPath)
		} else {
			fmt.Fprintln(env.Stdout, pdfPath)
		}
	}
	return nil
}

// convertSource converts one source argument. Directories merge their
// markdown files, recursively, into a single <dirname>.pdf unless an
// explicit output file overrides the name.
func convertSource(svc *mdpdf.Service, source, outputFile string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("source %s: %w", source, err)
	}
	if !info.IsDir() {
		return svc.Convert(source, outputFile)
	}

	files, err := markdownFilesIn(source)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no markdown files under %s", ErrNoSources, source)
	}

	if outputFile == "" {
		abs, err := filepath.Abs(source)
		if err != nil {
			return "", err
		}
		outputFile = filepath.Base(abs) + ".pdf"
	}
	return svc.ConvertMany(files, outputFile)
}

// markdownFilesIn walks dir recursively and returns its markdown files
// sorted by path, so merge order is stable.
func markdownFilesIn(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".md" || ext == ".markdown" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// buildOptions layers a config file, command line flags, then explicit
// metadata on top of the library defaults.
func buildOptions(f *convertFlags, env *Environment) (mdpdf.Options, error) {
	cfg := config.DefaultConfig()
	if f.configName != "" {
		loaded, err := config.LoadConfig(f.configName)
		if err != nil {
			return mdpdf.Options{}, err
		}
		cfg = loaded
	}
	opts := cfg.Options()

	applyFlags(&opts, f)

	if f.metaFile != "" {
		if err := applyMetaFile(&opts, f.metaFile, env.Now()); err != nil {
			return mdpdf.Options{}, err
		}
	}
	if len(f.metaEntries) > 0 {
		if err := applyMetaEntries(&opts, f.metaEntries, env.Now()); err != nil {
			return mdpdf.Options{}, err
		}
	}
	return opts, nil
}

// applyFlags overrides options with explicitly set command line values.
func applyFlags(opts *mdpdf.Options, f *convertFlags) {
	if f.outputDir != "" {
		opts.OutputDir = f.outputDir
	}
	if f.keepTemp {
		opts.KeepTempDir = true
	}
	if f.templatePath != "" {
		opts.Template.TemplatePath = f.templatePath
	}
	if f.preamblePath != "" {
		opts.Template.PreamblePath = f.preamblePath
	}
	if f.preambleInline != "" {
		opts.Template.ExtraPreamble = f.preambleInline
	}
	if f.disableCover {
		opts.Template.IncludeCover = false
	}
	if f.disableTOC {
		opts.Template.IncludeTOC = false
	}

	if f.disableMermaid {
		opts.Mermaid.Enabled = false
	}
	if f.mermaidCLI != "" {
		opts.Mermaid.CLIPath = f.mermaidCLI
	}
	if f.mermaidFormat != "" {
		opts.Mermaid.OutputFormat = f.mermaidFormat
	}
	if f.mermaidTheme != "" {
		opts.Mermaid.Theme = f.mermaidTheme
	}
	if f.mermaidBackground != "" {
		opts.Mermaid.BackgroundColor = f.mermaidBackground
	}
	if f.mermaidConfig != "" {
		opts.Mermaid.ConfigFile = f.mermaidConfig
	}
	opts.Mermaid.ExtraArgs = append(opts.Mermaid.ExtraArgs, f.mermaidArgs...)
	if len(f.puppeteerArgs) > 0 {
		opts.Mermaid.PuppeteerArgs = f.puppeteerArgs
	}

	if f.disablePlantuml {
		opts.PlantUML.Enabled = false
	}
	if f.plantumlCLI != "" {
		opts.PlantUML.CLIPath = f.plantumlCLI
	}
	if f.plantumlFormat != "" {
		opts.PlantUML.OutputFormat = f.plantumlFormat
	}
	if f.plantumlCharset != "" {
		opts.PlantUML.Charset = f.plantumlCharset
	}
	opts.PlantUML.ExtraArgs = append(opts.PlantUML.ExtraArgs, f.plantumlArgs...)

	if f.disableRemoteImages {
		opts.RemoteImage.Enabled = false
	}
	if f.remoteTimeout > 0 {
		opts.RemoteImage.Timeout = time.Duration(f.remoteTimeout * float64(time.Second))
	}
	if f.remoteUserAgent != "" {
		opts.RemoteImage.UserAgent = f.remoteUserAgent
	}

	if f.pandocPath != "" {
		opts.Pandoc.Executable = f.pandocPath
	}
	opts.Pandoc.ExtraArgs = append(opts.Pandoc.ExtraArgs, f.pandocArgs...)
	if f.latexEngine != "" {
		opts.Latex.Executable = f.latexEngine
	}
	if f.latexRuns > 0 {
		opts.Latex.Runs = f.latexRuns
	}
	opts.Latex.ExtraArgs = append(opts.Latex.ExtraArgs, f.latexArgs...)

	if f.author != "" {
		opts.Author = f.author
	}
	if f.note != "" {
		opts.Note = f.note
	}
}

// applyMetaFile merges a YAML or JSON metadata file into the options.
func applyMetaFile(opts *mdpdf.Options, path string, now time.Time) error {
	data, err := os.ReadFile(path) // #nosec G304 -- metadata path is user-provided
	if err != nil {
		return fmt.Errorf("metadata file: %w", err)
	}
	fm := mdpdf.FrontMatter{}
	if err := yamlutil.Unmarshal(data, &fm); err != nil {
		return fmt.Errorf("metadata file %s: %w", path, err)
	}
	opts.Metadata = mdpdf.ResolveMetadata(opts.Metadata, fm, filepath.Dir(path), now)
	return nil
}

// applyMetaEntries merges repeated key=value entries into the options.
func applyMetaEntries(opts *mdpdf.Options, entries []string, now time.Time) error {
	fm := mdpdf.FrontMatter{}
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("%w: %q", ErrBadMetaEntry, entry)
		}
		fm[key] = strings.TrimSpace(value)
	}
	opts.Metadata = mdpdf.ResolveMetadata(opts.Metadata, fm, ".", now)
	return nil
}
