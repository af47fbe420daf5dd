// Package config loads CLI configuration files and maps them onto
// conversion options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mdpdf "github.com/RedwanK/markdown-to-pdf"
	"github.com/RedwanK/markdown-to-pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// appConfigDir is the subdirectory of the user config dir searched for
// named configs.
const appConfigDir = "mdpdf"

// Config mirrors every option group of the conversion pipeline with
// file-friendly scalar types. Values absent from the file keep their
// defaults; unknown keys are rejected so typos surface.
type Config struct {
	Output       OutputConfig       `yaml:"output"`
	Metadata     MetadataConfig     `yaml:"metadata"`
	Template     TemplateConfig     `yaml:"template"`
	Pandoc       PandocConfig       `yaml:"pandoc"`
	Latex        LatexConfig        `yaml:"latex"`
	Mermaid      MermaidConfig      `yaml:"mermaid"`
	PlantUML     PlantUMLConfig     `yaml:"plantuml"`
	RemoteImages RemoteImagesConfig `yaml:"remoteImages"`
	Ledger       LedgerConfig       `yaml:"ledger"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	KeepTemp bool   `yaml:"keepTemp"`
}

// MetadataConfig defines default document metadata.
type MetadataConfig struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Company  string `yaml:"company"`
	Contact  string `yaml:"contact"`
	Address  string `yaml:"address"`
	Date     string `yaml:"date"`
	LogoPath string `yaml:"logoPath"`
}

// TemplateConfig defines LaTeX template options.
type TemplateConfig struct {
	Path          string `yaml:"path"`
	PreamblePath  string `yaml:"preamblePath"`
	ExtraPreamble string `yaml:"extraPreamble"`
	DisableCover  bool   `yaml:"disableCover"`
	DisableTOC    bool   `yaml:"disableToc"`
}

// PandocConfig defines pandoc invocation options.
type PandocConfig struct {
	Executable string   `yaml:"executable"`
	ExtraArgs  []string `yaml:"extraArgs"`
}

// LatexConfig defines LaTeX engine options.
type LatexConfig struct {
	Engine    string   `yaml:"engine"`
	Runs      int      `yaml:"runs"`
	ExtraArgs []string `yaml:"extraArgs"`
}

// MermaidConfig defines mermaid-cli options.
type MermaidConfig struct {
	Disabled        bool     `yaml:"disabled"`
	CLIPath         string   `yaml:"cliPath"`
	Format          string   `yaml:"format"`
	Theme           string   `yaml:"theme"`
	BackgroundColor string   `yaml:"backgroundColor"`
	ConfigFile      string   `yaml:"configFile"`
	ExtraArgs       []string `yaml:"extraArgs"`
	PuppeteerArgs   []string `yaml:"puppeteerArgs"`
}

// PlantUMLConfig defines plantuml options.
type PlantUMLConfig struct {
	Disabled  bool     `yaml:"disabled"`
	CLIPath   string   `yaml:"cliPath"`
	Format    string   `yaml:"format"`
	Charset   string   `yaml:"charset"`
	ExtraArgs []string `yaml:"extraArgs"`
}

// RemoteImagesConfig defines remote image capture options.
type RemoteImagesConfig struct {
	Disabled       bool    `yaml:"disabled"`
	TimeoutSeconds float64 `yaml:"timeoutSeconds"`
	UserAgent      string  `yaml:"userAgent"`
}

// LedgerConfig defines version ledger defaults for new entries.
type LedgerConfig struct {
	Author string `yaml:"author"`
	Note   string `yaml:"note"`
}

// DefaultConfig returns the configuration matching the library defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Dir: "dist"},
	}
}

// LoadConfig loads configuration from a file path or a config name. A
// value containing a path separator is treated as a file path; anything
// else is searched in the current directory and the user config dir.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// Options maps the file configuration onto conversion options, starting
// from the library defaults so unset values keep their meaning.
func (c *Config) Options() mdpdf.Options {
	opts := mdpdf.DefaultOptions(c.Output.Dir)
	opts.KeepTempDir = c.Output.KeepTemp
	opts.Author = c.Ledger.Author
	opts.Note = c.Ledger.Note

	opts.Metadata = mdpdf.Metadata{
		Title:    c.Metadata.Title,
		Author:   c.Metadata.Author,
		Company:  c.Metadata.Company,
		Contact:  c.Metadata.Contact,
		Address:  c.Metadata.Address,
		Date:     c.Metadata.Date,
		LogoPath: c.Metadata.LogoPath,
	}

	opts.Template.TemplatePath = c.Template.Path
	opts.Template.PreamblePath = c.Template.PreamblePath
	opts.Template.ExtraPreamble = c.Template.ExtraPreamble
	opts.Template.IncludeCover = !c.Template.DisableCover
	opts.Template.IncludeTOC = !c.Template.DisableTOC

	if c.Pandoc.Executable != "" {
		opts.Pandoc.Executable = c.Pandoc.Executable
	}
	opts.Pandoc.ExtraArgs = append(opts.Pandoc.ExtraArgs, c.Pandoc.ExtraArgs...)

	if c.Latex.Engine != "" {
		opts.Latex.Executable = c.Latex.Engine
	}
	if c.Latex.Runs > 0 {
		opts.Latex.Runs = c.Latex.Runs
	}
	opts.Latex.ExtraArgs = append(opts.Latex.ExtraArgs, c.Latex.ExtraArgs...)

	opts.Mermaid.Enabled = !c.Mermaid.Disabled
	if c.Mermaid.CLIPath != "" {
		opts.Mermaid.CLIPath = c.Mermaid.CLIPath
	}
	if c.Mermaid.Format != "" {
		opts.Mermaid.OutputFormat = c.Mermaid.Format
	}
	opts.Mermaid.Theme = c.Mermaid.Theme
	opts.Mermaid.BackgroundColor = c.Mermaid.BackgroundColor
	opts.Mermaid.ConfigFile = c.Mermaid.ConfigFile
	opts.Mermaid.ExtraArgs = append(opts.Mermaid.ExtraArgs, c.Mermaid.ExtraArgs...)
	if len(c.Mermaid.PuppeteerArgs) > 0 {
		opts.Mermaid.PuppeteerArgs = c.Mermaid.PuppeteerArgs
	}

	opts.PlantUML.Enabled = !c.PlantUML.Disabled
	if c.PlantUML.CLIPath != "" {
		opts.PlantUML.CLIPath = c.PlantUML.CLIPath
	}
	if c.PlantUML.Format != "" {
		opts.PlantUML.OutputFormat = c.PlantUML.Format
	}
	if c.PlantUML.Charset != "" {
		opts.PlantUML.Charset = c.PlantUML.Charset
	}
	opts.PlantUML.ExtraArgs = append(opts.PlantUML.ExtraArgs, c.PlantUML.ExtraArgs...)

	opts.RemoteImage.Enabled = !c.RemoteImages.Disabled
	if c.RemoteImages.TimeoutSeconds > 0 {
		opts.RemoteImage.Timeout = time.Duration(c.RemoteImages.TimeoutSeconds * float64(time.Second))
	}
	if c.RemoteImages.UserAgent != "" {
		opts.RemoteImage.UserAgent = c.RemoteImages.UserAgent
	}

	return opts
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a named config in the current directory
// then the user config dir, trying .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userDir, appConfigDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
