package mdpdf

import (
	"fmt"
	"strings"
)

// PandocConverter converts Markdown to LaTeX by invoking the pandoc CLI.
// Conversion failures are fatal for the current document: there is no
// meaningful degraded output without the converted body.
type PandocConverter struct {
	config PandocConfig
	runner CommandRunner
}

// NewPandocConverter creates a converter with a real command runner.
func NewPandocConverter(config PandocConfig) *PandocConverter {
	return &PandocConverter{config: config, runner: &ExecRunner{}}
}

// ToLaTeX converts the markdown file at path and returns the LaTeX body.
// Resource dirs are passed through --resource-path so pandoc can resolve
// relative image references (rendered diagrams among them). A non-zero
// exit wraps ErrPandocConversion with pandoc's diagnostics verbatim.
func (c *PandocConverter) ToLaTeX(path string, resourceDirs []string) (string, error) {
	args := make([]string, 0, len(c.config.ExtraArgs)+7)
	args = append(args, c.config.ExtraArgs...)
	args = append(args,
		"--from", c.config.FromFormat,
		"--to", c.config.ToFormat,
		path,
	)
	if len(resourceDirs) > 0 {
		args = append(args, "--resource-path", strings.Join(resourceDirs, ":"))
	}

	stdout, stderr, err := c.runner.Run(c.config.Executable, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPandocConversion, strings.TrimSpace(stderr))
	}
	return stdout, nil
}
