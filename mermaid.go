package mdpdf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/RedwanK/markdown-to-pdf/internal/fileutil"
)

// MermaidRenderer renders mermaid fenced blocks through mermaid-cli
// (mmdc). It implements DiagramRenderer.
type MermaidRenderer struct {
	config MermaidConfig
	runner CommandRunner
}

// NewMermaidRenderer creates a renderer with a real command runner.
func NewMermaidRenderer(config MermaidConfig) *MermaidRenderer {
	return &MermaidRenderer{config: config, runner: &ExecRunner{}}
}

// Enabled reports whether mermaid rendering is active.
func (r *MermaidRenderer) Enabled() bool {
	return r.config.Enabled
}

// Render writes the diagram source to a temp file, invokes mmdc, and
// returns the produced asset path under outDir.
func (r *MermaidRenderer) Render(source, outDir, assetStem string) (string, error) {
	if !r.config.Enabled {
		return "", ErrRendererDisabled
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	outPath := filepath.Join(outDir, assetStem+"."+r.config.OutputFormat)

	srcPath, cleanupSrc, err := fileutil.WriteTempFile(source, "mmd")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	defer cleanupSrc()

	args := []string{"-i", srcPath, "-o", outPath, "-f", r.config.OutputFormat, "--quiet"}
	if r.config.Theme != "" {
		args = append(args, "-t", r.config.Theme)
	}
	if r.config.BackgroundColor != "" {
		args = append(args, "-b", r.config.BackgroundColor)
	}
	if r.config.ConfigFile != "" {
		args = append(args, "-c", r.config.ConfigFile)
	}

	if len(r.config.PuppeteerArgs) > 0 {
		puppeteerPath, cleanupPuppeteer, err := writePuppeteerConfig(r.config.PuppeteerArgs)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
		}
		defer cleanupPuppeteer()
		args = append(args, "-p", puppeteerPath)
	}
	args = append(args, r.config.ExtraArgs...)

	_, stderr, err := r.runner.Run(r.config.CLIPath, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s (install @mermaid-js/mermaid-cli)", ErrRendererNotFound, r.config.CLIPath)
		}
		return "", fmt.Errorf("%w: %s", ErrDiagramRender, firstNonEmpty(stderr, err.Error()))
	}

	if !fileutil.FileExists(outPath) {
		return "", fmt.Errorf("%w: mmdc produced no output at %s", ErrDiagramRender, outPath)
	}
	return outPath, nil
}

// writePuppeteerConfig materializes mmdc's puppeteer arguments as the
// JSON config file the CLI expects.
func writePuppeteerConfig(args []string) (string, func(), error) {
	payload, err := json.Marshal(map[string][]string{"args": args})
	if err != nil {
		return "", nil, err
	}
	return fileutil.WriteTempFile(string(payload), "json")
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
