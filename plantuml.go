package mdpdf

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PlantUMLRenderer renders plantuml fenced blocks through the plantuml
// CLI in pipe mode. It implements DiagramRenderer.
type PlantUMLRenderer struct {
	config PlantUMLConfig
	runner CommandRunner
}

// NewPlantUMLRenderer creates a renderer with a real command runner.
func NewPlantUMLRenderer(config PlantUMLConfig) *PlantUMLRenderer {
	return &PlantUMLRenderer{config: config, runner: &ExecRunner{}}
}

// Enabled reports whether plantuml rendering is active.
func (r *PlantUMLRenderer) Enabled() bool {
	return r.config.Enabled
}

// Render pipes the diagram source to plantuml and writes its stdout to
// the asset path under outDir.
func (r *PlantUMLRenderer) Render(source, outDir, assetStem string) (string, error) {
	if !r.config.Enabled {
		return "", ErrRendererDisabled
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}

	format := strings.ToLower(r.config.OutputFormat)
	if format == "" {
		format = "png"
	}
	outPath := filepath.Join(outDir, assetStem+"."+format)

	args := []string{"-pipe"}
	if r.config.Charset != "" {
		args = append(args, "-charset", r.config.Charset)
	}
	args = append(args, "-t"+format)
	args = append(args, r.config.ExtraArgs...)

	stdout, stderr, err := r.runner.RunIn("", nil, []byte(source), r.config.CLIPath, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s (install plantuml)", ErrRendererNotFound, r.config.CLIPath)
		}
		return "", fmt.Errorf("%w: %s", ErrDiagramRender, firstNonEmpty(strings.TrimSpace(stderr), err.Error()))
	}
	if len(stdout) == 0 {
		return "", fmt.Errorf("%w: plantuml produced an empty diagram", ErrDiagramRender)
	}

	if err := os.WriteFile(outPath, []byte(stdout), 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	return outPath, nil
}
