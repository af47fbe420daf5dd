package mdpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LatexCompiler compiles a .tex file to PDF by running the configured
// engine. Compilation failures are fatal and carry the engine log.
type LatexCompiler struct {
	config LatexConfig
	runner CommandRunner
}

// NewLatexCompiler creates a compiler with a real command runner.
func NewLatexCompiler(config LatexConfig) *LatexCompiler {
	return &LatexCompiler{config: config, runner: &ExecRunner{}}
}

// Compile runs the engine the configured number of times in the tex
// file's directory and returns the produced PDF path. Search paths are
// exposed to the engine through TEXINPUTS.
func (c *LatexCompiler) Compile(texPath string, searchPaths []string) (string, error) {
	texPath, err := filepath.Abs(texPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLatexCompilation, err)
	}
	workDir := filepath.Dir(texPath)
	pdfPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"

	env := texInputsEnv(searchPaths)

	args := make([]string, 0, len(c.config.ExtraArgs)+2)
	args = append(args, "-interaction=nonstopmode")
	args = append(args, c.config.ExtraArgs...)
	args = append(args, filepath.Base(texPath))

	for run := 0; run < c.config.Runs; run++ {
		stdout, stderr, err := c.runner.RunIn(workDir, env, nil, c.config.Executable, args...)
		if err != nil {
			log := strings.TrimSpace(stdout + "\n" + stderr)
			return "", fmt.Errorf("%w: %s", ErrLatexCompilation, log)
		}
	}

	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("%w: no PDF produced at %s", ErrLatexCompilation, pdfPath)
	}
	return pdfPath, nil
}

// texInputsEnv builds a TEXINPUTS assignment extending the existing value
// with the given search paths. The trailing separator keeps the default
// TeX search tree reachable.
func texInputsEnv(searchPaths []string) []string {
	if len(searchPaths) == 0 {
		return nil
	}
	parts := make([]string, 0, len(searchPaths)+1)
	for _, p := range searchPaths {
		if abs, err := filepath.Abs(p); err == nil {
			parts = append(parts, abs)
		}
	}
	if existing := os.Getenv("TEXINPUTS"); existing != "" {
		parts = append(parts, existing)
	}
	return []string{"TEXINPUTS=" + strings.Join(parts, string(os.PathListSeparator)) + string(os.PathListSeparator)}
}
