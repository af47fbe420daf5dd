package mdpdf

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLatexCompiler_Compile(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	texPath := filepath.Join(workDir, "document.tex")
	if err := os.WriteFile(texPath, []byte("\\documentclass{article}"), 0o600); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	runner.hook = func(call runnerCall) {
		pdf := filepath.Join(call.dir, "document.pdf")
		if err := os.WriteFile(pdf, []byte("%PDF"), 0o600); err != nil {
			t.Error(err)
		}
	}

	compiler := NewLatexCompiler(DefaultLatexConfig())
	compiler.runner = runner

	pdfPath, err := compiler.Compile(texPath, []string{workDir})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if pdfPath != filepath.Join(workDir, "document.pdf") {
		t.Errorf("pdf path = %q", pdfPath)
	}

	// Default configuration runs the engine twice for stable references.
	if len(runner.calls) != 2 {
		t.Fatalf("engine runs = %d, want 2", len(runner.calls))
	}
	for _, call := range runner.calls {
		if call.name != "xelatex" {
			t.Errorf("executable = %q, want xelatex", call.name)
		}
		if call.dir != workDir {
			t.Errorf("working dir = %q, want %q", call.dir, workDir)
		}
		if !call.hasArg("-interaction=nonstopmode") {
			t.Errorf("missing nonstopmode, args = %v", call.args)
		}
		if !call.hasArg("document.tex") {
			t.Errorf("tex file not passed by base name, args = %v", call.args)
		}
	}
}

func TestLatexCompiler_TexInputs(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	searchDir := t.TempDir()
	texPath := filepath.Join(workDir, "doc.tex")
	if err := os.WriteFile(texPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{hook: func(call runnerCall) {
		_ = os.WriteFile(filepath.Join(call.dir, "doc.pdf"), []byte("%PDF"), 0o600)
	}}
	compiler := NewLatexCompiler(LatexConfig{Executable: "xelatex", Runs: 1})
	compiler.runner = runner

	if _, err := compiler.Compile(texPath, []string{searchDir}); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	env := runner.calls[0].env
	if len(env) != 1 || !strings.HasPrefix(env[0], "TEXINPUTS=") {
		t.Fatalf("env = %v, want single TEXINPUTS entry", env)
	}
	if !strings.Contains(env[0], searchDir) {
		t.Errorf("TEXINPUTS missing search dir: %q", env[0])
	}
	if !strings.HasSuffix(env[0], string(os.PathListSeparator)) {
		t.Errorf("TEXINPUTS missing trailing separator: %q", env[0])
	}
}

func TestLatexCompiler_EngineFailureCarriesLog(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	texPath := filepath.Join(workDir, "doc.tex")
	if err := os.WriteFile(texPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{stdout: "! Undefined control sequence.", err: errors.New("exit status 1")}
	compiler := NewLatexCompiler(LatexConfig{Executable: "xelatex", Runs: 1})
	compiler.runner = runner

	_, err := compiler.Compile(texPath, nil)
	if !errors.Is(err, ErrLatexCompilation) {
		t.Fatalf("error = %v, want ErrLatexCompilation", err)
	}
	if !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Errorf("engine log missing from error: %v", err)
	}
}

func TestLatexCompiler_NoPdfProduced(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	texPath := filepath.Join(workDir, "doc.tex")
	if err := os.WriteFile(texPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	// The engine exits zero but writes nothing.
	compiler := NewLatexCompiler(LatexConfig{Executable: "xelatex", Runs: 1})
	compiler.runner = &fakeRunner{}

	_, err := compiler.Compile(texPath, nil)
	if !errors.Is(err, ErrLatexCompilation) {
		t.Fatalf("error = %v, want ErrLatexCompilation", err)
	}
	if !strings.Contains(err.Error(), "no PDF produced") {
		t.Errorf("error = %v, want missing-output message", err)
	}
}
