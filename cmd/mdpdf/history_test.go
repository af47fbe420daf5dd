package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mdpdf "github.com/RedwanK/markdown-to-pdf"
)

func TestRunHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ledgerContent := strings.Join([]string{
		"1|2024-03-15|10:30|Ann|report.pdf|first draft",
		"2|2024-03-16|09:00|Bob|report.pdf|review fixes",
		"1|2024-03-15|10:30|Ann|other.pdf|unrelated",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, mdpdf.LedgerFileName), []byte(ledgerContent), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	env := &Environment{Now: time.Now, Stdout: &out, Stderr: os.Stderr}

	if err := runHistory([]string{"-o", dir, "report.pdf"}, env); err != nil {
		t.Fatalf("runHistory() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "first draft") || !strings.Contains(got, "review fixes") {
		t.Errorf("output missing entries:\n%s", got)
	}
	if strings.Contains(got, "unrelated") {
		t.Errorf("output leaked another file's history:\n%s", got)
	}
	if !strings.Contains(got, "VERSION") {
		t.Errorf("output missing header:\n%s", got)
	}
}

func TestRunHistory_NoEntries(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	env := &Environment{Now: time.Now, Stdout: &out, Stderr: os.Stderr}

	if err := runHistory([]string{"-o", t.TempDir(), "report.pdf"}, env); err != nil {
		t.Fatalf("runHistory() error = %v", err)
	}
	if !strings.Contains(out.String(), "no versions recorded") {
		t.Errorf("output = %q, want empty-history message", out.String())
	}
}

func TestRunHistory_MissingFilename(t *testing.T) {
	t.Parallel()

	err := runHistory(nil, testEnv())
	if !errors.Is(err, ErrMissingFilename) {
		t.Errorf("error = %v, want ErrMissingFilename", err)
	}
}
