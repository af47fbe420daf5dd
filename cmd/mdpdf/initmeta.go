package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/RedwanK/markdown-to-pdf/internal/assets"
)

// ErrMetadataExists is returned when init-metadata would overwrite a file.
var ErrMetadataExists = errors.New("metadata file already exists")

// defaultMetadataFile is where init-metadata writes its scaffold.
const defaultMetadataFile = "metadata.yaml"

// runInitMetadata writes the metadata scaffold to the current directory
// or to the path given as first argument. Existing files are never
// overwritten.
func runInitMetadata(args []string, env *Environment) error {
	path := defaultMetadataFile
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrMetadataExists, path)
	}

	if err := os.WriteFile(path, []byte(assets.MetadataTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing metadata scaffold: %w", err)
	}
	fmt.Fprintln(env.Stdout, path)
	return nil
}
