// Package assets carries the embedded default LaTeX template and the
// metadata scaffold, so the binary works without any files installed.
package assets

import "embed"

//go:embed templates metadata
var fs embed.FS

// DefaultTemplate returns the embedded LaTeX document template.
func DefaultTemplate() string {
	data, err := fs.ReadFile("templates/document.tex.tmpl")
	if err != nil {
		// Embedded files are fixed at build time.
		panic("assets: embedded template missing: " + err.Error())
	}
	return string(data)
}

// MetadataTemplate returns the embedded metadata scaffold written by the
// init-metadata command.
func MetadataTemplate() string {
	data, err := fs.ReadFile("metadata/metadata.yaml")
	if err != nil {
		panic("assets: embedded metadata scaffold missing: " + err.Error())
	}
	return string(data)
}
