package mdpdf

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/RedwanK/markdown-to-pdf/internal/dateutil"
	"github.com/RedwanK/markdown-to-pdf/internal/yamlutil"
)

// frontMatterPattern matches a YAML block delimited by --- lines at the very
// start of the document. Anything else, including a block preceded by a
// blank line, is body text.
var frontMatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\n(.*?\n)---[ \t]*\n`)

// ExtractFrontMatter splits a leading YAML front matter block from the
// document body. Front matter is always optional: a missing block, a YAML
// parse failure, or a non-mapping document all degrade to an empty map and
// the text is returned as is (minus the block when one was found).
func ExtractFrontMatter(text string) (FrontMatter, string) {
	m := frontMatterPattern.FindStringSubmatch(text)
	if m == nil {
		return FrontMatter{}, text
	}

	body := text[len(m[0]):]

	fm := FrontMatter{}
	if err := yamlutil.Unmarshal([]byte(m[1]), &fm); err != nil {
		return FrontMatter{}, body
	}
	return fm, body
}

// MergeFrontMatter merges src into dst in document order: later keys win.
// When both sides hold a mapping for the same key the mappings are merged
// recursively, so the reserved metadata sub-maps of several documents
// combine instead of clobbering each other.
func MergeFrontMatter(dst, src FrontMatter) {
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			MergeFrontMatter(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}

// ResolveMetadata layers front matter over base metadata. Flat known keys
// apply first; the reserved metadata sub-map applies last so it can
// override structured fields already set by flat keys. Unknown keys land
// in Extra. Relative logo paths resolve against baseDir, and date values
// support the auto/auto:FORMAT syntax.
func ResolveMetadata(base Metadata, fm FrontMatter, baseDir string, now time.Time) Metadata {
	meta := base
	for key, value := range fm {
		applyMetadataField(&meta, key, value)
	}
	if sub, ok := fm[metadataKey].(map[string]any); ok {
		for key, value := range sub {
			applyMetadataField(&meta, key, value)
		}
	}

	if meta.LogoPath != "" && !filepath.IsAbs(meta.LogoPath) && baseDir != "" {
		meta.LogoPath = filepath.Join(baseDir, meta.LogoPath)
	}

	if resolved, err := dateutil.ResolveDate(meta.Date, now); err == nil {
		meta.Date = resolved
	}

	return meta
}

// applyMetadataField routes one front matter key into Metadata. Reserved
// keys (metadata, preamble) are handled by the caller and skipped here.
func applyMetadataField(meta *Metadata, key string, value any) {
	switch strings.ToLower(key) {
	case "title":
		meta.Title = scalarString(value)
	case "author":
		meta.Author = scalarString(value)
	case "company":
		meta.Company = scalarString(value)
	case "contact":
		meta.Contact = scalarString(value)
	case "address":
		meta.Address = scalarString(value)
	case "date":
		meta.Date = scalarString(value)
	case "logo_path":
		meta.LogoPath = scalarString(value)
	case metadataKey, preambleKey:
		// Reserved keys, not metadata fields themselves.
	default:
		if meta.Extra == nil {
			meta.Extra = make(map[string]any)
		}
		meta.Extra[key] = value
	}
}

// scalarString renders a front matter scalar as a string. YAML numbers and
// booleans are accepted where the template expects text.
func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
