package mdpdf

// FrontMatter is the parsed YAML preamble of a document. Keys the core does
// not recognize stay in the map untouched; routing them anywhere (template
// context, Metadata.Extra) is the caller's concern.
type FrontMatter map[string]any

// metadataKey is the reserved front matter sub-map applied after flat keys,
// so structured fields can override values already set at the top level.
const metadataKey = "metadata"

// preambleKey is the front matter key whose value is injected verbatim into
// the LaTeX preamble.
const preambleKey = "preamble"

// Metadata holds the document fields rendered into the LaTeX template
// header and cover page.
type Metadata struct {
	Title    string         `yaml:"title"`
	Author   string         `yaml:"author"`
	Company  string         `yaml:"company"`
	Contact  string         `yaml:"contact"`
	Address  string         `yaml:"address"`
	Date     string         `yaml:"date"`
	LogoPath string         `yaml:"logo_path"`
	Extra    map[string]any `yaml:"extra"`
}

// TocEntry is one sectioning command extracted from the converted LaTeX.
// Level runs from 1 (section) to 5 (subparagraph). Anchor is the
// hypertarget id, Label the \label id; Pandoc emits them identically but
// the extractor does not rely on that.
type TocEntry struct {
	Level  int
	Title  string
	Anchor string
	Label  string
}
