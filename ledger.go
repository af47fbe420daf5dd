package mdpdf

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LedgerFileName is the version history file kept in each output
// directory, shared by every output filename written into it.
const LedgerFileName = ".version"

// ledgerDelimiter separates record fields. Field values are sanitized on
// write so the delimiter never appears inside a field.
const ledgerDelimiter = "|"

// ledgerDateLayout and ledgerTimeLayout format the two timestamp fields
// independently: ISO calendar date and 24-hour hour:minute.
const (
	ledgerDateLayout = "2006-01-02"
	ledgerTimeLayout = "15:04"
)

// VersionEntry is one line of the ledger. Author and Note are optional
// and round-trip as empty string on the wire.
type VersionEntry struct {
	Version  int
	Date     string
	Time     string
	Author   string
	Filename string
	Note     string
}

// Line renders the entry as a ledger record without the trailing newline.
func (e VersionEntry) Line() string {
	fields := []string{
		strconv.Itoa(e.Version),
		sanitizeLedgerField(e.Date),
		sanitizeLedgerField(e.Time),
		sanitizeLedgerField(e.Author),
		sanitizeLedgerField(e.Filename),
		sanitizeLedgerField(e.Note),
	}
	return strings.Join(fields, ledgerDelimiter)
}

// ParseVersionLine parses one ledger record. Malformed lines (too few
// fields, non-numeric version, empty filename) report ok=false and are
// skipped by callers, never raised.
func ParseVersionLine(line string) (VersionEntry, bool) {
	parts := strings.Split(strings.TrimSpace(line), ledgerDelimiter)
	if len(parts) < 5 {
		return VersionEntry{}, false
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return VersionEntry{}, false
	}
	if parts[4] == "" {
		return VersionEntry{}, false
	}

	entry := VersionEntry{
		Version:  version,
		Date:     parts[1],
		Time:     parts[2],
		Author:   parts[3],
		Filename: parts[4],
	}
	if len(parts) > 5 {
		entry.Note = parts[5]
	}
	return entry, true
}

// sanitizeLedgerField keeps a field value from breaking the record
// format: the delimiter is replaced and newlines collapse to spaces.
func sanitizeLedgerField(value string) string {
	value = strings.ReplaceAll(value, ledgerDelimiter, "/")
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.TrimSpace(value)
}

// AuthorProber recovers an author from an existing output file's own
// embedded metadata during bootstrap reconciliation. Absence of metadata
// is not an error; implementations return "" when nothing is found.
type AuthorProber interface {
	Author(path string) string
}

// Ledger reads and appends version history records for one output
// directory. It is append-only: existing lines are never rewritten.
// A single ledger file is not safe for concurrent writers; callers
// running conversions into the same directory must serialize externally.
type Ledger struct {
	dir    string
	prober AuthorProber
}

// NewLedger creates a ledger for the given output directory.
func NewLedger(dir string) *Ledger {
	return &Ledger{dir: dir}
}

// SetAuthorProber installs the capability used to recover an author for
// bootstrap entries. Without one, bootstrap authors stay empty.
func (l *Ledger) SetAuthorProber(p AuthorProber) {
	l.prober = p
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return filepath.Join(l.dir, LedgerFileName)
}

// Exists reports whether the ledger file exists on disk.
func (l *Ledger) Exists() bool {
	_, err := os.Stat(l.Path())
	return err == nil
}

// ReadEntries parses every well-formed record in file order. A missing
// ledger file yields no entries and no error.
func (l *Ledger) ReadEntries() ([]VersionEntry, error) {
	file, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading ledger %s: %w", l.Path(), err)
	}
	defer func() { _ = file.Close() }()

	var entries []VersionEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if entry, ok := ParseVersionLine(line); ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", l.Path(), err)
	}
	return entries, nil
}

// HistoryFor returns the entries matching filename exactly, ascending by
// version.
func (l *Ledger) HistoryFor(filename string) ([]VersionEntry, error) {
	entries, err := l.ReadEntries()
	if err != nil {
		return nil, err
	}
	var history []VersionEntry
	for _, entry := range entries {
		if entry.Filename == filename {
			history = append(history, entry)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Version < history[j].Version
	})
	return history, nil
}

// NextVersion returns 1 plus the highest existing version for filename,
// or 1 when the filename has no history. Versions are independent per
// filename and never reused.
func (l *Ledger) NextVersion(filename string) (int, error) {
	history, err := l.HistoryFor(filename)
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, entry := range history {
		if entry.Version > highest {
			highest = entry.Version
		}
	}
	return highest + 1, nil
}

// BuildEntry formats a new record. Empty-string author and note stay
// absent; date and time are formatted independently from the timestamp.
func (l *Ledger) BuildEntry(version int, t time.Time, filename, author, note string) VersionEntry {
	return VersionEntry{
		Version:  version,
		Date:     t.Format(ledgerDateLayout),
		Time:     t.Format(ledgerTimeLayout),
		Author:   strings.TrimSpace(author),
		Filename: filename,
		Note:     strings.TrimSpace(note),
	}
}

// BootstrapEntry synthesizes a version-1 record for an output file that
// predates the ledger, from the file's last-modified time and a
// best-effort author recovered from its embedded metadata. Reports
// ok=false when the file does not exist.
func (l *Ledger) BootstrapEntry(outputPath string) (VersionEntry, bool) {
	info, err := os.Stat(outputPath)
	if err != nil {
		return VersionEntry{}, false
	}

	author := ""
	if l.prober != nil {
		author = l.prober.Author(outputPath)
	}

	return l.BuildEntry(1, info.ModTime(), filepath.Base(outputPath), author, ""), true
}

// AppendEntries writes the bootstrap entry (only while the ledger file
// still does not exist) followed by the given entries, one line each.
// Append mode is used when the file exists, create mode otherwise.
// Failures wrap ErrLedgerWrite: history integrity cannot be guaranteed
// past a partial write, so callers treat this as fatal.
func (l *Ledger) AppendEntries(entries []VersionEntry, bootstrap *VersionEntry) error {
	var lines []string
	if bootstrap != nil && !l.Exists() {
		lines = append(lines, bootstrap.Line())
	}
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	if len(lines) == 0 {
		return nil
	}

	if err := os.MkdirAll(l.dir, 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	file, err := os.OpenFile(l.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	for _, line := range lines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			_ = file.Close()
			return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}
	return nil
}
