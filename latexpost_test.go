package mdpdf

import (
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeLatex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		latex string
		want  string
	}{
		{
			name:  "stray continuation line removed",
			latex: "first\n\\\\\nsecond\n",
			want:  "first\nsecond\n",
		},
		{
			name:  "indented stray continuation removed",
			latex: "first\n  \\\\  \nsecond\n",
			want:  "first\nsecond\n",
		},
		{
			name:  "continuation before end dropped",
			latex: "\\begin{tabular}\na\\\\\n\\end{tabular}\n",
			want:  "\\begin{tabular}\na\n\\end{tabular}\n",
		},
		{
			name:  "legitimate mid-table break kept",
			latex: "a \\\\ b\n",
			want:  "a \\\\ b\n",
		},
		{
			name:  "clean text untouched",
			latex: "\\section{Title}\nbody\n",
			want:  "\\section{Title}\nbody\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeLatex(tt.latex); got != tt.want {
				t.Errorf("SanitizeLatex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStabilizeFloats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		latex string
		want  string
	}{
		{
			name:  "bare figure gets placement",
			latex: "\\begin{figure}\n\\end{figure}",
			want:  "\\begin{figure}[H]\n\\end{figure}",
		},
		{
			name:  "bare longtable gets placement",
			latex: "\\begin{longtable}{ll}",
			want:  "\\begin{longtable}[H]{ll}",
		},
		{
			name:  "existing placement untouched",
			latex: "\\begin{figure}[htbp]\n\\end{figure}",
			want:  "\\begin{figure}[htbp]\n\\end{figure}",
		},
		{
			name:  "other environments untouched",
			latex: "\\begin{center}\n\\end{center}",
			want:  "\\begin{center}\n\\end{center}",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StabilizeFloats(tt.latex); got != tt.want {
				t.Errorf("StabilizeFloats() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTocEntries(t *testing.T) {
	t.Parallel()

	latex := `\hypertarget{intro}{%
\section{Introduction}\label{intro}}
body text
\hypertarget{bg}{%
\subsection{Background \textbf{notes}}\label{bg}}
\hypertarget{detail}{%
\subsubsection{Detail}\label{detail-label}}
`

	got := ExtractTocEntries(latex)

	want := []TocEntry{
		{Level: 1, Title: "Introduction", Anchor: "intro", Label: "intro"},
		{Level: 2, Title: `Background \textbf{notes}`, Anchor: "bg", Label: "bg"},
		{Level: 3, Title: "Detail", Anchor: "detail", Label: "detail-label"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTocEntries() = %+v, want %+v", got, want)
	}
}

func TestExtractTocEntries_MultilineTitleCollapsed(t *testing.T) {
	t.Parallel()

	latex := "\\hypertarget{a}{%\n\\section{Long\ntitle}\\label{a}}"

	got := ExtractTocEntries(latex)

	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	if got[0].Title != "Long title" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Long title")
	}
}

func TestLatexPostProcessor_Process(t *testing.T) {
	t.Parallel()

	latex := "\\hypertarget{a}{%\n\\section{A}\\label{a}}\n\\begin{figure}\n\\end{figure}\n"

	t.Run("with toc", func(t *testing.T) {
		t.Parallel()

		out, entries := LatexPostProcessor{IncludeTOC: true}.Process(latex)

		if len(entries) != 1 || entries[0].Title != "A" {
			t.Errorf("entries = %+v, want one titled A", entries)
		}
		if want := "\\begin{figure}[H]"; !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	})

	t.Run("without toc", func(t *testing.T) {
		t.Parallel()

		_, entries := LatexPostProcessor{IncludeTOC: false}.Process(latex)

		if entries != nil {
			t.Errorf("entries = %+v, want nil when TOC disabled", entries)
		}
	})
}
