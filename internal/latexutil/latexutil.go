// Package latexutil provides LaTeX text helpers.
package latexutil

import "strings"

// escaper rewrites LaTeX special characters in plain text. Backslash must
// be handled by the replacer in one pass; building the output rune by rune
// would re-escape the braces of \textbackslash{}.
var escaper = strings.NewReplacer(
	"\\", `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

// Escape rewrites LaTeX special characters so value renders literally.
func Escape(value string) string {
	return escaper.Replace(value)
}
