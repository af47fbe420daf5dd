package mdpdf

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/RedwanK/markdown-to-pdf/internal/latexutil"
)

// maxStylePasses bounds the fixed-point rewrite. Marker count shrinks on
// every productive pass, so hitting the cap means malformed input that
// keeps producing new markers; report it instead of looping forever.
const maxStylePasses = 64

// Precompiled patterns for styled HTML markup.
var (
	brPattern        = regexp.MustCompile(`(?i)<br\s*/?>`)
	styleAttrPattern = regexp.MustCompile(`(?i)style\s*=\s*"([^"]*)"`)

	spanPattern = regexp.MustCompile(`(?is)<span[^>]*style="[^"]*"[^>]*>(.*?)</span>`)
	divPattern  = regexp.MustCompile(`(?is)<div[^>]*style="[^"]*"[^>]*>(.*?)</div>`)
	paraPattern = regexp.MustCompile(`(?is)<p[^>]*style="[^"]*"[^>]*>(.*?)</p>`)

	boldTagPattern      = regexp.MustCompile(`(?is)<b(?:\s[^>]*)?>(.*?)</b>`)
	strongTagPattern    = regexp.MustCompile(`(?is)<strong(?:\s[^>]*)?>(.*?)</strong>`)
	italicTagPattern    = regexp.MustCompile(`(?is)<i(?:\s[^>]*)?>(.*?)</i>`)
	emphasisTagPattern  = regexp.MustCompile(`(?is)<em(?:\s[^>]*)?>(.*?)</em>`)
	underlineTagPattern = regexp.MustCompile(`(?is)<u(?:\s[^>]*)?>(.*?)</u>`)
	codeTagPattern      = regexp.MustCompile(`(?is)<code(?:\s[^>]*)?>(.*?)</code>`)

	hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})`)
	rgbColorPattern = regexp.MustCompile(`(?i)^rgb\s*\(\s*([0-9]{1,3})\s*,\s*([0-9]{1,3})\s*,\s*([0-9]{1,3})\s*\)`)
)

// markerRule binds one marker pattern to its canonical tag. Block markers
// additionally honor text-align declarations.
type markerRule struct {
	pattern *regexp.Regexp
	tag     string
	block   bool
}

// markerRules are applied in order within each rewrite pass. Styled
// span/div/p markers come first, shorthand emphasis markers after.
var markerRules = []markerRule{
	{spanPattern, "span", false},
	{divPattern, "div", true},
	{paraPattern, "p", true},
	{strongTagPattern, "strong", false},
	{boldTagPattern, "b", false},
	{emphasisTagPattern, "em", false},
	{italicTagPattern, "i", false},
	{underlineTagPattern, "u", false},
	{codeTagPattern, "code", false},
}

// StyleTranscoder rewrites inline and block styled HTML markup into LaTeX
// commands. It is a pure text transformation: identity on marker-free
// text and idempotent on its own output.
type StyleTranscoder struct{}

// Transcode converts styled markup in text to LaTeX. Line break shorthand
// is converted first, then the marker rewrite runs to a fixed point.
// Returns ErrStyleRewriteLoop if the rewrite does not settle.
func (t StyleTranscoder) Transcode(text string) (string, error) {
	return t.transcode(brPattern.ReplaceAllString(text, `\\`), 0)
}

// transcode runs the fixed-point marker rewrite. Resolving an outer marker
// can expose nested markers that only become rewritable on the next pass,
// so the whole text is rescanned until a pass changes nothing.
func (t StyleTranscoder) transcode(text string, depth int) (string, error) {
	if depth > maxStylePasses {
		return text, ErrStyleRewriteLoop
	}

	for pass := 0; pass < maxStylePasses; pass++ {
		next, err := t.rewriteOnce(text, depth)
		if err != nil {
			return text, err
		}
		if next == text {
			return text, nil
		}
		text = next
	}
	return text, ErrStyleRewriteLoop
}

// rewriteOnce applies every marker rule once, left to right.
func (t StyleTranscoder) rewriteOnce(text string, depth int) (string, error) {
	var firstErr error
	for _, rule := range markerRules {
		text = rule.pattern.ReplaceAllStringFunc(text, func(match string) string {
			replaced, err := t.replaceMarker(rule, match, depth)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return match
			}
			return replaced
		})
		if firstErr != nil {
			return text, firstErr
		}
	}
	return text, nil
}

// replaceMarker transcodes a single matched marker: inner content first,
// then the marker's own directives around the result.
func (t StyleTranscoder) replaceMarker(rule markerRule, match string, depth int) (string, error) {
	groups := rule.pattern.FindStringSubmatch(match)
	if groups == nil {
		return match, nil
	}
	inner := groups[1]

	decls := parseStyleDecls(styleAttr(match))

	transformed, err := t.transcode(inner, depth+1)
	if err != nil {
		return match, err
	}

	// Untouched content is plain text: escape it unless it already holds
	// LaTeX control sequences from an earlier transcoding step.
	content := transformed
	if transformed == inner {
		plain := html.UnescapeString(inner)
		if shouldEscapeLatex(plain) {
			content = latexutil.Escape(plain)
		} else {
			content = plain
		}
	}

	for _, d := range directivesFor(rule.tag, decls) {
		content = d.wrap(content)
	}

	if rule.block {
		if env, ok := alignmentEnv(decls); ok {
			content = env.begin + "\n" + content + "\n" + env.end
		}
	}

	return content, nil
}

// styleAttr extracts the style attribute value of the marker's open tag.
func styleAttr(match string) string {
	if m := styleAttrPattern.FindStringSubmatch(match); m != nil {
		return m[1]
	}
	return ""
}

// styleDecl is one property:value declaration of a style attribute.
type styleDecl struct {
	property string
	value    string
}

// parseStyleDecls splits a style attribute into ordered declarations.
// Later declarations of the same property win but keep their original
// position, so directive order stays deterministic.
func parseStyleDecls(attr string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(attr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		property, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)

		replaced := false
		for i := range decls {
			if decls[i].property == property {
				decls[i].value = value
				replaced = true
				break
			}
		}
		if !replaced {
			decls = append(decls, styleDecl{property: property, value: value})
		}
	}
	return decls
}

// directive is one LaTeX wrapping keyed by its identity. A directive key
// is applied at most once per marker even when several properties imply
// it, e.g. <b style="font-weight:bold"> wraps \textbf a single time.
type directive struct {
	key  string
	wrap func(string) string
}

// directivesFor computes the ordered, de-duplicated directive set implied
// by a marker's tag kind and its style declarations.
func directivesFor(tag string, decls []styleDecl) []directive {
	var list []directive
	seen := make(map[string]bool)
	add := func(key string, wrap func(string) string) {
		if seen[key] {
			return
		}
		seen[key] = true
		list = append(list, directive{key: key, wrap: wrap})
	}

	switch tag {
	case "b", "strong":
		add("bold", wrapBold)
	case "i", "em":
		add("italic", wrapItalic)
	case "u":
		add("underline", wrapUnderline)
	case "code":
		add("code", wrapCode)
	}

	for _, d := range decls {
		value := strings.ToLower(d.value)
		switch d.property {
		case "color":
			spec := NormalizeColor(d.value)
			add("color:"+spec.Value, wrapForeground(spec))
		case "font-weight":
			if strings.Contains(value, "bold") {
				add("bold", wrapBold)
			}
		case "font-style":
			if strings.Contains(value, "italic") {
				add("italic", wrapItalic)
			}
		case "text-decoration":
			if strings.Contains(value, "underline") {
				add("underline", wrapUnderline)
			}
		case "background-color":
			spec := NormalizeColor(d.value)
			add("background:"+spec.Value, wrapBackground(spec))
		}
	}

	return list
}

func wrapBold(s string) string      { return `\textbf{` + s + `}` }
func wrapItalic(s string) string    { return `\textit{` + s + `}` }
func wrapUnderline(s string) string { return `\underline{` + s + `}` }
func wrapCode(s string) string      { return `\texttt{` + s + `}` }

func wrapForeground(spec ColorSpec) func(string) string {
	return func(s string) string {
		if spec.Mode == ColorHex {
			return `\textcolor[HTML]{` + spec.Value + `}{` + s + `}`
		}
		return `\textcolor{` + spec.Value + `}{` + s + `}`
	}
}

func wrapBackground(spec ColorSpec) func(string) string {
	return func(s string) string {
		if spec.Mode == ColorHex {
			return `\colorbox[HTML]{` + spec.Value + `}{` + s + `}`
		}
		return `\colorbox{` + spec.Value + `}{` + s + `}`
	}
}

// alignment holds the LaTeX environment wrapping an aligned block.
type alignment struct {
	begin string
	end   string
}

// alignmentEnv maps a block's text-align declaration to its environment.
// "justify" shares the flushleft environment with "left"; LaTeX justifies
// by default and a dedicated environment buys nothing.
func alignmentEnv(decls []styleDecl) (alignment, bool) {
	for _, d := range decls {
		if d.property != "text-align" {
			continue
		}
		value := strings.ToLower(d.value)
		switch {
		case strings.Contains(value, "center"):
			return alignment{`\begin{center}`, `\end{center}`}, true
		case strings.Contains(value, "right"):
			return alignment{`\begin{flushright}`, `\end{flushright}`}, true
		case strings.Contains(value, "left"), strings.Contains(value, "justify"):
			return alignment{`\begin{flushleft}`, `\end{flushleft}`}, true
		}
	}
	return alignment{}, false
}

// ColorMode distinguishes explicit hex colors from named colors, which
// need different \textcolor syntax.
type ColorMode int

const (
	ColorNamed ColorMode = iota
	ColorHex
)

// ColorSpec is a normalized CSS color value. Hex colors carry an
// uppercase 6-digit value; named colors pass through unmodified.
type ColorSpec struct {
	Mode  ColorMode
	Value string
}

// NormalizeColor parses a CSS color value.
//   - "#rrggbb" is uppercased
//   - "#rgb" expands each digit by doubling
//   - "rgb(r,g,b)" clamps each component to [0,255]
//   - anything else is treated as a named color
func NormalizeColor(raw string) ColorSpec {
	raw = strings.TrimSpace(raw)

	if m := hexColorPattern.FindStringSubmatch(raw); m != nil {
		hex := m[1]
		if len(hex) == 3 {
			var doubled strings.Builder
			for _, ch := range hex {
				doubled.WriteRune(ch)
				doubled.WriteRune(ch)
			}
			hex = doubled.String()
		}
		return ColorSpec{Mode: ColorHex, Value: strings.ToUpper(hex)}
	}

	if m := rgbColorPattern.FindStringSubmatch(raw); m != nil {
		var hex strings.Builder
		for _, component := range m[1:] {
			n, _ := strconv.Atoi(component)
			if n > 255 {
				n = 255
			}
			fmt.Fprintf(&hex, "%02X", n)
		}
		return ColorSpec{Mode: ColorHex, Value: hex.String()}
	}

	return ColorSpec{Mode: ColorNamed, Value: raw}
}

// shouldEscapeLatex reports whether plain text is safe to escape. Text
// already containing control sequences or braces came from a nested
// transcoding step; escaping it again would corrupt the output.
func shouldEscapeLatex(value string) bool {
	return !strings.ContainsAny(value, `\{}`)
}
