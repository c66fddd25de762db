package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single property: value pair. Value keeps source text
// with whitespace normalized.
type Declaration struct {
	Property string
	Value    string
}

// Declarations keep source order, later duplicates override earlier ones
// when looked up.
type Declarations []Declaration

// Get returns value of the last declaration of the property.
func (d Declarations) Get(property string) (string, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Property == property {
			return d[i].Value, true
		}
	}
	return "", false
}

// Inline renders declarations in style attribute form: "a:b;c:d;".
func (d Declarations) Inline() string {
	var sb strings.Builder
	for _, decl := range d {
		sb.WriteString(decl.Property)
		sb.WriteByte(':')
		sb.WriteString(decl.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// Rule is a qualified rule. At-rules holding declarations (@font-face,
// @page) are rules with a single selector naming the at-rule.
type Rule struct {
	Selectors    []string
	Declarations Declarations
}

// IsAtRule reports rules like @font-face which have no real selectors.
func (r Rule) IsAtRule() bool {
	return len(r.Selectors) == 1 && strings.HasPrefix(r.Selectors[0], "@")
}

// MediaBlock is @media (or @supports) with nested rules.
type MediaBlock struct {
	Keyword string
	Query   string
	Rules   []Rule
}

// StylesheetItem is a single top-level item. Exactly one field is set.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
	// statement at-rule kept verbatim, @import or @charset
	Statement *string
}

// Stylesheet is a parsed style sheet in source order.
type Stylesheet struct {
	Items    []StylesheetItem
	Warnings []string
}

// AddRule appends a rule.
func (s *Stylesheet) AddRule(decls Declarations, selectors ...string) {
	s.Items = append(s.Items, StylesheetItem{Rule: &Rule{Selectors: selectors, Declarations: decls}})
}

// Append adds all items of other stylesheet after own items.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// Rules returns top level rules matching selector exactly.
func (s *Stylesheet) Rules(selector string) []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule == nil {
			continue
		}
		for _, sel := range item.Rule.Selectors {
			if sel == selector {
				rules = append(rules, *item.Rule)
				break
			}
		}
	}
	return rules
}

// Scoped returns copy of the stylesheet with every selector limited to
// descendants of scope. Document level selectors (html, body, :root) are
// replaced by scope itself. At-rules with declarations are not changed.
func (s *Stylesheet) Scoped(scope string) *Stylesheet {
	out := &Stylesheet{Warnings: s.Warnings}
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			r := scopeRule(*item.Rule, scope)
			out.Items = append(out.Items, StylesheetItem{Rule: &r})
		case item.MediaBlock != nil:
			mb := &MediaBlock{Keyword: item.MediaBlock.Keyword, Query: item.MediaBlock.Query}
			for _, r := range item.MediaBlock.Rules {
				mb.Rules = append(mb.Rules, scopeRule(r, scope))
			}
			out.Items = append(out.Items, StylesheetItem{MediaBlock: mb})
		default:
			out.Items = append(out.Items, item)
		}
	}
	return out
}

func scopeRule(r Rule, scope string) Rule {
	if r.IsAtRule() || scope == "" {
		return r
	}
	scoped := Rule{Declarations: r.Declarations, Selectors: make([]string, 0, len(r.Selectors))}
	for _, sel := range r.Selectors {
		scoped.Selectors = append(scoped.Selectors, ScopeSelector(sel, scope))
	}
	return scoped
}

// ScopeSelector prefixes a single selector with scope.
func ScopeSelector(sel, scope string) string {
	head, rest, _ := strings.Cut(sel, " ")
	switch strings.ToLower(head) {
	case "html", "body", ":root":
		if rest == "" {
			return scope
		}
		return scope + " " + rest
	}
	return scope + " " + sel
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, item := range s.Items {
		switch {
		case item.Statement != nil:
			cw.printf("%s;\n", *item.Statement)
		case item.Rule != nil:
			writeRule(cw, "", item.Rule)
		case item.MediaBlock != nil:
			cw.printf("%s %s {\n", item.MediaBlock.Keyword, item.MediaBlock.Query)
			for i := range item.MediaBlock.Rules {
				writeRule(cw, "  ", &item.MediaBlock.Rules[i])
			}
			cw.printf("}\n")
		}
	}
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(cw *countingWriter, indent string, r *Rule) {
	cw.printf("%s%s {\n", indent, strings.Join(r.Selectors, ", "))
	for _, d := range r.Declarations {
		cw.printf("%s  %s: %s;\n", indent, d.Property, d.Value)
	}
	cw.printf("%s}\n", indent)
}

// countingWriter remembers the first error, subsequent writes are no-ops.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}
