package render

import (
	"strconv"

	"pptxhtml/css"
)

// StyleTable interns run styles. Identical declaration lists share one
// generated class name, names are minted sequentially in order of first use.
// StyleTable is not safe for concurrent use.
type StyleTable struct {
	names map[string]string
	rules []styleRule
}

type styleRule struct {
	name  string
	decls css.Declarations
}

func NewStyleTable() *StyleTable {
	return &StyleTable{names: make(map[string]string)}
}

// Intern returns class name for the style, minting a new one when style was
// never seen before.
func (t *StyleTable) Intern(decls css.Declarations) string {
	key := decls.Inline()
	if name, ok := t.names[key]; ok {
		return name
	}
	name := "_css_" + strconv.Itoa(len(t.rules)+1)
	t.names[key] = name
	t.rules = append(t.rules, styleRule{name: name, decls: decls})
	return name
}

// Len returns number of distinct styles.
func (t *StyleTable) Len() int {
	return len(t.rules)
}

// Stylesheet returns one rule per interned style, in minting order.
func (t *StyleTable) Stylesheet() *css.Stylesheet {
	sheet := &css.Stylesheet{}
	for _, r := range t.rules {
		sheet.AddRule(r.decls, "section ."+r.name)
	}
	return sheet
}
