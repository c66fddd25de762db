package css

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestParser_Rules(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))
	sheet := p.Parse([]byte(`
/* comment */
@charset "utf-8";
section { position: relative; margin: 10px auto }
.block, .h-mid { display: block; text-align: center; }
td > .content { color: #000 !important; }
`), "test")

	if len(sheet.Items) != 4 {
		t.Fatalf("items = %d, want 4: %s", len(sheet.Items), sheet)
	}
	if stmt := sheet.Items[0].Statement; stmt == nil || *stmt != `@charset "utf-8"` {
		t.Errorf("statement = %v", stmt)
	}

	section := sheet.Rules("section")
	if len(section) != 1 {
		t.Fatalf("section rules = %d", len(section))
	}
	if v, ok := section[0].Declarations.Get("margin"); !ok || v != "10px auto" {
		t.Errorf("margin = %q", v)
	}

	grouped := sheet.Rules(".h-mid")
	if len(grouped) != 1 || len(grouped[0].Selectors) != 2 || grouped[0].Selectors[0] != ".block" {
		t.Errorf("grouped = %+v", grouped)
	}

	child := sheet.Items[3].Rule
	if child == nil || child.Selectors[0] != "td>.content" && child.Selectors[0] != "td > .content" {
		t.Errorf("child selector = %+v", child)
	}
}

func TestParser_AtRules(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))
	sheet := p.Parse([]byte(`
@font-face { font-family: "Deck Sans"; src: url(deck.woff2); }
@media print { section { page-break-after: always; } }
@keyframes spin { from { opacity: 0 } to { opacity: 1 } }
span { color: red; }
`))

	if len(sheet.Items) != 3 {
		t.Fatalf("items = %d, want 3: %s", len(sheet.Items), sheet)
	}
	ff := sheet.Items[0].Rule
	if ff == nil || !ff.IsAtRule() {
		t.Fatalf("font-face = %+v", sheet.Items[0])
	}
	if v, _ := ff.Declarations.Get("font-family"); v != `"Deck Sans"` {
		t.Errorf("font-family = %q", v)
	}
	mb := sheet.Items[1].MediaBlock
	if mb == nil || mb.Keyword != "@media" || mb.Query != "print" || len(mb.Rules) != 1 {
		t.Fatalf("media = %+v", mb)
	}
	if sheet.Items[2].Rule == nil || sheet.Items[2].Rule.Selectors[0] != "span" {
		t.Errorf("rule after skipped at-rule = %+v", sheet.Items[2])
	}
	if len(sheet.Warnings) == 0 || !strings.Contains(sheet.Warnings[0], "@keyframes") {
		t.Errorf("warnings = %v", sheet.Warnings)
	}
}

func TestParser_ParseInline(t *testing.T) {
	p := NewParser(nil)
	style := "color:#1F497D;font-size:32pt;font-family:Calibri Light;font-weight:initial;font-style:normal;text-decoration:initial;"
	decls := p.ParseInline(style)

	if len(decls) != 6 {
		t.Fatalf("declarations = %d, want 6: %+v", len(decls), decls)
	}
	if v, _ := decls.Get("font-family"); v != "Calibri Light" {
		t.Errorf("font-family = %q", v)
	}
	if v, _ := decls.Get("color"); v != "#1F497D" {
		t.Errorf("color = %q", v)
	}
	if got := decls.Inline(); got != style {
		t.Errorf("Inline() = %q, want %q", got, style)
	}

	if d := p.ParseInline(""); len(d) != 0 {
		t.Errorf("empty style = %+v", d)
	}
}

func TestDeclarations_GetLastWins(t *testing.T) {
	d := Declarations{{"color", "red"}, {"color", "blue"}}
	if v, _ := d.Get("color"); v != "blue" {
		t.Errorf("Get() = %q, want blue", v)
	}
	if _, ok := d.Get("margin"); ok {
		t.Error("unexpected margin")
	}
}

func TestScopeSelector(t *testing.T) {
	tests := []struct{ sel, want string }{
		{"section", ".w section"},
		{".block .h-mid", ".w .block .h-mid"},
		{"body", ".w"},
		{"html", ".w"},
		{"body section", ".w section"},
		{":root", ".w"},
	}
	for _, tt := range tests {
		if got := ScopeSelector(tt.sel, ".w"); got != tt.want {
			t.Errorf("ScopeSelector(%q) = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestStylesheet_Scoped(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))
	sheet := p.Parse([]byte(`@font-face { font-family: X; } section, .slide { margin: 0; } @media print { td { color: black; } }`))
	scoped := sheet.Scoped(".pptx-wrapper")

	got := scoped.String()
	want := "@font-face {\n  font-family: X;\n}\n" +
		".pptx-wrapper section, .pptx-wrapper .slide {\n  margin: 0;\n}\n" +
		"@media print {\n  .pptx-wrapper td {\n    color: black;\n  }\n}\n"
	if got != want {
		t.Errorf("Scoped() =\n%s\nwant\n%s", got, want)
	}

	// original is not modified
	if sheet.Items[1].Rule.Selectors[0] != "section" {
		t.Error("source stylesheet was modified")
	}
}

func TestStylesheet_AppendAndWrite(t *testing.T) {
	a := &Stylesheet{}
	a.AddRule(Declarations{{"color", "#000"}}, "section ._css_0")
	b := &Stylesheet{}
	b.AddRule(Declarations{{"color", "#FFF"}}, "section ._css_1")
	a.Append(b)
	a.Append(nil)

	var sb strings.Builder
	n, err := a.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if int(n) != sb.Len() {
		t.Errorf("WriteTo() = %d bytes, wrote %d", n, sb.Len())
	}
	want := "section ._css_0 {\n  color: #000;\n}\nsection ._css_1 {\n  color: #FFF;\n}\n"
	if sb.String() != want {
		t.Errorf("output =\n%s", sb.String())
	}
}
