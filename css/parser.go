package css

import (
	"bytes"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets and inline style strings.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Unsupported constructs are skipped
// and reported in Stylesheet.Warnings.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				sheet.Warnings = append(sheet.Warnings, err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.AtRuleGrammar:
			stmt := strings.TrimSpace(string(data) + " " + joinTokens(parser.Values()))
			sheet.Items = append(sheet.Items, StylesheetItem{Statement: &stmt})

		case css.BeginAtRuleGrammar:
			name := string(data)
			switch name {
			case "@media", "@supports":
				mb := &MediaBlock{Keyword: name, Query: joinTokens(parser.Values())}
				mb.Rules = p.parseNestedRules(parser, sheet)
				sheet.Items = append(sheet.Items, StylesheetItem{MediaBlock: mb})
			case "@font-face", "@page":
				decls := p.parseDeclarations(parser, css.EndAtRuleGrammar)
				sheet.AddRule(decls, name)
			default:
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+name)
				p.log.Debug("Skipping @-rule", zap.String("rule", name))
				skipBlock(parser)
			}

		case css.BeginRulesetGrammar:
			selectors := splitSelectors(parser.Values())
			decls := p.parseDeclarations(parser, css.EndRulesetGrammar)
			if len(selectors) > 0 {
				sheet.AddRule(decls, selectors...)
			}
		}
	}
}

// ParseInline parses style attribute text like "color:#000;font-size:12pt;".
func (p *Parser) ParseInline(style string) Declarations {
	parser := css.NewParser(parse.NewInput(strings.NewReader(style)), true)
	var decls Declarations
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				p.log.Debug("Inline CSS parse error", zap.String("style", style), zap.Error(err))
			}
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if d, ok := declaration(data, parser.Values()); ok {
				decls = append(decls, d)
			}
		}
	}
}

// parseNestedRules reads rulesets until the end of enclosing at-rule.
func (p *Parser) parseNestedRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				sheet.Warnings = append(sheet.Warnings, err.Error())
			}
			return rules
		case css.EndAtRuleGrammar:
			return rules
		case css.BeginRulesetGrammar:
			selectors := splitSelectors(parser.Values())
			decls := p.parseDeclarations(parser, css.EndRulesetGrammar)
			if len(selectors) > 0 {
				rules = append(rules, Rule{Selectors: selectors, Declarations: decls})
			}
		case css.BeginAtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported nested at-rule: "+string(data))
			skipBlock(parser)
		}
	}
}

// parseDeclarations collects declarations until end grammar.
func (p *Parser) parseDeclarations(parser *css.Parser, end css.GrammarType) Declarations {
	var decls Declarations
	for {
		gt, _, data := parser.Next()
		switch gt {
		case end:
			return decls
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err != io.EOF {
				p.log.Debug("CSS declaration error", zap.Error(err))
			}
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if d, ok := declaration(data, parser.Values()); ok {
				decls = append(decls, d)
			}
		}
	}
}

func declaration(name []byte, values []css.Token) (Declaration, bool) {
	value := joinTokens(values)
	if len(name) == 0 || value == "" {
		return Declaration{}, false
	}
	return Declaration{Property: string(name), Value: value}, true
}

// skipBlock skips tokens until the matching end of a block.
func skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// joinTokens renders token data collapsing whitespace runs.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

func splitSelectors(tokens []css.Token) []string {
	var selectors []string
	for s := range strings.SplitSeq(joinTokens(tokens), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}
