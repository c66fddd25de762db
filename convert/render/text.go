package render

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pptxhtml/css"
	"pptxhtml/pptx"
)

const nbsp = "\u00a0"

func (s *slideRenderer) textBody(parent *etree.Element, body *pptx.TextBody, in inheritance) {
	for i := range body.Paragraphs {
		s.paragraph(parent, body, &body.Paragraphs[i], in)
	}
}

func (s *slideRenderer) paragraph(parent *etree.Element, body *pptx.TextBody, p *pptx.Paragraph, in inheritance) {
	lvl := p.Props.LevelValue()
	tl := newTextLevels(in, body, s.chain.Master.TextStyles, lvl)

	div := parent.CreateElement("div")
	div.CreateAttr("class", "paragraph "+s.alignClass(tl, p.Props))
	if p.Props.IsRTL() {
		div.CreateAttr("dir", "rtl")
	}

	// bullet takes color and size of the first run
	lead := p.End
	if len(p.Runs) > 0 {
		lead = p.Runs[0].Props
	}
	s.bullet(div, tl, p.Props, lvl, s.runStyle(tl, p.Props, lead))

	if len(p.Runs) == 0 {
		s.run(div, tl, p.Props, &pptx.Run{Kind: pptx.RunText, Props: p.End})
		return
	}
	for i := range p.Runs {
		r := &p.Runs[i]
		if r.Kind == pptx.RunBreak {
			div.CreateElement("br")
			continue
		}
		s.run(div, tl, p.Props, r)
	}
}

// alignClass resolves horizontal alignment through the cascade, placeholder
// type decides when nothing is set.
func (s *slideRenderer) alignClass(tl textLevels, own *pptx.ParagraphProperties) string {
	algn, ok := first(alignOf, tl.paragraphSources(own)...)
	if !ok {
		switch {
		case tl.in.isTitle():
			return "h-mid"
		case tl.in.phType == "sldNum":
			return "h-right"
		}
		return "h-left"
	}
	switch algn {
	case "ctr":
		return "h-mid"
	case "r":
		return "h-right"
	case "just", "dist":
		return "h-just"
	}
	return "h-left"
}

// runStyle is resolved presentation of a text run.
type runStyle struct {
	color string
	// points, valid when sized is set
	size  float64
	sized bool
	decls css.Declarations
}

func (s *slideRenderer) runStyle(tl textLevels, para *pptx.ParagraphProperties, own *pptx.RunProperties) runStyle {
	srcs := tl.runSources(own, para)
	var st runStyle

	st.color = "#000"
	if c, ok := first(fillColorOf, srcs...); ok {
		st.color = cssColor(s.colors.resolve(c))
	}

	fontSize := "inherit"
	if sz, ok := first((*pptx.RunProperties).SizeValue, srcs...); ok {
		st.size, st.sized = float64(sz)/100, true
	} else if sz, ok := tl.in.literalSize(); ok {
		st.size, st.sized = float64(sz)/100, true
	}
	if st.sized {
		if own != nil && own.Baseline != nil {
			st.size -= 10
		}
		fontSize = formatNumber(st.size) + "pt"
	}

	family := "inherit"
	if latin, ok := first((*pptx.RunProperties).LatinValue, srcs...); ok {
		family = s.typeface(latin)
	} else if f := s.themeFont(tl.in); f != "" {
		family = f
	}

	weight := "initial"
	if b, ok := first((*pptx.RunProperties).BoldValue, srcs...); ok && b {
		weight = "bold"
	}
	style := "normal"
	if it, ok := first((*pptx.RunProperties).ItalicValue, srcs...); ok && it {
		style = "italic"
	}
	u, _ := first((*pptx.RunProperties).UnderlineValue, srcs...)
	strike, _ := first((*pptx.RunProperties).StrikeValue, srcs...)

	valign := "baseline"
	if own != nil && own.Baseline != nil {
		valign = formatNumber(float64(*own.Baseline)/1000) + "%"
	}

	st.decls = css.Declarations{
		{Property: "color", Value: st.color},
		{Property: "font-size", Value: fontSize},
		{Property: "font-family", Value: family},
		{Property: "font-weight", Value: weight},
		{Property: "font-style", Value: style},
		{Property: "text-decoration", Value: decoration(u, strike)},
		{Property: "vertical-align", Value: valign},
	}
	if own != nil && own.Highlight != nil {
		st.decls = append(st.decls, css.Declaration{Property: "background-color", Value: cssColor(s.colors.resolve(own.Highlight))})
		if own.Highlight.Tint != nil {
			st.decls = append(st.decls, css.Declaration{Property: "opacity", Value: formatNumber(opacity(own.Highlight))})
		}
	}
	return st
}

// typeface resolves theme font references.
func (s *slideRenderer) typeface(latin string) string {
	theme := s.chain.Theme
	switch {
	case strings.HasPrefix(latin, "+mj") && theme != nil && theme.MajorLatin != "":
		return theme.MajorLatin
	case strings.HasPrefix(latin, "+mn") && theme != nil && theme.MinorLatin != "":
		return theme.MinorLatin
	case strings.HasPrefix(latin, "+"):
		return "inherit"
	}
	return latin
}

func (s *slideRenderer) themeFont(in inheritance) string {
	if s.chain.Theme == nil {
		return ""
	}
	if in.isTitle() {
		return s.chain.Theme.MajorLatin
	}
	return s.chain.Theme.MinorLatin
}

func decoration(u, strike string) string {
	underline := u != "" && u != "none"
	struck := strike != "" && strike != "noStrike"
	switch {
	case underline && struck:
		return "underline line-through"
	case underline:
		return "underline"
	case struck:
		return "line-through"
	}
	return "initial"
}

func (s *slideRenderer) run(parent *etree.Element, tl textLevels, para *pptx.ParagraphProperties, r *pptx.Run) {
	st := s.runStyle(tl, para, r.Props)
	span := parent.CreateElement("span")
	span.CreateAttr("class", "text-block "+s.styles.Intern(st.decls))

	text := nbsp
	if r.Text != nil && *r.Text != "" {
		text = *r.Text
	}
	target := span
	if r.Props != nil && r.Props.Link != nil {
		if href, external, ok := s.linkTarget(r.Props.Link); ok {
			target = span.CreateElement("a")
			target.CreateAttr("href", href)
			if external {
				target.CreateAttr("target", "_blank")
			}
			if r.Props.Link.Tooltip != "" {
				target.CreateAttr("title", r.Props.Link.Tooltip)
			}
		}
	}
	target.SetText(text)
}

// linkTarget resolves hyperlink relationship. Links to slides of the same
// deck point to their sections.
func (s *slideRenderer) linkTarget(link *pptx.Hyperlink) (string, bool, bool) {
	if link.RelID == "" {
		return "", false, false
	}
	rel, ok := s.chain.Slide.Rels.ByID(link.RelID)
	if !ok {
		s.warn("Hyperlink relationship not found, ignoring", zap.String("id", link.RelID))
		return "", false, false
	}
	if rel.External {
		return rel.Target, true, true
	}
	if n, ok := s.slideNumbers[rel.Target]; ok {
		return "#" + slideAnchor(n), false, true
	}
	s.log.Debug("Hyperlink target is not a slide, ignoring", zap.String("target", rel.Target))
	return "", false, false
}
