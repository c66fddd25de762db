package render

import (
	"strconv"

	"github.com/beevik/etree"

	"pptxhtml/css"
	"pptxhtml/pptx"
)

// bulletIndent is default indentation step of outline levels.
const bulletIndent pptx.Emu = 328600

func (s *slideRenderer) bullet(parent *etree.Element, tl textLevels, own *pptx.ParagraphProperties, lvl int, lead runStyle) {
	srcs := tl.paragraphSources(own)
	bu, ok := first(bulletOf, srcs...)

	margin := px(bulletIndent) * float64(lvl)
	if marL, ok := first(marginOf, srcs...); ok {
		margin = px(marL)
	}
	rtl := own.IsRTL()

	if !ok || bu.Kind == pptx.BulletNone {
		if margin > 0 {
			span := parent.CreateElement("span")
			span.CreateAttr("class", "bullet-none")
			span.CreateAttr("style", css.Declarations{{Property: "margin-left", Value: formatPx(margin)}}.Inline())
		}
		return
	}

	color := lead.color
	if bu.Color != nil {
		color = cssColor(s.colors.resolve(bu.Color))
	}
	size := ""
	switch {
	case bu.SizePts != nil:
		size = formatNumber(float64(*bu.SizePts)/100) + "pt"
	case bu.SizePct != nil && lead.sized:
		size = formatNumber(float64(*bu.SizePct)/100000*lead.size) + "pt"
	case lead.sized:
		size = formatNumber(lead.size) + "pt"
	}

	decls := css.Declarations{{Property: "margin-left", Value: formatPx(margin)}}
	if bu.Font != nil && bu.Font.Typeface != "" && bu.Kind == pptx.BulletChar {
		decls = append(decls, css.Declaration{Property: "font-family", Value: s.typeface(bu.Font.Typeface)})
	}
	decls = append(decls, css.Declaration{Property: "color", Value: color})
	if size != "" {
		decls = append(decls, css.Declaration{Property: "font-size", Value: size})
	}
	if rtl {
		decls = append(decls,
			css.Declaration{Property: "float", Value: "right"},
			css.Declaration{Property: "direction", Value: "rtl"})
	}

	span := parent.CreateElement("span")
	switch bu.Kind {
	case pptx.BulletChar:
		span.CreateAttr("class", "bullet")
		span.SetText(bu.Char)
	case pptx.BulletAutoNum:
		if !rtl {
			decls = append(decls,
				css.Declaration{Property: "float", Value: "left"},
				css.Declaration{Property: "direction", Value: "ltr"})
		}
		span.CreateAttr("class", numericBulletClass)
		span.CreateAttr("data-bulltname", bu.AutoNum)
		span.CreateAttr("data-bulltlvl", strconv.Itoa(lvl))
		if bu.StartAt != nil {
			span.CreateAttr("data-bulltstart", strconv.Itoa(*bu.StartAt))
		}
	case pptx.BulletPicture:
		span.CreateAttr("class", "bullet")
		decls = append(decls, css.Declaration{Property: "display", Value: "inline-block"})
		if size != "" {
			decls = append(decls, css.Declaration{Property: "width", Value: size})
		}
		if uri, ok := s.imageURI(s.chain.Slide.Rels, bu.BlipID); ok {
			img := span.CreateElement("img")
			img.CreateAttr("src", uri)
			img.CreateAttr("style", "width:100%;height:100%;")
		} else {
			span.SetText("\u2023")
		}
	}
	span.CreateAttr("style", decls.Inline())
}
