package pptx

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// shapeTreeOf returns parsed p:cSld/p:spTree of slide, layout or master.
func shapeTreeOf(root *etree.Element, part string, log *zap.Logger) []*Node {
	csld := root.SelectElement("cSld")
	if csld == nil {
		return nil
	}
	tree := csld.SelectElement("spTree")
	if tree == nil {
		return nil
	}
	return newTreeParser(part, log).shapeTree(tree)
}

// colorMapOverride returns nil when part keeps master color mapping.
func colorMapOverride(root *etree.Element) ColorMap {
	ovr := root.SelectElement("clrMapOvr")
	if ovr == nil {
		return nil
	}
	if el := ovr.SelectElement("overrideClrMapping"); el != nil {
		return parseColorMap(el)
	}
	return nil
}

func parseColorMap(el *etree.Element) ColorMap {
	cm := make(ColorMap, len(el.Attr))
	for _, attr := range el.Attr {
		if attr.Space != "" {
			continue
		}
		cm[attr.Key] = attr.Value
	}
	return cm
}

func parseSlide(name string, doc *etree.Document, log *zap.Logger) *Slide {
	root := doc.Root()
	return &Slide{
		Path:             name,
		Hidden:           root.SelectAttrValue("show", "1") == "0",
		Tree:             shapeTreeOf(root, name, log),
		ColorMapOverride: colorMapOverride(root),
	}
}

func parseLayout(name string, doc *etree.Document, log *zap.Logger) *Layout {
	root := doc.Root()
	l := &Layout{
		Path:             name,
		Tree:             shapeTreeOf(root, name, log),
		ColorMapOverride: colorMapOverride(root),
	}
	if csld := root.SelectElement("cSld"); csld != nil {
		l.Name = csld.SelectAttrValue("name", "")
	}
	l.Index = NewPlaceholderIndex(l.Tree)
	return l
}

func parseMaster(name string, doc *etree.Document, log *zap.Logger) *Master {
	root := doc.Root()
	m := &Master{
		Path: name,
		Tree: shapeTreeOf(root, name, log),
	}
	m.Index = NewPlaceholderIndex(m.Tree)
	if el := root.SelectElement("clrMap"); el != nil {
		m.ColorMap = parseColorMap(el)
	}
	if styles := root.SelectElement("txStyles"); styles != nil {
		tp := newTreeParser(name, log)
		for _, child := range styles.ChildElements() {
			switch child.Tag {
			case "titleStyle":
				m.TextStyles.Title = tp.listStyle(child)
			case "bodyStyle":
				m.TextStyles.Body = tp.listStyle(child)
			case "otherStyle":
				m.TextStyles.Other = tp.listStyle(child)
			}
		}
	}
	return m
}

func parseTheme(name string, doc *etree.Document) *Theme {
	root := doc.Root()
	t := &Theme{
		Path:   name,
		Name:   root.SelectAttrValue("name", ""),
		Colors: make(map[string]Color),
	}
	elements := root.SelectElement("themeElements")
	if elements == nil {
		return t
	}
	if scheme := elements.SelectElement("clrScheme"); scheme != nil {
		for _, slot := range scheme.ChildElements() {
			for _, child := range slot.ChildElements() {
				if c := parseColor(child); c != nil {
					t.Colors[slot.Tag] = *c
					break
				}
			}
		}
	}
	if fonts := elements.SelectElement("fontScheme"); fonts != nil {
		t.MajorLatin = latinTypeface(fonts.SelectElement("majorFont"))
		t.MinorLatin = latinTypeface(fonts.SelectElement("minorFont"))
	}
	return t
}

func latinTypeface(el *etree.Element) string {
	if el == nil {
		return ""
	}
	if latin := el.SelectElement("latin"); latin != nil {
		return latin.SelectAttrValue("typeface", "")
	}
	return ""
}

func parseCoreProperties(doc *etree.Document) Metadata {
	var meta Metadata
	root := doc.Root()
	if root == nil {
		return meta
	}
	for _, child := range root.ChildElements() {
		value := strings.TrimSpace(child.Text())
		switch child.Tag {
		case "title":
			meta.Title = value
		case "creator":
			meta.Creator = value
		case "subject":
			meta.Subject = value
		case "modified":
			meta.Modified = value
		}
	}
	return meta
}
