package pptx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"pptxhtml/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the loaded package: slides with their
// shape trees and every layout, master and theme loaded so far. Media data is
// never included. Intended for debug reports.
func (p *Presentation) String() string {
	if p == nil {
		return "<nil Presentation>"
	}
	return treeWriter{debug.NewTreeWriter()}.presentation(p).String()
}

func (tw treeWriter) presentation(p *Presentation) treeWriter {
	tw.Line(0, "Presentation part=%q size=%dx%d", p.Path, p.Size.CX, p.Size.CY)
	tw.TextBlock(1, "Title", p.Meta.Title)
	tw.TextBlock(1, "Creator", p.Meta.Creator)
	for _, s := range p.Slides {
		tw.Line(1, "Slide[%d] part=%q layout=%q hidden=%t", s.Number, s.Path, s.LayoutPath, s.Hidden)
		tw.colorMap(2, "ColorMapOverride", s.ColorMapOverride)
		tw.rels(2, s.Rels)
		tw.nodes(2, s.Tree)
	}
	for _, name := range sortedKeys(p.layouts) {
		l := p.layouts[name]
		tw.Line(1, "Layout part=%q name=%q master=%q", l.Path, l.Name, l.MasterPath)
		tw.colorMap(2, "ColorMapOverride", l.ColorMapOverride)
		tw.nodes(2, l.Tree)
	}
	for _, name := range sortedKeys(p.masters) {
		m := p.masters[name]
		tw.Line(1, "Master part=%q theme=%q", m.Path, m.ThemePath)
		tw.colorMap(2, "ColorMap", m.ColorMap)
		tw.listStyle(2, "TitleStyle", m.TextStyles.Title)
		tw.listStyle(2, "BodyStyle", m.TextStyles.Body)
		tw.listStyle(2, "OtherStyle", m.TextStyles.Other)
		tw.nodes(2, m.Tree)
	}
	for _, name := range sortedKeys(p.themes) {
		t := p.themes[name]
		tw.Line(1, "Theme part=%q name=%q major=%q minor=%q", t.Path, t.Name, t.MajorLatin, t.MinorLatin)
		for _, slot := range sortedKeys(t.Colors) {
			c := t.Colors[slot]
			tw.Line(2, "%s: %s", slot, colorString(&c))
		}
	}
	return tw
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}

func (tw treeWriter) rels(depth int, rels Relationships) {
	for _, id := range sortedKeys(rels) {
		rel := rels[id]
		tw.Line(depth, "Rel %s type=%s target=%q external=%t", rel.ID, rel.Type, rel.Target, rel.External)
	}
}

func (tw treeWriter) colorMap(depth int, label string, cm ColorMap) {
	if cm == nil {
		return
	}
	kv := make([]string, 0, 2*len(cm))
	for _, k := range sortedKeys(cm) {
		kv = append(kv, k, cm[k])
	}
	tw.Pairs(depth, label, kv...)
}

func (tw treeWriter) nodes(depth int, nodes []*Node) {
	for _, n := range nodes {
		tw.node(depth, n)
	}
}

func (tw treeWriter) node(depth int, n *Node) {
	var phType, phIdx string
	if n.Placeholder != nil {
		phType, phIdx = n.Placeholder.Type, n.Placeholder.Idx
	}
	tw.Pairs(depth, fmt.Sprintf("%s #%d", n.Kind, n.Order),
		"id", n.ID, "name", strconv.Quote(n.Name), "phType", phType, "phIdx", phIdx)
	if x := n.Props.Xfrm; x != nil {
		tw.Line(depth+1, "Xfrm %s rot=%d flipH=%t flipV=%t", transformString(x), x.Rotation, x.FlipH, x.FlipV)
	}
	if n.Props.Preset != "" {
		tw.Line(depth+1, "Preset %s", n.Props.Preset)
	}
	if g := n.Props.Custom; g != nil {
		for i, path := range g.Paths {
			tw.Line(depth+1, "Path[%d] %dx%d points=%d closed=%t", i, path.Width, path.Height, len(path.Points), path.Closed)
		}
	}
	if f := n.Props.Fill; f != nil {
		tw.Line(depth+1, "Fill %s %s", f.Kind, colorString(f.Color))
	}
	if pic := n.Picture; pic != nil {
		tw.Line(depth+1, "Picture embed=%q link=%q", pic.EmbedID, pic.LinkID)
		if pic.Media != nil {
			tw.Line(depth+2, "Media %s rel=%q", pic.Media.Kind, pic.Media.RelID)
		}
	}
	if tbl := n.Table; tbl != nil {
		tw.Line(depth+1, "Table cols=%d rows=%d", len(tbl.Grid), len(tbl.Rows))
		for r, row := range tbl.Rows {
			for c, cell := range row.Cells {
				tw.Line(depth+2, "Cell[%d,%d] span=%dx%d merged=%t", r, c, cell.GridSpan, cell.RowSpan, cell.HMerge || cell.VMerge)
				tw.textBody(depth+3, cell.Text)
			}
		}
	}
	tw.textBody(depth+1, n.Text)
	tw.nodes(depth+1, n.Children)
}

func (tw treeWriter) textBody(depth int, body *TextBody) {
	if body == nil {
		return
	}
	tw.Line(depth, "TextBody anchor=%q paragraphs=%d", body.Body.Anchor, len(body.Paragraphs))
	tw.listStyle(depth+1, "ListStyle", body.ListStyle)
	for i, para := range body.Paragraphs {
		tw.Line(depth+1, "Paragraph[%d] lvl=%d algn=%q bullet=%q", i, para.Props.LevelValue(), para.Props.AlignValue(), bulletString(para.Props))
		for _, run := range para.Runs {
			switch run.Kind {
			case RunBreak:
				tw.Line(depth+2, "Break")
			default:
				text := ""
				if run.Text != nil {
					text = *run.Text
				}
				tw.TextBlock(depth+2, string(run.Kind), text)
			}
		}
	}
}

func (tw treeWriter) listStyle(depth int, label string, ls *ListStyle) {
	if ls == nil {
		return
	}
	var levels []string
	for i, pp := range ls.Levels {
		if pp == nil {
			continue
		}
		desc := fmt.Sprintf("lvl%d", i+1)
		if sz, ok := pp.RunDefaults().SizeValue(); ok {
			desc += fmt.Sprintf(":sz=%d", sz)
		}
		levels = append(levels, desc)
	}
	tw.Line(depth, "%s %s", label, strings.Join(levels, " "))
}

func bulletString(pp *ParagraphProperties) string {
	if pp == nil {
		return ""
	}
	switch pp.Bullet.Kind {
	case BulletChar:
		return "char:" + pp.Bullet.Char
	case BulletAutoNum:
		return "autoNum:" + pp.Bullet.AutoNum
	}
	return string(pp.Bullet.Kind)
}

func transformString(x *Transform) string {
	off, ext := "-", "-"
	if x.Offset != nil {
		off = fmt.Sprintf("%d,%d", x.Offset.X, x.Offset.Y)
	}
	if x.Extent != nil {
		ext = fmt.Sprintf("%dx%d", x.Extent.CX, x.Extent.CY)
	}
	return "off=" + off + " ext=" + ext
}

func colorString(c *Color) string {
	if c == nil {
		return "<none>"
	}
	switch c.Kind {
	case ColorScRGB:
		return fmt.Sprintf("%s(%s,%s,%s)", c.Kind, c.R, c.G, c.B)
	case ColorHSL:
		return fmt.Sprintf("%s(%s,%s,%s)", c.Kind, c.Hue, c.Sat, c.Lum)
	case ColorSystem:
		return fmt.Sprintf("%s(%s,%s)", c.Kind, c.Val, c.LastClr)
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Val)
}
