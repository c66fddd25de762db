package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// XML parsing of shape trees and text bodies. Only what rendering needs is
// extracted; everything else is skipped with a debug message so the output of
// a debug run shows what was left behind.

// treeParser keeps per part state: document order counter used for z-order.
type treeParser struct {
	part  string
	order int
	log   *zap.Logger
}

func newTreeParser(part string, log *zap.Logger) *treeParser {
	return &treeParser{part: part, log: log}
}

// shapeTree parses direct children of p:spTree or p:grpSp. Non visual group
// wrappers are not nodes and are skipped.
func (p *treeParser) shapeTree(el *etree.Element) []*Node {
	var nodes []*Node
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "nvGrpSpPr", "grpSpPr", "extLst":
			// group wrappers
		case "AlternateContent":
			nodes = append(nodes, p.alternateContent(child)...)
		default:
			if node := p.node(child); node != nil {
				nodes = append(nodes, node)
			}
		}
	}
	return nodes
}

// alternateContent takes the fallback branch, it is what consumers without
// extension support are expected to show.
func (p *treeParser) alternateContent(el *etree.Element) []*Node {
	fallback := el.SelectElement("Fallback")
	if fallback == nil {
		p.log.Debug("Alternate content without fallback, ignoring", zap.String("part", p.part))
		return nil
	}
	return p.shapeTree(fallback)
}

func (p *treeParser) node(el *etree.Element) *Node {
	var kind NodeKind
	switch el.Tag {
	case "sp":
		kind = NodeShape
	case "cxnSp":
		kind = NodeConnector
	case "pic":
		kind = NodePicture
	case "grpSp":
		kind = NodeGroup
	case "graphicFrame":
		kind = NodeTable
	default:
		p.log.Warn("Unexpected tag in shape tree, ignoring", zap.String("part", p.part), zap.String("parent", "spTree"), zap.String("tag", el.Tag))
		return nil
	}

	p.order++
	n := &Node{Kind: kind, Order: p.order}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "nvSpPr", "nvCxnSpPr", "nvPicPr", "nvGrpSpPr", "nvGraphicFramePr":
			p.nonVisual(n, child)
		case "spPr", "grpSpPr":
			n.Props = p.shapeProperties(child)
		case "xfrm":
			// graphic frames keep their transform outside of spPr
			n.Props.Xfrm = parseTransform(child)
		case "txBody":
			n.Text = p.textBody(child)
		case "blipFill":
			p.blipFill(n, child)
		case "graphic":
			n.Table = p.graphic(child)
		case "style", "extLst":
			// theme style references are not resolved
		default:
			if kind == NodeGroup {
				continue
			}
			p.log.Debug("Unexpected tag in shape, ignoring", zap.String("part", p.part), zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}

	switch kind {
	case NodeGroup:
		n.Children = p.shapeTree(el)
	case NodeTable:
		if n.Table == nil {
			p.log.Warn("Graphic frame without table, ignoring", zap.String("part", p.part), zap.String("name", n.Name))
			return nil
		}
	}
	return n
}

func (p *treeParser) nonVisual(n *Node, el *etree.Element) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "cNvPr":
			n.ID = child.SelectAttrValue("id", "")
			n.Name = child.SelectAttrValue("name", "")
		case "nvPr":
			for _, nv := range child.ChildElements() {
				switch nv.Tag {
				case "ph":
					n.Placeholder = &Placeholder{
						Type: nv.SelectAttrValue("type", ""),
						Idx:  nv.SelectAttrValue("idx", ""),
					}
				case "videoFile":
					n.ensurePicture().Media = &Media{Kind: MediaVideo, RelID: relAttr(nv)}
				case "audioFile":
					n.ensurePicture().Media = &Media{Kind: MediaAudio, RelID: relAttr(nv)}
				}
			}
		}
	}
}

func (n *Node) ensurePicture() *Picture {
	if n.Picture == nil {
		n.Picture = &Picture{}
	}
	return n.Picture
}

func relAttr(el *etree.Element) string {
	if v := el.SelectAttrValue("r:link", ""); v != "" {
		return v
	}
	return el.SelectAttrValue("r:embed", "")
}

func (p *treeParser) blipFill(n *Node, el *etree.Element) {
	blip := el.SelectElement("blip")
	if blip == nil {
		return
	}
	pic := n.ensurePicture()
	pic.EmbedID = blip.SelectAttrValue("r:embed", "")
	pic.LinkID = blip.SelectAttrValue("r:link", "")
}

func (p *treeParser) shapeProperties(el *etree.Element) ShapeProperties {
	var props ShapeProperties
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "xfrm":
			props.Xfrm = parseTransform(child)
		case "prstGeom":
			props.Preset = child.SelectAttrValue("prst", "")
		case "custGeom":
			props.Custom = parseCustomGeometry(child)
		case "ln":
			props.Line = parseLine(child)
		default:
			if fill := parseFill(child); fill != nil {
				props.Fill = fill
			}
		}
	}
	return props
}

func parseTransform(el *etree.Element) *Transform {
	t := &Transform{
		FlipH: attrFlag(el, "flipH"),
		FlipV: attrFlag(el, "flipV"),
	}
	if v, err := strconv.ParseInt(el.SelectAttrValue("rot", ""), 10, 64); err == nil {
		t.Rotation = v
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "off":
			t.Offset = parsePoint(child)
		case "ext":
			t.Extent = parseSize(child)
		case "chOff":
			t.ChildOffset = parsePoint(child)
		case "chExt":
			t.ChildExtent = parseSize(child)
		}
	}
	return t
}

// parsePoint returns nil when either coordinate is missing or malformed.
func parsePoint(el *etree.Element) *Point {
	x, okx := attrEmu(el, "x")
	y, oky := attrEmu(el, "y")
	if !okx || !oky {
		return nil
	}
	return &Point{X: x, Y: y}
}

func parseSize(el *etree.Element) *Size {
	cx, okx := attrEmu(el, "cx")
	cy, oky := attrEmu(el, "cy")
	if !okx || !oky {
		return nil
	}
	return &Size{CX: cx, CY: cy}
}

func parseCustomGeometry(el *etree.Element) *CustomGeometry {
	geom := &CustomGeometry{}
	lst := el.SelectElement("pathLst")
	if lst == nil {
		return geom
	}
	for _, pe := range lst.SelectElements("path") {
		path := Path{}
		path.Width, _ = attrEmu(pe, "w")
		path.Height, _ = attrEmu(pe, "h")
		for seq, cmd := range pe.ChildElements() {
			switch cmd.Tag {
			case "moveTo":
				pt := firstPoint(cmd)
				if pt == nil {
					continue
				}
				if path.Start == nil {
					path.Start = pt
					continue
				}
				path.Points = append(path.Points, PathPoint{Kind: PathMoveTo, Seq: seq, Pt: *pt})
			case "lnTo":
				if pt := firstPoint(cmd); pt != nil {
					path.Points = append(path.Points, PathPoint{Kind: PathLineTo, Seq: seq, Pt: *pt})
				}
			case "cubicBezTo":
				for _, ptEl := range cmd.SelectElements("pt") {
					if pt := parsePoint(ptEl); pt != nil {
						path.Points = append(path.Points, PathPoint{Kind: PathCubicTo, Seq: seq, Pt: *pt})
					}
				}
			case "close":
				path.Closed = true
			}
		}
		geom.Paths = append(geom.Paths, path)
	}
	return geom
}

func firstPoint(el *etree.Element) *Point {
	pt := el.SelectElement("pt")
	if pt == nil {
		return nil
	}
	return parsePoint(pt)
}

func parseLine(el *etree.Element) *Line {
	ln := &Line{}
	if w, ok := attrEmu(el, "w"); ok {
		ln.Width = &w
	}
	for _, child := range el.ChildElements() {
		if fill := parseFill(child); fill != nil {
			ln.Fill = fill
		}
	}
	return ln
}

// parseFill returns nil for elements which are not fills.
func parseFill(el *etree.Element) *Fill {
	switch el.Tag {
	case "solidFill":
		fill := &Fill{Kind: FillSolid}
		for _, child := range el.ChildElements() {
			if c := parseColor(child); c != nil {
				fill.Color = c
				break
			}
		}
		return fill
	case "noFill":
		return &Fill{Kind: FillNone}
	case "gradFill", "pattFill", "blipFill", "grpFill":
		return &Fill{Kind: FillOther}
	}
	return nil
}

// parseColor returns nil for elements which are not color references.
func parseColor(el *etree.Element) *Color {
	c := &Color{Kind: ColorKind(el.Tag)}
	switch c.Kind {
	case ColorRGB, ColorScheme, ColorPreset:
		c.Val = el.SelectAttrValue("val", "")
	case ColorSystem:
		c.Val = el.SelectAttrValue("val", "")
		c.LastClr = el.SelectAttrValue("lastClr", "")
	case ColorScRGB:
		c.R = el.SelectAttrValue("r", "")
		c.G = el.SelectAttrValue("g", "")
		c.B = el.SelectAttrValue("b", "")
	case ColorHSL:
		c.Hue = el.SelectAttrValue("hue", "")
		c.Sat = el.SelectAttrValue("sat", "")
		c.Lum = el.SelectAttrValue("lum", "")
	default:
		return nil
	}
	if tint := el.SelectElement("tint"); tint != nil {
		c.Tint = attrInt(tint, "val")
	}
	return c
}

func (p *treeParser) graphic(el *etree.Element) *Table {
	data := el.SelectElement("graphicData")
	if data == nil {
		return nil
	}
	tbl := data.SelectElement("tbl")
	if tbl == nil {
		p.log.Debug("Unsupported graphic data, ignoring", zap.String("part", p.part), zap.String("uri", data.SelectAttrValue("uri", "")))
		return nil
	}

	table := &Table{}
	for _, child := range tbl.ChildElements() {
		switch child.Tag {
		case "tblGrid":
			for _, col := range child.SelectElements("gridCol") {
				w, _ := attrEmu(col, "w")
				table.Grid = append(table.Grid, w)
			}
		case "tr":
			row := TableRow{}
			row.Height, _ = attrEmu(child, "h")
			for _, tc := range child.SelectElements("tc") {
				row.Cells = append(row.Cells, p.tableCell(tc))
			}
			table.Rows = append(table.Rows, row)
		case "tblPr", "extLst":
		default:
			p.log.Debug("Unexpected tag in table, ignoring", zap.String("part", p.part), zap.String("tag", child.Tag))
		}
	}
	return table
}

func (p *treeParser) tableCell(el *etree.Element) TableCell {
	cell := TableCell{GridSpan: 1, RowSpan: 1}
	if v := attrInt(el, "gridSpan"); v != nil && *v > 0 {
		cell.GridSpan = *v
	}
	if v := attrInt(el, "rowSpan"); v != nil && *v > 0 {
		cell.RowSpan = *v
	}
	cell.HMerge = attrFlag(el, "hMerge")
	cell.VMerge = attrFlag(el, "vMerge")
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "txBody":
			cell.Text = p.textBody(child)
		case "tcPr":
			for _, pr := range child.ChildElements() {
				if fill := parseFill(pr); fill != nil {
					cell.Fill = fill
				}
			}
		}
	}
	return cell
}

func (p *treeParser) textBody(el *etree.Element) *TextBody {
	body := &TextBody{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "bodyPr":
			body.Body.Anchor = child.SelectAttrValue("anchor", "")
		case "lstStyle":
			body.ListStyle = p.listStyle(child)
		case "p":
			body.Paragraphs = append(body.Paragraphs, p.paragraph(child))
		default:
			p.log.Debug("Unexpected tag in text body, ignoring", zap.String("part", p.part), zap.String("tag", child.Tag))
		}
	}
	return body
}

// listStyle parses a:lstStyle and master text styles, both share the layout.
func (p *treeParser) listStyle(el *etree.Element) *ListStyle {
	ls := &ListStyle{}
	for _, child := range el.ChildElements() {
		if child.Tag == "defPPr" {
			ls.Default = p.paragraphProperties(child)
			continue
		}
		// lvl1pPr ... lvl9pPr
		if !strings.HasPrefix(child.Tag, "lvl") || !strings.HasSuffix(child.Tag, "pPr") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(child.Tag, "lvl"), "pPr"))
		if err != nil || n < 1 || n > MaxLevels {
			continue
		}
		ls.Levels[n-1] = p.paragraphProperties(child)
	}
	return ls
}

func (p *treeParser) paragraph(el *etree.Element) Paragraph {
	para := Paragraph{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "pPr":
			para.Props = p.paragraphProperties(child)
		case "r":
			para.Runs = append(para.Runs, p.run(child, RunText))
		case "fld":
			run := p.run(child, RunField)
			run.FieldType = child.SelectAttrValue("type", "")
			para.Runs = append(para.Runs, run)
		case "br":
			para.Runs = append(para.Runs, Run{Kind: RunBreak, Props: p.runPropertiesOf(child)})
		case "endParaRPr":
			para.End = p.runProperties(child)
		default:
			p.log.Debug("Unexpected tag in paragraph, ignoring", zap.String("part", p.part), zap.String("tag", child.Tag))
		}
	}
	return para
}

func (p *treeParser) run(el *etree.Element, kind RunKind) Run {
	run := Run{Kind: kind, Props: p.runPropertiesOf(el)}
	if t := el.SelectElement("t"); t != nil {
		text := t.Text()
		run.Text = &text
	}
	return run
}

func (p *treeParser) runPropertiesOf(el *etree.Element) *RunProperties {
	if rpr := el.SelectElement("rPr"); rpr != nil {
		return p.runProperties(rpr)
	}
	return nil
}

func (p *treeParser) paragraphProperties(el *etree.Element) *ParagraphProperties {
	pp := &ParagraphProperties{
		Level: attrInt(el, "lvl"),
		Align: el.SelectAttrValue("algn", ""),
	}
	if v, ok := attrEmu(el, "marL"); ok {
		pp.MarL = &v
	}
	if v, ok := attrEmu(el, "indent"); ok {
		pp.Indent = &v
	}
	if attr := el.SelectAttr("rtl"); attr != nil {
		rtl := parseFlag(attr.Value)
		pp.RTL = &rtl
	}

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "buNone":
			pp.Bullet.Kind = BulletNone
		case "buChar":
			pp.Bullet.Kind = BulletChar
			pp.Bullet.Char = child.SelectAttrValue("char", "")
		case "buAutoNum":
			pp.Bullet.Kind = BulletAutoNum
			pp.Bullet.AutoNum = child.SelectAttrValue("type", "")
			pp.Bullet.StartAt = attrInt(child, "startAt")
		case "buBlip":
			pp.Bullet.Kind = BulletPicture
			if blip := child.SelectElement("blip"); blip != nil {
				pp.Bullet.BlipID = blip.SelectAttrValue("r:embed", "")
			}
		case "buFont":
			pp.Bullet.Font = &BulletFont{
				Typeface:    child.SelectAttrValue("typeface", ""),
				PitchFamily: attrInt(child, "pitchFamily"),
			}
		case "buClr":
			for _, c := range child.ChildElements() {
				if color := parseColor(c); color != nil {
					pp.Bullet.Color = color
					break
				}
			}
		case "buSzPts":
			pp.Bullet.SizePts = attrInt(child, "val")
		case "buSzPct":
			pp.Bullet.SizePct = attrInt(child, "val")
		case "defRPr":
			pp.Defaults = p.runProperties(child)
		}
	}
	return pp
}

func (p *treeParser) runProperties(el *etree.Element) *RunProperties {
	rp := &RunProperties{
		Size:      attrInt(el, "sz"),
		Baseline:  attrInt(el, "baseline"),
		Underline: el.SelectAttrValue("u", ""),
		Strike:    el.SelectAttrValue("strike", ""),
	}
	if attr := el.SelectAttr("b"); attr != nil {
		b := parseFlag(attr.Value)
		rp.Bold = &b
	}
	if attr := el.SelectAttr("i"); attr != nil {
		i := parseFlag(attr.Value)
		rp.Italic = &i
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "latin":
			rp.Latin = child.SelectAttrValue("typeface", "")
		case "highlight":
			for _, c := range child.ChildElements() {
				if color := parseColor(c); color != nil {
					rp.Highlight = color
					break
				}
			}
		case "hlinkClick":
			rp.Link = &Hyperlink{
				RelID:   child.SelectAttrValue("r:id", ""),
				Tooltip: child.SelectAttrValue("tooltip", ""),
			}
		default:
			if fill := parseFill(child); fill != nil {
				rp.Fill = fill
			}
		}
	}
	return rp
}

// attrEmu reports false when attribute is missing or not an integer.
func attrEmu(el *etree.Element, key string) (Emu, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(el.SelectAttrValue(key, "")), 10, 64)
	if err != nil {
		return 0, false
	}
	return Emu(v), true
}

func attrInt(el *etree.Element, key string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(el.SelectAttrValue(key, "")))
	if err != nil {
		return nil
	}
	return &v
}

func attrFlag(el *etree.Element, key string) bool {
	return parseFlag(el.SelectAttrValue(key, ""))
}

func parseFlag(s string) bool {
	switch strings.TrimSpace(s) {
	case "1", "true", "on":
		return true
	}
	return false
}
