package pptx

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"pptxhtml/archive"
	"pptxhtml/pptx/pptxtest"
)

func parseTree(t *testing.T, tree string) []*Node {
	t.Helper()
	doc, err := archive.ParseXML([]byte(pptxtest.SlideXML(tree)))
	if err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	return parseSlide("ppt/slides/slide1.xml", doc, zaptest.NewLogger(t)).Tree
}

func TestParse_NodeKinds(t *testing.T) {
	tree := pptxtest.Sp(2, "Shape", "", "", "") +
		`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="3" name="Connector"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr><p:spPr/></p:cxnSp>` +
		`<p:pic><p:nvPicPr><p:cNvPr id="4" name="Picture"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>` +
		`<p:blipFill><a:blip r:embed="rId7"/></p:blipFill><p:spPr/></p:pic>` +
		`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="5" name="Group"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		pptxtest.Sp(6, "Inner", "", "", "") + `</p:grpSp>` +
		`<p:contentPart r:id="rId9"/>`

	nodes := parseTree(t, tree)
	want := []NodeKind{NodeShape, NodeConnector, NodePicture, NodeGroup}
	if len(nodes) != len(want) {
		t.Fatalf("nodes = %d, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.Kind != want[i] {
			t.Errorf("node %d kind = %s, want %s", i, n.Kind, want[i])
		}
	}
	if nodes[2].Picture == nil || nodes[2].Picture.EmbedID != "rId7" {
		t.Errorf("picture = %+v", nodes[2].Picture)
	}
	group := nodes[3]
	if len(group.Children) != 1 || group.Children[0].Name != "Inner" {
		t.Fatalf("group children = %+v", group.Children)
	}
	// document order: the group precedes its children
	if group.Order != 4 || group.Children[0].Order != 5 {
		t.Errorf("orders = %d %d", group.Order, group.Children[0].Order)
	}
}

func TestParse_Transform(t *testing.T) {
	tests := []struct {
		name    string
		xfrm    string
		offset  *Point
		extent  *Size
		rot     int64
		flipped bool
	}{
		{
			name:   "plain",
			xfrm:   `<a:xfrm><a:off x="914400" y="457200"/><a:ext cx="1828800" cy="914400"/></a:xfrm>`,
			offset: &Point{X: 914400, Y: 457200},
			extent: &Size{CX: 1828800, CY: 914400},
		},
		{
			name:    "rotated and flipped",
			xfrm:    `<a:xfrm rot="5400000" flipV="1"><a:off x="1" y="2"/><a:ext cx="3" cy="4"/></a:xfrm>`,
			offset:  &Point{X: 1, Y: 2},
			extent:  &Size{CX: 3, CY: 4},
			rot:     5400000,
			flipped: true,
		},
		{
			name:   "malformed numbers are not set",
			xfrm:   `<a:xfrm><a:off x="abc" y="2"/><a:ext cx="3" cy="4"/></a:xfrm>`,
			extent: &Size{CX: 3, CY: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parseTree(t, pptxtest.Sp(2, "S", "", tt.xfrm, ""))
			x := nodes[0].Xfrm()
			if x == nil {
				t.Fatal("no transform")
			}
			if (x.Offset == nil) != (tt.offset == nil) || (x.Offset != nil && *x.Offset != *tt.offset) {
				t.Errorf("Offset = %v, want %v", x.Offset, tt.offset)
			}
			if (x.Extent == nil) != (tt.extent == nil) || (x.Extent != nil && *x.Extent != *tt.extent) {
				t.Errorf("Extent = %v, want %v", x.Extent, tt.extent)
			}
			if x.Rotation != tt.rot {
				t.Errorf("Rotation = %d, want %d", x.Rotation, tt.rot)
			}
			if x.Flipped() != tt.flipped {
				t.Errorf("Flipped() = %t, want %t", x.Flipped(), tt.flipped)
			}
		})
	}
}

func TestParse_CustomGeometry(t *testing.T) {
	spPr := `<a:custGeom><a:pathLst><a:path w="100" h="200">` +
		`<a:moveTo><a:pt x="0" y="0"/></a:moveTo>` +
		`<a:lnTo><a:pt x="10" y="20"/></a:lnTo>` +
		`<a:cubicBezTo><a:pt x="1" y="2"/><a:pt x="3" y="4"/><a:pt x="5" y="6"/></a:cubicBezTo>` +
		`<a:close/></a:path></a:pathLst></a:custGeom>`

	nodes := parseTree(t, pptxtest.Sp(2, "Freeform", "", spPr, ""))
	geom := nodes[0].Props.Custom
	if geom == nil || len(geom.Paths) != 1 {
		t.Fatalf("geometry = %+v", geom)
	}
	path := geom.Paths[0]
	if path.Width != 100 || path.Height != 200 {
		t.Errorf("size = %dx%d", path.Width, path.Height)
	}
	if path.Start == nil || *path.Start != (Point{}) {
		t.Errorf("Start = %v", path.Start)
	}
	if !path.Closed {
		t.Error("path is not closed")
	}
	if len(path.Points) != 4 {
		t.Fatalf("points = %d, want 4", len(path.Points))
	}
	if path.Points[0].Kind != PathLineTo || path.Points[0].Seq != 1 {
		t.Errorf("line point = %+v", path.Points[0])
	}
	for _, pt := range path.Points[1:] {
		if pt.Kind != PathCubicTo || pt.Seq != 2 {
			t.Errorf("cubic point = %+v", pt)
		}
	}
}

func TestParse_Text(t *testing.T) {
	body := `<p:txBody><a:bodyPr anchor="ctr"/><a:lstStyle><a:lvl2pPr algn="r"><a:defRPr sz="1400"/></a:lvl2pPr></a:lstStyle>` +
		`<a:p><a:pPr lvl="1" algn="ctr" marL="457200"><a:buFont typeface="Wingdings" pitchFamily="2"/><a:buChar char="§"/></a:pPr>` +
		`<a:r><a:rPr lang="en-US" sz="2400" b="1" i="0" u="sng" strike="sngStrike" baseline="30000">` +
		`<a:solidFill><a:srgbClr val="ff0000"/></a:solidFill><a:highlight><a:srgbClr val="FFFF00"/></a:highlight>` +
		`<a:latin typeface="Georgia"/><a:hlinkClick r:id="rId3" tooltip="go"/></a:rPr><a:t>Styled</a:t></a:r>` +
		`<a:br/><a:fld id="{1}" type="slidenum"><a:t>7</a:t></a:fld><a:r><a:rPr/></a:r><a:endParaRPr sz="1000"/></a:p>` +
		`</p:txBody>`

	nodes := parseTree(t, pptxtest.Sp(2, "Text", "", "", body))
	tb := nodes[0].TextBody()
	if tb.AnchorValue() != "ctr" {
		t.Errorf("anchor = %q", tb.AnchorValue())
	}
	if sz, ok := tb.Styles().Level(1).RunDefaults().SizeValue(); !ok || sz != 1400 {
		t.Errorf("lvl2 size = %d %t", sz, ok)
	}
	if len(tb.Paragraphs) != 1 {
		t.Fatalf("paragraphs = %d", len(tb.Paragraphs))
	}
	para := tb.Paragraphs[0]
	pp := para.Props
	if pp.LevelValue() != 1 || pp.AlignValue() != "ctr" || pp.MarL == nil || *pp.MarL != 457200 {
		t.Errorf("pPr = %+v", pp)
	}
	if pp.Bullet.Kind != BulletChar || pp.Bullet.Char != "§" || pp.Bullet.Font == nil || *pp.Bullet.Font.PitchFamily != 2 {
		t.Errorf("bullet = %+v", pp.Bullet)
	}

	if len(para.Runs) != 4 {
		t.Fatalf("runs = %d, want 4", len(para.Runs))
	}
	kinds := []RunKind{RunText, RunBreak, RunField, RunText}
	for i, r := range para.Runs {
		if r.Kind != kinds[i] {
			t.Errorf("run %d kind = %s, want %s", i, r.Kind, kinds[i])
		}
	}

	rp := para.Runs[0].Props
	if sz, _ := rp.SizeValue(); sz != 2400 {
		t.Errorf("size = %d", sz)
	}
	if b, ok := rp.BoldValue(); !ok || !b {
		t.Error("bold not set")
	}
	if i, ok := rp.ItalicValue(); !ok || i {
		t.Error("italic must be explicitly off")
	}
	if u, _ := rp.UnderlineValue(); u != "sng" {
		t.Errorf("underline = %q", u)
	}
	if s, _ := rp.StrikeValue(); s != "sngStrike" {
		t.Errorf("strike = %q", s)
	}
	if rp.Baseline == nil || *rp.Baseline != 30000 {
		t.Errorf("baseline = %v", rp.Baseline)
	}
	if c := rp.FillColor(); c == nil || c.Val != "ff0000" {
		t.Errorf("fill = %+v", c)
	}
	if rp.Highlight == nil || rp.Highlight.Val != "FFFF00" {
		t.Errorf("highlight = %+v", rp.Highlight)
	}
	if f, _ := rp.LatinValue(); f != "Georgia" {
		t.Errorf("latin = %q", f)
	}
	if rp.Link == nil || rp.Link.RelID != "rId3" || rp.Link.Tooltip != "go" {
		t.Errorf("link = %+v", rp.Link)
	}

	if f := para.Runs[2]; f.FieldType != "slidenum" || f.Text == nil || *f.Text != "7" {
		t.Errorf("field = %+v", f)
	}
	if para.Runs[3].Text != nil {
		t.Error("run without a:t must have nil text")
	}
	if sz, _ := para.End.SizeValue(); sz != 1000 {
		t.Errorf("endParaRPr size = %d", sz)
	}
}

func TestParse_ColorKinds(t *testing.T) {
	tests := []struct {
		xml  string
		kind ColorKind
		ok   bool
	}{
		{`<a:srgbClr val="00FF00"/>`, ColorRGB, true},
		{`<a:schemeClr val="accent1"><a:tint val="50000"/></a:schemeClr>`, ColorScheme, true},
		{`<a:scrgbClr r="50%" g="0" b="100000"/>`, ColorScRGB, true},
		{`<a:prstClr val="red"/>`, ColorPreset, true},
		{`<a:hslClr hue="0" sat="100%" lum="50%"/>`, ColorHSL, true},
		{`<a:sysClr val="window" lastClr="FFFFFF"/>`, ColorSystem, true},
		{`<a:unknownClr val="x"/>`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.xml, func(t *testing.T) {
			spPr := `<a:solidFill>` + tt.xml + `</a:solidFill>`
			nodes := parseTree(t, pptxtest.Sp(2, "S", "", spPr, ""))
			fill := nodes[0].Props.Fill
			if fill == nil || fill.Kind != FillSolid {
				t.Fatalf("fill = %+v", fill)
			}
			c := fill.SolidColor()
			if (c != nil) != tt.ok {
				t.Fatalf("color = %+v, want present %t", c, tt.ok)
			}
			if c != nil && c.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", c.Kind, tt.kind)
			}
		})
	}
}

func TestParse_Table(t *testing.T) {
	frame := `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="4" name="Table 3"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>` +
		`<p:xfrm><a:off x="100" y="200"/><a:ext cx="300" cy="400"/></p:xfrm>` +
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr/>` +
		`<a:tblGrid><a:gridCol w="150"/><a:gridCol w="150"/></a:tblGrid>` +
		`<a:tr h="200"><a:tc gridSpan="2"><a:txBody><a:bodyPr/><a:p><a:r><a:t>Head</a:t></a:r></a:p></a:txBody></a:tc><a:tc hMerge="1"/></a:tr>` +
		`<a:tr h="200"><a:tc><a:tcPr><a:solidFill><a:srgbClr val="EEEEEE"/></a:solidFill></a:tcPr></a:tc><a:tc/></a:tr>` +
		`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>` +
		`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="5" name="Chart"/></p:nvGraphicFramePr>` +
		`<a:graphic><a:graphicData uri="chart"/></a:graphic></p:graphicFrame>`

	nodes := parseTree(t, frame)
	if len(nodes) != 1 {
		t.Fatalf("nodes = %d, want only the table", len(nodes))
	}
	n := nodes[0]
	if n.Kind != NodeTable || n.Xfrm() == nil || n.Xfrm().Offset.X != 100 {
		t.Fatalf("node = %+v", n)
	}
	tbl := n.Table
	if len(tbl.Grid) != 2 || len(tbl.Rows) != 2 {
		t.Fatalf("table = %+v", tbl)
	}
	head := tbl.Rows[0].Cells[0]
	if head.GridSpan != 2 || head.RowSpan != 1 || head.Text == nil {
		t.Errorf("head = %+v", head)
	}
	if !tbl.Rows[0].Cells[1].HMerge {
		t.Error("merged cell not marked")
	}
	if tbl.Rows[1].Cells[0].Fill.SolidColor().Val != "EEEEEE" {
		t.Error("cell fill not parsed")
	}
}

func TestParse_Media(t *testing.T) {
	pic := `<p:pic><p:nvPicPr><p:cNvPr id="4" name="Movie"/><p:cNvPicPr/><p:nvPr><a:videoFile r:link="rId2"/></p:nvPr></p:nvPicPr>` +
		`<p:blipFill><a:blip r:embed="rId3"/></p:blipFill><p:spPr/></p:pic>`
	nodes := parseTree(t, pic)
	p := nodes[0].Picture
	if p == nil || p.EmbedID != "rId3" || p.Media == nil || p.Media.Kind != MediaVideo || p.Media.RelID != "rId2" {
		t.Errorf("picture = %+v", p)
	}
}

func TestParse_AlternateContent(t *testing.T) {
	tree := `<mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="p14">` + pptxtest.Sp(2, "Choice", "", "", "") + `</mc:Choice>` +
		`<mc:Fallback>` + pptxtest.Sp(3, "Fallback", "", "", "") + `</mc:Fallback></mc:AlternateContent>`
	nodes := parseTree(t, tree)
	if len(nodes) != 1 || nodes[0].Name != "Fallback" {
		t.Fatalf("nodes = %+v", nodes)
	}
}

func TestParse_HiddenAndOverride(t *testing.T) {
	doc, err := archive.ParseXML([]byte(pptxtest.HiddenSlideXML("")))
	if err != nil {
		t.Fatal(err)
	}
	if s := parseSlide("s.xml", doc, zaptest.NewLogger(t)); !s.Hidden {
		t.Error("slide is not hidden")
	}

	doc, err = archive.ParseXML([]byte(pptxtest.LayoutXML("", `bg1="dk1" tx1="lt1"`)))
	if err != nil {
		t.Fatal(err)
	}
	l := parseLayout("l.xml", doc, zaptest.NewLogger(t))
	if l.ColorMapOverride["tx1"] != "lt1" || l.ColorMapOverride["bg1"] != "dk1" {
		t.Errorf("override = %v", l.ColorMapOverride)
	}
}
