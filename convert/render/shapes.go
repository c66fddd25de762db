package render

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pptxhtml/css"
	"pptxhtml/pptx"
)

func (s *slideRenderer) renderNodes(parent *etree.Element, nodes []*pptx.Node, f frame) {
	for _, n := range nodes {
		s.renderNode(parent, n, f)
	}
}

func (s *slideRenderer) renderNode(parent *etree.Element, n *pptx.Node, f frame) {
	switch n.Kind {
	case pptx.NodeShape:
		s.shape(parent, n, f)
	case pptx.NodeConnector:
		s.connector(parent, n, f)
	case pptx.NodePicture:
		s.picture(parent, n, f)
	case pptx.NodeGroup:
		s.group(parent, n, f)
	case pptx.NodeTable:
		s.table(parent, n, f)
	default:
		s.warn("Unknown node kind, skipping", zap.String("kind", string(n.Kind)), zap.String("id", n.ID))
	}
}

// block creates positioned container common to all node kinds.
func (s *slideRenderer) block(parent *etree.Element, n *pptx.Node, in inheritance, classes ...string) *etree.Element {
	div := parent.CreateElement("div")
	if n.Xfrm().Flipped() {
		classes = append(classes, "flipped")
	}
	div.CreateAttr("class", strings.Join(append([]string{"block"}, classes...), " "))
	for _, a := range [...]struct{ key, val string }{
		{"data-id", n.ID},
		{"data-name", n.Name},
		{"data-type", in.phType},
	} {
		if a.val != "" {
			div.CreateAttr(a.key, a.val)
		}
	}
	if n.Placeholder != nil && n.Placeholder.Idx != "" {
		div.CreateAttr("data-idx", n.Placeholder.Idx)
	}
	return div
}

func (s *slideRenderer) shape(parent *etree.Element, n *pptx.Node, f frame) {
	in := inherit(n, s.chain)
	pl := place(in, f)

	classes := []string{"content"}
	if v := verticalClass(in.anchor()); v != "" {
		classes = append(classes, v)
	}
	div := s.block(parent, n, in, classes...)
	decls := blockDeclarations(n, pl)

	if n.Props.Custom != nil {
		s.customGeometry(div, n, in, pl)
	} else {
		decls = append(decls, s.boxDeclarations(n.Props.Preset, in)...)
	}
	div.CreateAttr("style", decls.Inline())

	if body := n.TextBody(); body != nil {
		s.textBody(div, body, in)
	}
}

// boxDeclarations paints fill and outline of preset geometry with CSS.
func (s *slideRenderer) boxDeclarations(preset string, in inheritance) css.Declarations {
	var decls css.Declarations
	if c := in.fill().SolidColor(); c != nil {
		decls = append(decls, css.Declaration{Property: "background-color", Value: cssColor(s.colors.resolve(c))})
	}
	if ln := in.line(); ln != nil {
		if c := ln.Fill.SolidColor(); c != nil {
			decls = append(decls, css.Declaration{
				Property: "border",
				Value:    formatPx(lineWidth(ln)) + " solid " + cssColor(s.colors.resolve(c)),
			})
		}
	}
	switch preset {
	case "ellipse":
		decls = append(decls, css.Declaration{Property: "border-radius", Value: "50%"})
	case "roundRect":
		decls = append(decls, css.Declaration{Property: "border-radius", Value: "10%"})
	}
	return decls
}

// customGeometry draws paths of the node into an SVG canvas filling the block.
func (s *slideRenderer) customGeometry(div *etree.Element, n *pptx.Node, in inheritance, pl placement) {
	fill, stroke, strokeWidth := "none", "none", "1"
	if c := in.fill().SolidColor(); c != nil {
		fill = cssColor(s.colors.resolve(c))
	}
	if ln := in.line(); ln != nil {
		if c := ln.Fill.SolidColor(); c != nil {
			stroke = cssColor(s.colors.resolve(c))
			strokeWidth = formatNumber(lineWidth(ln))
		}
	}
	for _, p := range n.Props.Custom.Paths {
		svg := div.CreateElement("svg")
		svg.CreateAttr("class", "drawing")
		svg.CreateAttr("width", "100%")
		svg.CreateAttr("height", "100%")
		w, h := px(p.Width), px(p.Height)
		if w == 0 || h == 0 {
			w, h = pl.width, pl.height
		}
		if w > 0 && h > 0 {
			svg.CreateAttr("viewBox", "0 0 "+formatNumber(w)+" "+formatNumber(h))
			svg.CreateAttr("preserveAspectRatio", "none")
		}
		path := svg.CreateElement("path")
		path.CreateAttr("d", pathData(p))
		path.CreateAttr("fill", fill)
		path.CreateAttr("stroke", stroke)
		path.CreateAttr("stroke-width", strokeWidth)
	}
}

// connector is drawn as a line between block corners, flips choose the
// diagonal.
func (s *slideRenderer) connector(parent *etree.Element, n *pptx.Node, f frame) {
	in := inherit(n, s.chain)
	pl := place(in, f)
	div := s.block(parent, n, in, "connector")
	div.CreateAttr("style", blockDeclarations(n, pl).Inline())

	stroke, width := "#000", 1.0
	if ln := in.line(); ln != nil {
		if c := ln.Fill.SolidColor(); c != nil {
			stroke = cssColor(s.colors.resolve(c))
		}
		width = lineWidth(ln)
	}
	x1, y1, x2, y2 := 0.0, 0.0, pl.width, pl.height
	if x := n.Xfrm(); x != nil {
		if x.FlipH {
			x1, x2 = x2, x1
		}
		if x.FlipV {
			y1, y2 = y2, y1
		}
	}
	svg := div.CreateElement("svg")
	svg.CreateAttr("class", "drawing")
	svg.CreateAttr("width", "100%")
	svg.CreateAttr("height", "100%")
	line := svg.CreateElement("line")
	for _, a := range [...]struct{ key, val string }{
		{"x1", formatNumber(x1)}, {"y1", formatNumber(y1)},
		{"x2", formatNumber(x2)}, {"y2", formatNumber(y2)},
		{"stroke", stroke}, {"stroke-width", formatNumber(width)},
	} {
		line.CreateAttr(a.key, a.val)
	}
}

// group renders children in the group's own coordinate space.
func (s *slideRenderer) group(parent *etree.Element, n *pptx.Node, f frame) {
	in := inherit(n, s.chain)
	pl := place(in, f)
	div := s.block(parent, n, in, "group")
	div.CreateAttr("style", blockDeclarations(n, pl).Inline())
	s.renderNodes(div, n.Children, childFrame(f, n.Xfrm()))
}

// lineWidth returns outline width in pixels, 1px when not given.
func lineWidth(ln *pptx.Line) float64 {
	if ln == nil || ln.Width == nil {
		return 1
	}
	return max(px(*ln.Width), 1)
}

func cssColor(hex string) string {
	if hex == "" || hex == defaultColor {
		return "#000"
	}
	return "#" + hex
}

func verticalClass(anchor string) string {
	switch anchor {
	case "t":
		return "v-up"
	case "ctr":
		return "v-mid"
	case "b":
		return "v-down"
	}
	return ""
}
