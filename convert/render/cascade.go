package render

import (
	"pptxhtml/pptx"
)

// inheritance is a slide node together with layout and master placeholders it
// inherits from. Layout and master are nil when node is not a placeholder or
// nothing matched.
type inheritance struct {
	slide  *pptx.Node
	layout *pptx.Node
	master *pptx.Node
	// effective placeholder type: slide, then layout, then master declaration
	phType      string
	placeholder bool
}

// inherit matches node against chain placeholders. Nodes declaring type are
// matched by type, others by idx.
func inherit(n *pptx.Node, chain *pptx.Chain) inheritance {
	in := inheritance{slide: n}
	if n == nil || n.Placeholder == nil {
		return in
	}
	in.placeholder = true
	if chain != nil {
		if chain.Layout != nil {
			in.layout = chain.Layout.Index.Match(n.Placeholder)
		}
		if chain.Master != nil {
			in.master = chain.Master.Index.Match(n.Placeholder)
		}
	}
	in.phType = n.Placeholder.Type
	if in.phType == "" {
		in.phType = in.layout.PlaceholderType()
	}
	if in.phType == "" {
		in.phType = in.master.PlaceholderType()
	}
	return in
}

func (in inheritance) nodes() []*pptx.Node {
	return []*pptx.Node{in.slide, in.layout, in.master}
}

// isTitle reports placeholders using title text style and major font.
func (in inheritance) isTitle() bool {
	switch in.phType {
	case "title", "ctrTitle", "subTitle":
		return true
	}
	return false
}

// first returns value of the closest source providing it. Sources are tried in
// order, nil sources are skipped.
func first[S any, T any](get func(S) (T, bool), sources ...S) (T, bool) {
	for _, src := range sources {
		if v, ok := get(src); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// offset returns position of the node, slide first, then layout, then
// master. Theme never provides geometry.
func (in inheritance) offset() (pptx.Point, bool) {
	return first(func(n *pptx.Node) (pptx.Point, bool) {
		if x := n.Xfrm(); x != nil && x.Offset != nil {
			return *x.Offset, true
		}
		return pptx.Point{}, false
	}, in.nodes()...)
}

// extent returns size of the node with the same fallback as offset.
func (in inheritance) extent() (pptx.Size, bool) {
	return first(func(n *pptx.Node) (pptx.Size, bool) {
		if x := n.Xfrm(); x != nil && x.Extent != nil {
			return *x.Extent, true
		}
		return pptx.Size{}, false
	}, in.nodes()...)
}

func (in inheritance) anchor() string {
	v, _ := first(func(n *pptx.Node) (string, bool) {
		a := n.TextBody().AnchorValue()
		return a, a != ""
	}, in.nodes()...)
	return v
}

func (in inheritance) fill() *pptx.Fill {
	v, _ := first(func(n *pptx.Node) (*pptx.Fill, bool) {
		if n == nil || n.Props.Fill == nil {
			return nil, false
		}
		return n.Props.Fill, true
	}, in.nodes()...)
	return v
}

func (in inheritance) line() *pptx.Line {
	v, _ := first(func(n *pptx.Node) (*pptx.Line, bool) {
		if n == nil || n.Props.Line == nil {
			return nil, false
		}
		return n.Props.Line, true
	}, in.nodes()...)
	return v
}

// textStyle selects master text style table for the placeholder type. Date
// and slide number placeholders have no table, they use literal defaults.
func (in inheritance) textStyle(styles pptx.TextStyles) *pptx.ListStyle {
	switch {
	case in.isTitle():
		return styles.Title
	case in.phType == "dt" || in.phType == "sldNum" || in.phType == "ftr":
		return nil
	case !in.placeholder:
		return styles.Other
	}
	return styles.Body
}

// literalSize is size of last resort in hundredths of a point.
func (in inheritance) literalSize() (int, bool) {
	switch in.phType {
	case "dt", "sldNum":
		return 1200, true
	}
	return 0, false
}

// textLevels collects inherited paragraph properties for outline level lvl:
// node list style, matched layout and master placeholders (list style first,
// then their first paragraph) and master text style table.
type textLevels struct {
	in     inheritance
	paras  []*pptx.ParagraphProperties
	styles *pptx.ListStyle
}

func newTextLevels(in inheritance, body *pptx.TextBody, styles pptx.TextStyles, lvl int) textLevels {
	table := in.textStyle(styles)
	return textLevels{
		in: in,
		paras: []*pptx.ParagraphProperties{
			body.Styles().Level(lvl),
			in.layout.TextBody().Styles().Level(lvl),
			in.layout.TextBody().FirstParagraph(),
			in.master.TextBody().Styles().Level(lvl),
			in.master.TextBody().FirstParagraph(),
			table.Level(lvl),
		},
		styles: table,
	}
}

// paragraphSources prepends own paragraph properties to inherited ones.
func (tl textLevels) paragraphSources(own *pptx.ParagraphProperties) []*pptx.ParagraphProperties {
	return append([]*pptx.ParagraphProperties{own}, tl.paras...)
}

// runSources lists run property sets from the closest to the most generic.
func (tl textLevels) runSources(own *pptx.RunProperties, para *pptx.ParagraphProperties) []*pptx.RunProperties {
	srcs := []*pptx.RunProperties{own, para.RunDefaults()}
	for _, pp := range tl.paras {
		srcs = append(srcs, pp.RunDefaults())
	}
	return srcs
}

func alignOf(pp *pptx.ParagraphProperties) (string, bool) {
	a := pp.AlignValue()
	return a, a != ""
}

func marginOf(pp *pptx.ParagraphProperties) (pptx.Emu, bool) {
	if pp == nil || pp.MarL == nil {
		return 0, false
	}
	return *pp.MarL, true
}

func bulletOf(pp *pptx.ParagraphProperties) (pptx.Bullet, bool) {
	if pp == nil || pp.Bullet.Kind == pptx.BulletUnset {
		return pptx.Bullet{}, false
	}
	return pp.Bullet, true
}

func fillColorOf(rp *pptx.RunProperties) (*pptx.Color, bool) {
	c := rp.FillColor()
	return c, c != nil
}
