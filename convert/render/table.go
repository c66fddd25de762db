package render

import (
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"pptxhtml/css"
	"pptxhtml/pptx"
)

// table renders graphic frame table as positioned HTML table. Cells covered
// by a merge are skipped, their space is taken by spanning cell.
func (s *slideRenderer) table(parent *etree.Element, n *pptx.Node, f frame) {
	if n.Table == nil {
		s.warn("Graphic frame without table, skipping", zap.String("id", n.ID))
		return
	}
	in := inherit(n, s.chain)
	pl := place(in, f)

	tbl := parent.CreateElement("table")
	if n.ID != "" {
		tbl.CreateAttr("data-id", n.ID)
	}
	if n.Name != "" {
		tbl.CreateAttr("data-name", n.Name)
	}
	tbl.CreateAttr("style", blockDeclarations(n, pl).Inline())

	if len(n.Table.Grid) > 0 {
		cols := tbl.CreateElement("colgroup")
		for _, w := range n.Table.Grid {
			col := cols.CreateElement("col")
			col.CreateAttr("style", css.Declarations{{Property: "width", Value: formatPx(f.w(w))}}.Inline())
		}
	}

	// cell text has no placeholder to inherit from
	var cellIn inheritance
	for _, row := range n.Table.Rows {
		tr := tbl.CreateElement("tr")
		if row.Height > 0 {
			tr.CreateAttr("style", css.Declarations{{Property: "height", Value: formatPx(f.h(row.Height))}}.Inline())
		}
		for i := range row.Cells {
			cell := &row.Cells[i]
			if cell.HMerge || cell.VMerge {
				continue
			}
			td := tr.CreateElement("td")
			if cell.GridSpan > 1 {
				td.CreateAttr("colspan", strconv.Itoa(cell.GridSpan))
			}
			if cell.RowSpan > 1 {
				td.CreateAttr("rowspan", strconv.Itoa(cell.RowSpan))
			}
			if c := cell.Fill.SolidColor(); c != nil {
				td.CreateAttr("style", css.Declarations{{Property: "background-color", Value: cssColor(s.colors.resolve(c))}}.Inline())
			}
			if cell.Text != nil {
				s.textBody(td, cell.Text, cellIn)
			}
		}
	}
}
