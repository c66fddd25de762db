package content

import (
	"pptxhtml/utils/debug"
)

// String returns a readable tree of the Content followed by parsed
// presentation. It exists solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Content source=%q ref=%s", c.SrcName, c.RefID)
	if c.Container != nil {
		names := c.Container.Names()
		tw.Line(1, "Parts: %d", len(names))
		for _, name := range names {
			tw.Line(2, "%s", name)
		}
	}
	return tw.String() + "\n" + c.Deck.String()
}
