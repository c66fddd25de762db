// Package pptx reads PresentationML packages into a strongly typed model:
// slides, layouts, masters and themes linked through relationships.
//
// Only attributes needed for rendering are kept. Optional values are pointers
// (or empty strings) so "not set" is always distinguishable from zero, and
// accessors are nil-safe: a miss anywhere in a chain of calls yields a miss.
package pptx

// Emu is a length in English Metric Units.
type Emu int64

// EmuPerInch is the number of EMU in one inch.
const EmuPerInch = 914400

type Point struct {
	X, Y Emu
}

type Size struct {
	CX, CY Emu
}

// Transform is a 2D transformation of a node (a:xfrm). Offsets and extents
// missing from the source or failing to parse are nil. Rotation is in 60000ths
// of a degree.
type Transform struct {
	Offset      *Point
	Extent      *Size
	ChildOffset *Point
	ChildExtent *Size
	Rotation    int64
	FlipH       bool
	FlipV       bool
}

// Flipped reports whether any flip is requested.
func (t *Transform) Flipped() bool {
	return t != nil && (t.FlipH || t.FlipV)
}

// Placeholder describes p:ph reference. Empty fields are not set.
type Placeholder struct {
	Type string
	Idx  string
}

// ColorKind is a kind of color reference.
type ColorKind string

const (
	ColorRGB    ColorKind = "srgbClr"
	ColorScheme ColorKind = "schemeClr"
	ColorScRGB  ColorKind = "scrgbClr"
	ColorPreset ColorKind = "prstClr"
	ColorHSL    ColorKind = "hslClr"
	ColorSystem ColorKind = "sysClr"
)

// Color is a color reference. Numeric components are kept as written, they
// may carry a percent sign.
type Color struct {
	Kind ColorKind
	// srgb hex, scheme slot, preset or system color name
	Val     string
	LastClr string
	R, G, B string
	Hue     string
	Sat     string
	Lum     string
	// tint in 1/100000, nil when absent
	Tint *int
}

// FillKind is a kind of fill.
type FillKind string

const (
	FillSolid FillKind = "solid"
	FillNone  FillKind = "none"
	// gradient, pattern, picture and group fills are recognized but not
	// rendered
	FillOther FillKind = "other"
)

type Fill struct {
	Kind  FillKind
	Color *Color
}

// SolidColor returns color of the solid fill, nil for anything else.
func (f *Fill) SolidColor() *Color {
	if f == nil || f.Kind != FillSolid {
		return nil
	}
	return f.Color
}

// Line is a shape outline (a:ln).
type Line struct {
	Width *Emu
	Fill  *Fill
}

// PathCommandKind is a kind of custom geometry path command.
type PathCommandKind string

const (
	PathMoveTo  PathCommandKind = "moveTo"
	PathLineTo  PathCommandKind = "lnTo"
	PathCubicTo PathCommandKind = "cubicBezTo"
)

// PathPoint is a single point of a path command. Every point carries the
// sequence number of the command it belongs to; cubic commands contribute
// three consecutive points sharing the same number.
type PathPoint struct {
	Kind PathCommandKind
	Seq  int
	Pt   Point
}

// Path is one a:path of custom geometry.
type Path struct {
	Width, Height Emu
	Start         *Point
	Points        []PathPoint
	Closed        bool
}

type CustomGeometry struct {
	Paths []Path
}

// ShapeProperties are visual properties of a node (p:spPr, p:grpSpPr).
type ShapeProperties struct {
	Xfrm   *Transform
	Preset string
	Custom *CustomGeometry
	Fill   *Fill
	Line   *Line
}

// NodeKind discriminates nodes of a shape tree.
type NodeKind string

const (
	NodeShape     NodeKind = "shape"
	NodeConnector NodeKind = "connector"
	NodePicture   NodeKind = "picture"
	NodeGroup     NodeKind = "group"
	NodeTable     NodeKind = "table"
)

// Node is an element of a shape tree. Kind tells which of the optional parts
// are meaningful: Text for shapes, Picture for pictures, Children for groups,
// Table for tables.
type Node struct {
	Kind NodeKind
	// z-order, document position inside the part counting from 1
	Order       int
	ID          string
	Name        string
	Placeholder *Placeholder
	Props       ShapeProperties
	Text        *TextBody
	Picture     *Picture
	Table       *Table
	Children    []*Node
}

// Xfrm returns node transform or nil.
func (n *Node) Xfrm() *Transform {
	if n == nil {
		return nil
	}
	return n.Props.Xfrm
}

// TextBody returns node text body or nil.
func (n *Node) TextBody() *TextBody {
	if n == nil {
		return nil
	}
	return n.Text
}

// PlaceholderType returns declared placeholder type, empty when none.
func (n *Node) PlaceholderType() string {
	if n == nil || n.Placeholder == nil {
		return ""
	}
	return n.Placeholder.Type
}

// MediaKind is kind of media attached to a picture.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

type Media struct {
	Kind  MediaKind
	RelID string
}

// Picture references image (and possibly media) parts through relationships.
type Picture struct {
	EmbedID string
	LinkID  string
	Media   *Media
}

type Table struct {
	Grid []Emu
	Rows []TableRow
}

type TableRow struct {
	Height Emu
	Cells  []TableCell
}

type TableCell struct {
	GridSpan int
	RowSpan  int
	HMerge   bool
	VMerge   bool
	Fill     *Fill
	Text     *TextBody
}

// BodyProperties are a:bodyPr attributes.
type BodyProperties struct {
	// t, ctr, b or empty
	Anchor string
}

type TextBody struct {
	Body       BodyProperties
	ListStyle  *ListStyle
	Paragraphs []Paragraph
}

// Styles returns list style of the body or nil.
func (b *TextBody) Styles() *ListStyle {
	if b == nil {
		return nil
	}
	return b.ListStyle
}

// FirstParagraph returns properties of the first paragraph or nil.
func (b *TextBody) FirstParagraph() *ParagraphProperties {
	if b == nil || len(b.Paragraphs) == 0 {
		return nil
	}
	return b.Paragraphs[0].Props
}

// AnchorValue returns body anchor, empty when not set.
func (b *TextBody) AnchorValue() string {
	if b == nil {
		return ""
	}
	return b.Body.Anchor
}

// MaxLevels is number of outline levels in list styles.
const MaxLevels = 9

// ListStyle is a:lstStyle or one of p:txStyles children.
type ListStyle struct {
	Default *ParagraphProperties
	Levels  [MaxLevels]*ParagraphProperties
}

// Level returns properties for zero based outline level or nil.
func (l *ListStyle) Level(lvl int) *ParagraphProperties {
	if l == nil || lvl < 0 || lvl >= MaxLevels {
		return nil
	}
	return l.Levels[lvl]
}

// BulletKind is kind of paragraph bullet.
type BulletKind string

const (
	BulletUnset   BulletKind = ""
	BulletNone    BulletKind = "none"
	BulletChar    BulletKind = "char"
	BulletAutoNum BulletKind = "autoNum"
	BulletPicture BulletKind = "picture"
)

type BulletFont struct {
	Typeface    string
	PitchFamily *int
}

type Bullet struct {
	Kind    BulletKind
	Char    string
	AutoNum string
	StartAt *int
	BlipID  string
	Font    *BulletFont
	Color   *Color
	// hundredths of a point
	SizePts *int
	// thousandths of a percent
	SizePct *int
}

// ParagraphProperties are a:pPr or a:lvlNpPr attributes and children.
type ParagraphProperties struct {
	// zero based outline level
	Level    *int
	Align    string
	MarL     *Emu
	Indent   *Emu
	RTL      *bool
	Bullet   Bullet
	Defaults *RunProperties
}

// LevelValue returns outline level, 0 when not set.
func (p *ParagraphProperties) LevelValue() int {
	if p == nil || p.Level == nil {
		return 0
	}
	return *p.Level
}

// AlignValue returns paragraph alignment, empty when not set.
func (p *ParagraphProperties) AlignValue() string {
	if p == nil {
		return ""
	}
	return p.Align
}

// RunDefaults returns default run properties (a:defRPr) or nil.
func (p *ParagraphProperties) RunDefaults() *RunProperties {
	if p == nil {
		return nil
	}
	return p.Defaults
}

// IsRTL reports right to left paragraph direction.
func (p *ParagraphProperties) IsRTL() bool {
	return p != nil && p.RTL != nil && *p.RTL
}

type Hyperlink struct {
	RelID   string
	Tooltip string
}

// RunProperties are a:rPr, a:defRPr or a:endParaRPr.
type RunProperties struct {
	// hundredths of a point
	Size      *int
	Bold      *bool
	Italic    *bool
	Underline string
	Strike    string
	// thousandths of a percent
	Baseline  *int
	Fill      *Fill
	Highlight *Color
	Latin     string
	Link      *Hyperlink
}

// SizeValue returns font size if set.
func (r *RunProperties) SizeValue() (int, bool) {
	if r == nil || r.Size == nil {
		return 0, false
	}
	return *r.Size, true
}

// BoldValue returns bold flag if set.
func (r *RunProperties) BoldValue() (bool, bool) {
	if r == nil || r.Bold == nil {
		return false, false
	}
	return *r.Bold, true
}

// ItalicValue returns italic flag if set.
func (r *RunProperties) ItalicValue() (bool, bool) {
	if r == nil || r.Italic == nil {
		return false, false
	}
	return *r.Italic, true
}

// UnderlineValue returns underline style if set.
func (r *RunProperties) UnderlineValue() (string, bool) {
	if r == nil || r.Underline == "" {
		return "", false
	}
	return r.Underline, true
}

// StrikeValue returns strike style if set.
func (r *RunProperties) StrikeValue() (string, bool) {
	if r == nil || r.Strike == "" {
		return "", false
	}
	return r.Strike, true
}

// LatinValue returns latin typeface if set.
func (r *RunProperties) LatinValue() (string, bool) {
	if r == nil || r.Latin == "" {
		return "", false
	}
	return r.Latin, true
}

// FillColor returns solid fill color or nil.
func (r *RunProperties) FillColor() *Color {
	if r == nil {
		return nil
	}
	return r.Fill.SolidColor()
}

// RunKind is kind of paragraph content.
type RunKind string

const (
	RunText  RunKind = "text"
	RunBreak RunKind = "break"
	RunField RunKind = "field"
)

type Run struct {
	Kind RunKind
	// nil when run carries no a:t
	Text      *string
	Props     *RunProperties
	FieldType string
}

type Paragraph struct {
	Props *ParagraphProperties
	Runs  []Run
	End   *RunProperties
}

// ColorMap maps logical color names (tx1, bg1, ...) onto theme slots.
type ColorMap map[string]string

// TextStyles are master p:txStyles.
type TextStyles struct {
	Title *ListStyle
	Body  *ListStyle
	Other *ListStyle
}

// Theme keeps color and font schemes.
type Theme struct {
	Path       string
	Name       string
	Colors     map[string]Color
	MajorLatin string
	MinorLatin string
}

type Master struct {
	Path       string
	Tree       []*Node
	Index      *PlaceholderIndex
	Rels       Relationships
	ColorMap   ColorMap
	TextStyles TextStyles
	ThemePath  string
}

type Layout struct {
	Path  string
	Name  string
	Tree  []*Node
	Index *PlaceholderIndex
	Rels  Relationships
	// nil when layout uses master mapping
	ColorMapOverride ColorMap
	MasterPath       string
}

type Slide struct {
	// one based position in presentation
	Number int
	Path   string
	Hidden bool
	Tree   []*Node
	Rels   Relationships
	// nil when slide uses master mapping
	ColorMapOverride ColorMap
	LayoutPath       string
}

// Metadata is a subset of package core properties.
type Metadata struct {
	Title    string
	Creator  string
	Subject  string
	Modified string
}
