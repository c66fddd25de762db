package pptx

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// Default slide size (10in x 7.5in) used when presentation does not declare one.
const (
	DefaultSlideWidth  Emu = 9144000
	DefaultSlideHeight Emu = 6858000
)

const (
	defaultPresentationPart = "ppt/presentation.xml"
	defaultCorePart         = "docProps/core.xml"
	contentTypesPart        = "[Content_Types].xml"
	slideContentType        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

// PartSource gives access to package parts by name.
type PartSource interface {
	Has(name string) bool
	ReadBytes(name string) ([]byte, error)
	ReadXML(name string) (*etree.Document, error)
}

// Presentation is the part index of a loaded package: ordered slides plus
// lazily loaded and cached layouts, masters and themes. Parts are immutable
// once loaded. Presentation is not safe for concurrent use.
type Presentation struct {
	Path   string
	Size   Size
	Slides []*Slide
	Meta   Metadata

	src     PartSource
	layouts map[string]*Layout
	masters map[string]*Master
	themes  map[string]*Theme
	log     *zap.Logger
}

// Chain is inheritance chain of a single slide.
type Chain struct {
	Slide  *Slide
	Layout *Layout
	Master *Master
	Theme  *Theme
}

// Load reads presentation part, slide order and all slides. Layouts, masters
// and themes are loaded on demand by Chain.
func Load(src PartSource, log *zap.Logger) (*Presentation, error) {
	log = log.Named("pptx")

	p := &Presentation{
		Path:    defaultPresentationPart,
		Size:    Size{CX: DefaultSlideWidth, CY: DefaultSlideHeight},
		src:     src,
		layouts: make(map[string]*Layout),
		masters: make(map[string]*Master),
		themes:  make(map[string]*Theme),
		log:     log,
	}

	corePath := defaultCorePart
	if src.Has(RelsPartName("")) {
		rels, err := p.relationships("")
		if err != nil {
			return nil, err
		}
		if rel, ok := rels.FirstOfType(RelOfficeDocument); ok {
			p.Path = rel.Target
		}
		if rel, ok := rels.FirstOfType(RelCoreProperties); ok {
			corePath = rel.Target
		}
	}

	var slidePaths []string
	if src.Has(p.Path) {
		doc, err := src.ReadXML(p.Path)
		if err != nil {
			return nil, fmt.Errorf("unable to read presentation: %w", err)
		}
		rels, err := p.relationships(p.Path)
		if err != nil {
			return nil, err
		}
		slidePaths = p.parsePresentation(doc, rels)
	} else {
		log.Warn("Presentation part is missing, using defaults", zap.String("part", p.Path))
	}

	if len(slidePaths) == 0 {
		paths, err := p.slidesFromContentTypes()
		if err != nil {
			return nil, err
		}
		slidePaths = paths
	}
	if len(slidePaths) == 0 {
		return nil, errors.New("package contains no slides")
	}

	for i, name := range slidePaths {
		slide, err := p.loadSlide(name)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slide.Number = i + 1
		p.Slides = append(p.Slides, slide)
	}

	if src.Has(corePath) {
		if doc, err := src.ReadXML(corePath); err == nil {
			p.Meta = parseCoreProperties(doc)
		} else {
			log.Warn("Unable to read core properties, ignoring", zap.String("part", corePath), zap.Error(err))
		}
	}

	log.Debug("Presentation loaded", zap.String("part", p.Path), zap.Int("slides", len(p.Slides)),
		zap.Int64("cx", int64(p.Size.CX)), zap.Int64("cy", int64(p.Size.CY)))
	return p, nil
}

// relationships reads relationships of a part, absent relationships part
// yields empty set.
func (p *Presentation) relationships(part string) (Relationships, error) {
	name := RelsPartName(part)
	if !p.src.Has(name) {
		return Relationships{}, nil
	}
	doc, err := p.src.ReadXML(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read relationships %s: %w", name, err)
	}
	return parseRelationships(part, doc), nil
}

// parsePresentation extracts slide size and ordered slide list.
func (p *Presentation) parsePresentation(doc *etree.Document, rels Relationships) []string {
	root := doc.Root()
	if sz := root.SelectElement("sldSz"); sz != nil {
		if size := parseSize(sz); size != nil && size.CX > 0 && size.CY > 0 {
			p.Size = *size
		}
	}

	var paths []string
	lst := root.SelectElement("sldIdLst")
	if lst == nil {
		return nil
	}
	for _, id := range lst.SelectElements("sldId") {
		rid := id.SelectAttrValue("r:id", "")
		rel, ok := rels.ByID(rid)
		if !ok || rel.External {
			p.log.Warn("Slide reference cannot be resolved, ignoring", zap.String("id", rid))
			continue
		}
		paths = append(paths, rel.Target)
	}
	return paths
}

// slidesFromContentTypes lists slide parts declared in content types in
// natural order (slide2 before slide10).
func (p *Presentation) slidesFromContentTypes() ([]string, error) {
	if !p.src.Has(contentTypesPart) {
		return nil, nil
	}
	doc, err := p.src.ReadXML(contentTypesPart)
	if err != nil {
		return nil, fmt.Errorf("unable to read content types: %w", err)
	}
	var paths []string
	for _, el := range doc.Root().SelectElements("Override") {
		if el.SelectAttrValue("ContentType", "") != slideContentType {
			continue
		}
		paths = append(paths, strings.TrimPrefix(el.SelectAttrValue("PartName", ""), "/"))
	}
	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}

func (p *Presentation) loadSlide(name string) (*Slide, error) {
	doc, err := p.src.ReadXML(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}
	rels, err := p.relationships(name)
	if err != nil {
		return nil, err
	}
	slide := parseSlide(name, doc, p.log)
	slide.Rels = rels
	if rel, ok := rels.FirstOfType(RelSlideLayout); ok {
		slide.LayoutPath = rel.Target
	}
	return slide, nil
}

// Chain resolves slide -> layout -> master -> theme. Absent layout or master
// relationships and absent theme are fatal for the document.
func (p *Presentation) Chain(slide *Slide) (*Chain, error) {
	if slide.LayoutPath == "" {
		return nil, &MissingRelationshipError{Part: slide.Path, Type: RelSlideLayout}
	}
	layout, err := p.Layout(slide.LayoutPath)
	if err != nil {
		return nil, err
	}
	if layout.MasterPath == "" {
		return nil, &MissingRelationshipError{Part: layout.Path, Type: RelSlideMaster}
	}
	master, err := p.Master(layout.MasterPath)
	if err != nil {
		return nil, err
	}
	if master.ThemePath == "" || !p.src.Has(master.ThemePath) {
		return nil, &MissingThemeError{Part: master.Path}
	}
	theme, err := p.Theme(master.ThemePath)
	if err != nil {
		return nil, err
	}
	return &Chain{Slide: slide, Layout: layout, Master: master, Theme: theme}, nil
}

// Layout returns slide layout part, loading it on first access.
func (p *Presentation) Layout(name string) (*Layout, error) {
	if l, ok := p.layouts[name]; ok {
		return l, nil
	}
	doc, err := p.src.ReadXML(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read slide layout %s: %w", name, err)
	}
	rels, err := p.relationships(name)
	if err != nil {
		return nil, err
	}
	l := parseLayout(name, doc, p.log)
	l.Rels = rels
	if rel, ok := rels.FirstOfType(RelSlideMaster); ok {
		l.MasterPath = rel.Target
	}
	p.layouts[name] = l
	return l, nil
}

// Master returns slide master part, loading it on first access.
func (p *Presentation) Master(name string) (*Master, error) {
	if m, ok := p.masters[name]; ok {
		return m, nil
	}
	doc, err := p.src.ReadXML(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read slide master %s: %w", name, err)
	}
	rels, err := p.relationships(name)
	if err != nil {
		return nil, err
	}
	m := parseMaster(name, doc, p.log)
	m.Rels = rels
	if rel, ok := rels.FirstOfType(RelTheme); ok {
		m.ThemePath = rel.Target
	}
	p.masters[name] = m
	return m, nil
}

// Theme returns theme part, loading it on first access.
func (p *Presentation) Theme(name string) (*Theme, error) {
	if t, ok := p.themes[name]; ok {
		return t, nil
	}
	doc, err := p.src.ReadXML(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read theme %s: %w", name, err)
	}
	t := parseTheme(name, doc)
	p.themes[name] = t
	return t, nil
}

// ReadPart gives access to raw part data, media for example.
func (p *Presentation) ReadPart(name string) ([]byte, error) {
	return p.src.ReadBytes(name)
}
