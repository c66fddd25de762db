package pptx

import (
	"path"
	"strings"

	"github.com/beevik/etree"
)

// Relationship types, last segment of the type URI.
const (
	RelOfficeDocument = "officeDocument"
	RelCoreProperties = "core-properties"
	RelSlide          = "slide"
	RelSlideLayout    = "slideLayout"
	RelSlideMaster    = "slideMaster"
	RelTheme          = "theme"
	RelImage          = "image"
	RelVideo          = "video"
	RelAudio          = "audio"
	RelMedia          = "media"
	RelHyperlink      = "hyperlink"
)

// Relationship is a resolved entry of a part relationships file. Target is a
// package part name unless External is set.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships of a single part keyed by id.
type Relationships map[string]Relationship

// ByID is safe to call on nil map.
func (r Relationships) ByID(id string) (Relationship, bool) {
	rel, ok := r[id]
	return rel, ok
}

// FirstOfType returns relationship of the given type with the smallest id,
// so the choice does not depend on map order.
func (r Relationships) FirstOfType(typ string) (Relationship, bool) {
	var (
		found Relationship
		ok    bool
	)
	for _, rel := range r {
		if rel.Type != typ {
			continue
		}
		if !ok || rel.ID < found.ID {
			found, ok = rel, true
		}
	}
	return found, ok
}

// RelsPartName returns name of relationships part for the given part:
// ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels. Package level
// relationships live in _rels/.rels.
func RelsPartName(part string) string {
	dir, base := path.Split(part)
	return dir + "_rels/" + base + ".rels"
}

// ResolveTarget makes package part name out of relationship target relative
// to its source part.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "/")
}

// relTypeName reduces type URI to its last segment.
func relTypeName(uri string) string {
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func parseRelationships(source string, doc *etree.Document) Relationships {
	rels := make(Relationships)
	root := doc.Root()
	if root == nil {
		return rels
	}
	for _, el := range root.SelectElements("Relationship") {
		id := el.SelectAttrValue("Id", "")
		if id == "" {
			continue
		}
		rel := Relationship{
			ID:       id,
			Type:     relTypeName(el.SelectAttrValue("Type", "")),
			External: strings.EqualFold(el.SelectAttrValue("TargetMode", ""), "External"),
		}
		target := el.SelectAttrValue("Target", "")
		if rel.External {
			rel.Target = target
		} else {
			// package level relationships have no source directory
			base := source
			if source == "" {
				base = "/"
			}
			rel.Target = ResolveTarget(base, target)
		}
		rels[id] = rel
	}
	return rels
}
