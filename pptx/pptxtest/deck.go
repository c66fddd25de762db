// Package pptxtest builds small in-memory presentations for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"pptxhtml/archive"
)

// Namespaces declares prefixes used by PresentationML parts.
const Namespaces = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

const relNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

// Part names of the default deck.
const (
	ContentTypes = "[Content_Types].xml"
	RootRels     = "_rels/.rels"
	Presentation = "ppt/presentation.xml"
	PresRels     = "ppt/_rels/presentation.xml.rels"
	Slide1       = "ppt/slides/slide1.xml"
	Slide1Rels   = "ppt/slides/_rels/slide1.xml.rels"
	Layout1      = "ppt/slideLayouts/slideLayout1.xml"
	Layout1Rels  = "ppt/slideLayouts/_rels/slideLayout1.xml.rels"
	Master1      = "ppt/slideMasters/slideMaster1.xml"
	Master1Rels  = "ppt/slideMasters/_rels/slideMaster1.xml.rels"
	Theme1       = "ppt/theme/theme1.xml"
	CoreProps    = "docProps/core.xml"
)

// Deck maps part names to content.
type Deck map[string]string

// Rel is a relationship entry for Rels.
type Rel struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Rels renders relationships part, Type is short form (slideLayout, image...).
func Rels(rels ...Rel) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		typ := relNS + r.Type
		if r.Type == "core-properties" {
			typ = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
		}
		mode := ""
		if r.External {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, r.ID, typ, r.Target, mode)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// Default returns a complete one slide deck: title and body placeholders
// inheriting everything from layout and master.
func Default() Deck {
	return Deck{
		ContentTypes: ContentTypesXML(Slide1),
		RootRels: Rels(
			Rel{ID: "rId1", Type: "officeDocument", Target: Presentation},
			Rel{ID: "rId2", Type: "core-properties", Target: CoreProps},
		),
		Presentation: PresentationXML(9144000, 6858000, "rId2"),
		PresRels: Rels(
			Rel{ID: "rId1", Type: "slideMaster", Target: "slideMasters/slideMaster1.xml"},
			Rel{ID: "rId2", Type: "slide", Target: "slides/slide1.xml"},
			Rel{ID: "rId3", Type: "theme", Target: "theme/theme1.xml"},
		),
		Slide1:      SlideXML(DefaultSlideTree),
		Slide1Rels:  Rels(Rel{ID: "rId1", Type: "slideLayout", Target: "../slideLayouts/slideLayout1.xml"}),
		Layout1:     LayoutXML(DefaultLayoutTree, ""),
		Layout1Rels: Rels(Rel{ID: "rId1", Type: "slideMaster", Target: "../slideMasters/slideMaster1.xml"}),
		Master1:     MasterXML(DefaultMasterTree),
		Master1Rels: Rels(
			Rel{ID: "rId1", Type: "slideLayout", Target: "../slideLayouts/slideLayout1.xml"},
			Rel{ID: "rId2", Type: "theme", Target: "../theme/theme1.xml"},
		),
		Theme1:    ThemeXML,
		CoreProps: CorePropsXML("Test deck", "Tester"),
	}
}

// With returns copy of the deck with part set.
func (d Deck) With(name, content string) Deck {
	c := maps.Clone(d)
	c[name] = content
	return c
}

// Without returns copy of the deck with part removed.
func (d Deck) Without(name string) Deck {
	c := maps.Clone(d)
	delete(c, name)
	return c
}

// WithSlide returns copy of the deck with slide1 shape tree replaced.
func (d Deck) WithSlide(tree string) Deck {
	return d.With(Slide1, SlideXML(tree))
}

// Zip packs the deck. Parts are written in sorted order so output is stable.
func (d Deck) Zip(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range slices.Sorted(maps.Keys(d)) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(d[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// Container packs the deck and opens it.
func (d Deck) Container(t testing.TB) *archive.Container {
	t.Helper()

	data := d.Zip(t)
	c, err := archive.NewContainer(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open container: %v", err)
	}
	return c
}

// WriteFile stores packed deck in dir and returns its path.
func (d Deck) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, d.Zip(t), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return path
}
