package pptx

import (
	"testing"

	"pptxhtml/archive"
	"pptxhtml/pptx/pptxtest"
)

func TestRelsPartName(t *testing.T) {
	tests := []struct{ part, want string }{
		{"", "_rels/.rels"},
		{"ppt/presentation.xml", "ppt/_rels/presentation.xml.rels"},
		{"ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels"},
	}
	for _, tt := range tests {
		if got := RelsPartName(tt.part); got != tt.want {
			t.Errorf("RelsPartName(%q) = %q, want %q", tt.part, got, tt.want)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct{ source, target, want string }{
		{"ppt/slides/slide1.xml", "../slideLayouts/slideLayout2.xml", "ppt/slideLayouts/slideLayout2.xml"},
		{"ppt/slides/slide1.xml", "../media/image1.png", "ppt/media/image1.png"},
		{"ppt/presentation.xml", "slides/slide3.xml", "ppt/slides/slide3.xml"},
		{"ppt/presentation.xml", "/ppt/slides/slide3.xml", "ppt/slides/slide3.xml"},
		{"/", "ppt/presentation.xml", "ppt/presentation.xml"},
	}
	for _, tt := range tests {
		if got := ResolveTarget(tt.source, tt.target); got != tt.want {
			t.Errorf("ResolveTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestParseRelationships(t *testing.T) {
	xml := pptxtest.Rels(
		pptxtest.Rel{ID: "rId3", Type: "image", Target: "../media/image1.png"},
		pptxtest.Rel{ID: "rId1", Type: "slideLayout", Target: "../slideLayouts/slideLayout1.xml"},
		pptxtest.Rel{ID: "rId2", Type: "hyperlink", Target: "https://example.com/a?b=1", External: true},
		pptxtest.Rel{ID: "rId4", Type: "image", Target: "../media/image2.png"},
	)
	doc, err := archive.ParseXML([]byte(xml))
	if err != nil {
		t.Fatal(err)
	}
	rels := parseRelationships("ppt/slides/slide1.xml", doc)

	if len(rels) != 4 {
		t.Fatalf("len = %d, want 4", len(rels))
	}
	layout, ok := rels.FirstOfType(RelSlideLayout)
	if !ok || layout.Target != "ppt/slideLayouts/slideLayout1.xml" {
		t.Errorf("layout = %+v", layout)
	}
	link, ok := rels.ByID("rId2")
	if !ok || !link.External || link.Target != "https://example.com/a?b=1" {
		t.Errorf("link = %+v", link)
	}
	img, _ := rels.FirstOfType(RelImage)
	if img.ID != "rId3" {
		t.Errorf("first image = %q, want rId3", img.ID)
	}
	if _, ok := rels.FirstOfType(RelTheme); ok {
		t.Error("unexpected theme relationship")
	}

	var empty Relationships
	if _, ok := empty.ByID("rId1"); ok {
		t.Error("lookup in nil map succeeded")
	}
}
