package convert

import (
	"strings"
	"testing"

	"pptxhtml/common"
	"pptxhtml/config"
	"pptxhtml/content"
	"pptxhtml/pptx"
)

func setupTestContentForTemplate(t *testing.T, meta pptx.Metadata, srcName string) *content.Content {
	t.Helper()
	if srcName == "" {
		srcName = "talk.pptx"
	}
	return &content.Content{
		SrcName: srcName,
		RefID:   "test-id",
		Deck: &pptx.Presentation{
			Meta:   meta,
			Slides: []*pptx.Slide{{Number: 1}, {Number: 2}, {Number: 3}},
		},
	}
}

func TestExpandTemplate(t *testing.T) {
	meta := pptx.Metadata{
		Title:    "Roadmap 2025",
		Creator:  "Jane Roe",
		Subject:  "Planning",
		Modified: "2024-01-02T03:04:05Z",
	}
	tests := []struct {
		name     string
		template string
		format   common.OutputFmt
		want     string
	}{
		{"simple text", "simple-text", common.OutputFmtHtml, "simple-text"},
		{"title", "{{ .Title }}", common.OutputFmtHtml, "Roadmap 2025"},
		{"author", "{{ .Author }}", common.OutputFmtHtml, "Jane Roe"},
		{"subject", "{{ .Subject }}", common.OutputFmtHtml, "Planning"},
		{"modified", "{{ .Modified }}", common.OutputFmtHtml, "2024-01-02T03:04:05Z"},
		{"slides", "{{ .Slides }}", common.OutputFmtHtml, "3"},
		{"format", "{{ .Format }}", common.OutputFmtEvents, "events"},
		{"source file", "{{ .SourceFile }}", common.OutputFmtHtml, "talk"},
		{"deck id", "{{ .DeckID }}", common.OutputFmtHtml, "test-id"},
		{"context", "{{ .Context }}", common.OutputFmtHtml, "output_name_template"},
		{"complex", "{{ .Author }}/{{ .Title }} ({{ .Slides }})", common.OutputFmtHtml, "Jane Roe/Roadmap 2025 (3)"},
		{"path separators", "{{ .Author }}/{{ .Subject }}/{{ .Title }}", common.OutputFmtHtml, "Jane Roe/Planning/Roadmap 2025"},
		{"sprig upper", "{{ .Title | upper }}", common.OutputFmtHtml, "ROADMAP 2025"},
		{"sprig replace", `{{ .Author | replace " " "_" }}`, common.OutputFmtHtml, "Jane_Roe"},
		{"sprig default", `{{ .Subject | default "none" }}`, common.OutputFmtHtml, "Planning"},
		{"sprig substr", "{{ .Modified | substr 0 4 }}", common.OutputFmtHtml, "2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestContentForTemplate(t, meta, "")

			got, err := expandTemplate(c, config.OutputNameTemplateFieldName, tt.template, tt.format)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_TitleFallback(t *testing.T) {
	c := setupTestContentForTemplate(t, pptx.Metadata{}, "dir/Weekly sync.pptx")

	got, err := expandTemplate(c, config.OutputNameTemplateFieldName, `{{ .Title }}|{{ .Author | default "anonymous" }}`, common.OutputFmtHtml)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if want := "Weekly sync|anonymous"; got != want {
		t.Errorf("expandTemplate() = %q, want %q", got, want)
	}
}

func TestExpandTemplate_InvalidTemplate(t *testing.T) {
	c := setupTestContentForTemplate(t, pptx.Metadata{}, "")

	_, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ .Title ", common.OutputFmtHtml)
	if err == nil || !strings.Contains(err.Error(), "unable to parse template field") {
		t.Errorf("expandTemplate() error = %v", err)
	}
}

func TestExpandTemplate_InvalidField(t *testing.T) {
	c := setupTestContentForTemplate(t, pptx.Metadata{}, "")

	if _, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ .Genres }}", common.OutputFmtHtml); err == nil {
		t.Error("expandTemplate() with unknown field succeeded")
	}
}
