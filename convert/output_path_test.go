package convert

import (
	"path/filepath"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"pptxhtml/common"
	"pptxhtml/config"
	"pptxhtml/content"
	"pptxhtml/pptx"
	"pptxhtml/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	return &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
	}
}

func setupTestContentForPath(t *testing.T) *content.Content {
	t.Helper()
	return &content.Content{
		SrcName: "talk.pptx",
		RefID:   "0190b6c2-0000-7000-8000-000000000000",
		Deck: &pptx.Presentation{
			Meta:   pptx.Metadata{Title: "Quarterly Review", Creator: "Jane Roe"},
			Slides: []*pptx.Slide{{Number: 1}, {Number: 2}},
		},
	}
}

func TestBuildOutputPath_SimpleCase_NoDirs(t *testing.T) {
	c := setupTestContentForPath(t)
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(c, "talks/2024/talk.pptx", "/output", common.OutputFmtHtml, env)
	if expected := filepath.Join("/output", "talk.html"); result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_SimpleCase_WithDirs(t *testing.T) {
	c := setupTestContentForPath(t)
	env := setupTestEnvForOutputPath(t, false, false, "")

	result := buildOutputPath(c, "talks/2024/talk.pptx", "/output", common.OutputFmtHtml, env)
	if expected := filepath.Join("/output", "talks", "2024", "talk.html"); result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_DifferentFormats(t *testing.T) {
	tests := []struct {
		name   string
		format common.OutputFmt
		ext    string
	}{
		{"html", common.OutputFmtHtml, ".html"},
		{"events", common.OutputFmtEvents, ".jsonl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestContentForPath(t)
			env := setupTestEnvForOutputPath(t, true, false, "")

			result := buildOutputPath(c, "talk.pptx", "/output", tt.format, env)
			if expected := filepath.Join("/output", "talk"+tt.ext); result != expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, expected)
			}
		})
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	c := setupTestContentForPath(t)
	env := setupTestEnvForOutputPath(t, true, true, "")

	result := buildOutputPath(c, "Доклад.pptx", "/output", common.OutputFmtHtml, env)
	if expected := filepath.Join("/output", "doklad.html"); result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expected string
	}{
		{"metadata", "{{ .Author }}/{{ .Title }}", filepath.Join("/output", "Jane Roe", "Quarterly Review.html")},
		{"slides", "{{ .SourceFile }}-{{ .Slides }}", filepath.Join("/output", "talk-2.html")},
		{"no escape", "../../{{ .Title }}", filepath.Join("/output", "Quarterly Review.html")},
		{"broken template falls back", "{{ .Title ", filepath.Join("/output", "talk.html")},
		{"unknown field falls back", "{{ .Genres }}", filepath.Join("/output", "talk.html")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestContentForPath(t)
			env := setupTestEnvForOutputPath(t, true, false, tt.template)

			result := buildOutputPath(c, "talk.pptx", "/output", common.OutputFmtHtml, env)
			if result != tt.expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetermineOutputDir(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "")
	if result := determineOutputDir("talks/2024/talk.pptx", "/output", env); result != "/output" {
		t.Errorf("determineOutputDir() = %q, want %q", result, "/output")
	}

	env = setupTestEnvForOutputPath(t, false, false, "")
	if result, expected := determineOutputDir("talks/2024/talk.pptx", "/output", env), filepath.Join("/output", "talks", "2024"); result != expected {
		t.Errorf("determineOutputDir() = %q, want %q", result, expected)
	}
}

func TestBuildDefaultFileName(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		transliterate bool
		format        common.OutputFmt
		expected      string
	}{
		{"simple", "talk.pptx", false, common.OutputFmtHtml, "talk.html"},
		{"with path", "path/to/talk.pptx", false, common.OutputFmtHtml, "talk.html"},
		{"events", "talk.pptx", false, common.OutputFmtEvents, "talk.jsonl"},
		{"transliterate", "Доклад.pptx", true, common.OutputFmtHtml, "doklad.html"},
		{"hidden", ".talk.pptx", false, common.OutputFmtHtml, "talk.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			if result := buildDefaultFileName(tt.src, tt.format, env); result != tt.expected {
				t.Errorf("buildDefaultFileName() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"simple path", "author/talk", []string{"author", "talk"}},
		{"single segment", "talk", []string{"talk"}},
		{"with trailing slash", "author/talk/", []string{"author", "talk"}},
		{"three levels", "year/author/talk", []string{"year", "author", "talk"}},
		{"relative segments", "./a/../b", []string{"a", "b"}},
		{"empty path", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := splitAndCleanPath(tt.path); !slices.Equal(result, tt.expected) {
				t.Errorf("splitAndCleanPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanPathSegment(t *testing.T) {
	tests := []struct {
		name          string
		segment       string
		transliterate bool
		expected      string
	}{
		{"simple segment", "author", false, "author"},
		{"with spaces", "My Talk", false, "My Talk"},
		{"transliterate cyrillic", "Автор", true, "avtor"},
		{"special chars", "talk:name", false, "talkname"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			if result := cleanPathSegment(tt.segment, env); result != tt.expected {
				t.Errorf("cleanPathSegment() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAssemblePathWithSubdirs(t *testing.T) {
	tests := []struct {
		name          string
		expandedName  string
		transliterate bool
		format        common.OutputFmt
		expected      string
	}{
		{"nested", "author/talk", false, common.OutputFmtHtml, filepath.Join("/output", "author", "talk.html")},
		{"single level", "talk", false, common.OutputFmtHtml, filepath.Join("/output", "talk.html")},
		{"with transliterate", "Автор/Доклад", true, common.OutputFmtHtml, filepath.Join("/output", "avtor", "doklad.html")},
		{"events", "author/talk", false, common.OutputFmtEvents, filepath.Join("/output", "author", "talk.jsonl")},
		{"empty", "", false, common.OutputFmtHtml, "/output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			if result := assemblePathWithSubdirs("/output", tt.expandedName, tt.format, env); result != tt.expected {
				t.Errorf("assemblePathWithSubdirs() = %q, want %q", result, tt.expected)
			}
		})
	}
}
