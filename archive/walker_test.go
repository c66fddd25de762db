package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
}

func TestWalk(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "decks.zip")
	writeZip(t, zipPath, []zipEntry{
		{"2024/q1.pptx", "one"},
		{"2024/q2.pptx", "two"},
		{"2025/q1.pptx", "three"},
		{"2024/", ""},
		{"readme.txt", "notes"},
	})

	tests := []struct {
		name    string
		pattern string
		want    int
	}{
		{"prefix", "2024/", 2},
		{"no match", "2023/", 0},
		{"everything", "", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.pattern, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				if file.FileInfo().IsDir() {
					t.Errorf("directory entry visited: %s", file.Name)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if len(visited) != tt.want {
				t.Errorf("visited %v, want %d entries", visited, tt.want)
			}
		})
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "decks.zip")
	writeZip(t, zipPath, []zipEntry{{"a.pptx", "a"}, {"b.pptx", "b"}})

	stop := errors.New("stop")
	calls := 0
	err := Walk(zipPath, "", func(string, *zip.File) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk() error = %v, want %v", err, stop)
	}
	if calls != 1 {
		t.Errorf("walkFn called %d times, want 1", calls)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk("/nonexistent/archive.zip", "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("expected error for nonexistent archive")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.zip")
		if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Walk(path, "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("expected error for invalid archive")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "evil.zip")
		writeZip(t, path, []zipEntry{{"../evil.pptx", "x"}})
		if err := Walk(path, "", func(string, *zip.File) error { return nil }); err == nil {
			t.Error("expected error for unsafe entry")
		}
	})
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"ppt/slides/slide1.xml", true},
		{"/etc/passwd", false},
		{`\windows\system32`, false},
		{"ppt/../../x", false},
		{`ppt\..\x`, false},
		{"ppt/..slides/x", true},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
