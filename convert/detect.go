package convert

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
)

// enough for every matcher filetype has
const sniffLen = 262

var deckExtensions = []string{".pptx", ".pptm", ".ppsx", ".potx"}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

// isArchiveFile reports zip archives which may hold presentations. Decks are
// zip files too, so only files with .zip extension qualify.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isDeckFile reports presentation packages. Content sniffing only sees the
// first local header, so zip directory is consulted when it is inconclusive.
func isDeckFile(path string) (bool, error) {
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return false, nil
	}
	if kind.Extension == "pptx" {
		return true, nil
	}
	if !filetype.IsArchive(head) {
		return false, nil
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		// damaged or not really zip, nothing we can do here
		return false, nil
	}
	defer r.Close()
	return hasPresentationPart(r.File), nil
}

func hasPresentationPart(files []*zip.File) bool {
	for _, f := range files {
		if strings.EqualFold(strings.TrimPrefix(f.Name, "/"), "ppt/presentation.xml") {
			return true
		}
	}
	return false
}

// isDeckInArchive decides by name, entries are not opened twice.
func isDeckInArchive(f *zip.File) bool {
	return slices.Contains(deckExtensions, strings.ToLower(filepath.Ext(f.FileHeader.Name)))
}
