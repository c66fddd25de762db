package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"

	fixzip "github.com/hidez8891/zip"
)

// Repack copies archive at path entry by entry with data descriptor flag
// cleared and returns resulting archive. Some producers write descriptors with
// wrong sizes which standard reader refuses to accept.
func Repack(path string) ([]byte, error) {
	r, err := fixzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read archive file (%s): %w", path, err)
	}
	defer r.Close()

	buf := new(bytes.Buffer)
	w := fixzip.NewWriter(buf)
	for _, file := range r.File {
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return nil, fmt.Errorf("unable to copy entry %s: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("unable to finalize repacked archive: %w", err)
	}
	return buf.Bytes(), nil
}

// RepackReader is Repack for archives which are not files on disk. Data is
// spooled into a temporary file first.
func RepackReader(r io.Reader) ([]byte, error) {
	tmp, err := os.CreateTemp("", "pptxhtml-repack-*.zip")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("unable to spool archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	return Repack(tmp.Name())
}
