package draft

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// SelectedFile references a draft chosen by the user. It is never mutated
// after creation; choosing another file replaces it.
type SelectedFile struct {
	Name     string
	MIMEType string
	Size     int64

	path string
	data []byte
}

// OpenFile selects the file at path. The path must name a readable regular
// file; its MIME type is sniffed from the content.
func OpenFile(path string) (SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SelectedFile{}, fmt.Errorf("stat draft: %w", err)
	}
	if info.IsDir() {
		return SelectedFile{}, fmt.Errorf("stat draft: %s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return SelectedFile{}, fmt.Errorf("detect mime type: %w", err)
	}

	return SelectedFile{
		Name:     filepath.Base(path),
		MIMEType: mtype.String(),
		Size:     info.Size(),
		path:     path,
	}, nil
}

// NewSelectedFile builds a file from in-memory content. An empty mimeType is
// sniffed from data.
func NewSelectedFile(name, mimeType string, data []byte) SelectedFile {
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	return SelectedFile{
		Name:     name,
		MIMEType: mimeType,
		Size:     int64(len(buf)),
		data:     buf,
	}
}

// Path returns the filesystem path the file was opened from, or "" for
// in-memory files.
func (f SelectedFile) Path() string { return f.path }

// Open returns a reader over the file content. Callers must close it.
func (f SelectedFile) Open() (io.ReadCloser, error) {
	if f.path == "" {
		return io.NopCloser(bytes.NewReader(f.data)), nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open draft: %w", err)
	}
	return file, nil
}
