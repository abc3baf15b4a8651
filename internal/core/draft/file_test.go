package draft

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "petition.txt")
	require.NoError(t, os.WriteFile(path, []byte("The petitioner was denied a hearing."), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)

	assert.Equal(t, "petition.txt", f.Name)
	assert.Equal(t, int64(36), f.Size)
	assert.Contains(t, f.MIMEType, "text/plain")
	assert.Equal(t, path, f.Path())

	rc, err := f.Open()
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "The petitioner was denied a hearing.", string(content))
}

func TestOpenFile_errors(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenFile(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = OpenFile(dir)
	assert.ErrorContains(t, err, "is a directory")
}

func TestNewSelectedFile(t *testing.T) {
	data := []byte("%PDF-1.4\n%âãÏÓ\n")

	f := NewSelectedFile("order.pdf", "", data)
	data[0] = 'X'

	assert.Equal(t, "order.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.MIMEType)
	assert.Equal(t, "", f.Path())

	rc, err := f.Open()
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, byte('%'), content[0])
}

func TestJoinQuestions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"nil", nil, ""},
		{"single", []string{"Q1"}, "Q1"},
		{"two", []string{"Q1", "Q2"}, "Q1\nQ2"},
		{"keeps empty entries", []string{"Q1", "", "Q3"}, "Q1\n\nQ3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinQuestions(tt.in))
		})
	}
}
