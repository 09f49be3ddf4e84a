package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cms/pkg/content"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestMedia(t *testing.T, maxBytes int64) *Media {
	t.Helper()
	m := NewMedia(filepath.Join(t.TempDir(), "images"), "/images", maxBytes)
	m.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return m
}

func TestMediaSaveAndList(t *testing.T) {
	m := newTestMedia(t, 0)

	file, err := m.Save("My Screenshot (1).PNG", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "my-screenshot-1-1700000000123.png", file.Name)
	assert.Equal(t, "/images/my-screenshot-1-1700000000123.png", file.Path)
	assert.FileExists(t, filepath.Join(m.Dir, file.Name))

	require.NoError(t, os.WriteFile(filepath.Join(m.Dir, "notes.txt"), []byte("x"), 0o644))

	files, err := m.List()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, file.Name, files[0].Name)
}

func TestMediaRejectsNonImages(t *testing.T) {
	m := newTestMedia(t, 0)
	_, err := m.Save("evil.png", 20, strings.NewReader("<html><script></script></html>"))
	assert.True(t, content.IsValidation(err))
}

func TestMediaRejectsLargeFiles(t *testing.T) {
	m := newTestMedia(t, 16)

	_, err := m.Save("big.png", 1024, bytes.NewReader(pngHeader))
	assert.True(t, content.IsValidation(err), "declared size over the limit")

	_, err = m.Save("big.png", 1, bytes.NewReader(pngHeader))
	assert.True(t, content.IsValidation(err), "actual size over the limit")
}

func TestMediaListMissingDir(t *testing.T) {
	m := newTestMedia(t, 0)
	files, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMediaDelete(t *testing.T) {
	m := newTestMedia(t, 0)
	file, err := m.Save("a.png", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, m.Delete(file.Name))
	assert.True(t, content.IsNotFound(m.Delete(file.Name)))
	assert.True(t, content.IsValidation(m.Delete("../secrets.png")))
}
