package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/store"
)

// DefaultMaxUploadBytes is the upload limit when none is configured.
const DefaultMaxUploadBytes = 5 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"` // public URL path, e.g. /images/a.png
	Size int64  `json:"size"`
}

// Media stores uploaded images in a single directory served under URLPrefix.
type Media struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
	// now is swapped in tests.
	now func() time.Time
}

func NewMedia(dir, urlPrefix string, maxBytes int64) *Media {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Media{Dir: dir, URLPrefix: urlPrefix, MaxBytes: maxBytes, now: time.Now}
}

func (m *Media) publicPath(name string) string {
	return path.Join("/", m.URLPrefix, name)
}

// List returns the images in the media directory by name. A missing
// directory lists as empty.
func (m *Media) List() ([]MediaFile, error) {
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []MediaFile{}, nil
		}
		return nil, err
	}

	files := []MediaFile{}
	for _, entry := range entries {
		if entry.IsDir() || !hasImageExt(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, MediaFile{
			Name: entry.Name(),
			Path: m.publicPath(entry.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Save validates and stores one upload. The type is taken from the content,
// not the client's header, and the stored name is
// <slugified-base>-<unix millis><ext>.
func (m *Media) Save(filename string, size int64, src io.Reader) (*MediaFile, error) {
	if size > m.MaxBytes {
		return nil, &content.ValidationError{Field: "file", Reason: fmt.Sprintf("is too large, the maximum size is %s", humanBytes(m.MaxBytes))}
	}

	data, err := io.ReadAll(io.LimitReader(src, m.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > m.MaxBytes {
		return nil, &content.ValidationError{Field: "file", Reason: fmt.Sprintf("is too large, the maximum size is %s", humanBytes(m.MaxBytes))}
	}

	mtype, err := mimetype.DetectReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("detect upload type: %w", err)
	}
	if !imageTypes[mtype.String()] {
		return nil, &content.ValidationError{Field: "file", Reason: "must be a JPEG, PNG, GIF or WebP image"}
	}

	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	base = content.Slugify(base)
	if base == "" {
		base = "image"
	}
	name := fmt.Sprintf("%s-%d%s", base, m.now().UnixMilli(), mtype.Extension())

	target := store.SafeJoin(m.Dir, "", name)
	if target == "" {
		return nil, &content.ValidationError{Field: "file", Reason: "has an invalid name"}
	}
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	return &MediaFile{
		Name: name,
		Path: m.publicPath(name),
		Size: int64(len(data)),
	}, nil
}

func (m *Media) Delete(name string) error {
	target := store.SafeJoin(m.Dir, "", name)
	if target == "" || !hasImageExt(name) {
		return &content.ValidationError{Field: "name", Reason: "is not a media file"}
	}
	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &content.NotFoundError{Kind: "media", Slug: name}
		}
		return err
	}
	return nil
}

func hasImageExt(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func humanBytes(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}
