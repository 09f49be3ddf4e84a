package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

// DocumentExt is the extension of content documents on disk.
const DocumentExt = ".mdx"

// documentCodec maps a record to and from a front-matter document.
type documentCodec[T any] struct {
	slugOf      func(T) string
	publishedOf func(T) string
	// encode returns the header value and the body.
	encode func(T) (any, string)
	decode func(slug string, meta []byte, format string, body string) (T, error)
}

// FileStore keeps one document per record in a directory. It has no
// ordering column; List is always newest first by publishedAt. Documents
// whose name is not a valid slug cannot be addressed and are left out of
// List.
type FileStore[T any] struct {
	kind   models.Kind
	dir    string
	codec  documentCodec[T]
	logger *zap.Logger
	// create opens a new document, failing with fs.ErrExist when it exists.
	create func(path string) (io.WriteCloser, error)
}

func createExclusive(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// WithLogger sets the logger that reports skipped documents.
func (s *FileStore[T]) WithLogger(logger *zap.Logger) *FileStore[T] {
	s.logger = logger
	return s
}

func (s *FileStore[T]) log() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

func (s *FileStore[T]) Dir() string {
	return s.dir
}

func (s *FileStore[T]) path(slug string) (string, bool) {
	if !content.IsValidSlug(slug) {
		return "", false
	}
	p := SafeJoin(s.dir, "", slug+DocumentExt)
	return p, p != ""
}

func (s *FileStore[T]) read(slug, path string) (T, string, error) {
	var zero T
	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, "", err
	}
	meta, body, format, err := SplitFrontMatter(raw)
	if err != nil {
		return zero, "", fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	record, err := s.codec.decode(slug, meta, format, body)
	if err != nil {
		return zero, "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return record, format, nil
}

func (s *FileStore[T]) render(record T, format string) ([]byte, error) {
	meta, body := s.codec.encode(record)
	return ConstructFileContent(meta, body, format)
}

func (s *FileStore[T]) List(ctx context.Context) ([]T, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s directory: %w", s.kind, err)
	}

	records := make([]T, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DocumentExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slug := strings.TrimSuffix(entry.Name(), DocumentExt)
		if !content.IsValidSlug(slug) {
			s.log().Warn("skipping document with invalid name",
				zap.String("kind", string(s.kind)),
				zap.String("file", entry.Name()))
			continue
		}
		record, _, err := s.read(slug, filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		ti := parsePublished(s.codec.publishedOf(records[i]))
		tj := parsePublished(s.codec.publishedOf(records[j]))
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return s.codec.slugOf(records[i]) < s.codec.slugOf(records[j])
	})
	return records, nil
}

// Slugs lists the document names without parsing them. Names that are not
// valid slugs are included so the importer can report them as failures.
func (s *FileStore[T]) Slugs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read %s directory: %w", s.kind, err)
	}
	slugs := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DocumentExt) {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(entry.Name(), DocumentExt))
	}
	return slugs, nil
}

func (s *FileStore[T]) Get(ctx context.Context, slug string) (*T, error) {
	path, ok := s.path(slug)
	if !ok {
		return nil, nil
	}
	record, _, err := s.read(slug, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *FileStore[T]) Insert(ctx context.Context, record T) (*T, error) {
	slug := s.codec.slugOf(record)
	path, ok := s.path(slug)
	if !ok {
		return nil, &content.ValidationError{Field: "slug", Reason: "is not a valid document name"}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s directory: %w", s.kind, err)
	}

	data, err := s.render(record, formatYAML)
	if err != nil {
		return nil, err
	}

	create := s.create
	if create == nil {
		create = createExclusive
	}
	f, err := create(path)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &content.DuplicateSlugError{Kind: s.kind, Slug: slug}
		}
		return nil, fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return &record, nil
}

// Update rewrites the whole document. A changed slug renames the file.
func (s *FileStore[T]) Update(ctx context.Context, slug string, record T) (*T, error) {
	oldPath, ok := s.path(slug)
	if !ok {
		return nil, &content.NotFoundError{Kind: s.kind, Slug: slug}
	}
	_, format, err := s.read(slug, oldPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &content.NotFoundError{Kind: s.kind, Slug: slug}
		}
		return nil, err
	}

	newSlug := s.codec.slugOf(record)
	newPath, ok := s.path(newSlug)
	if !ok {
		return nil, &content.ValidationError{Field: "slug", Reason: "is not a valid document name"}
	}
	if newPath != oldPath {
		if _, err := os.Stat(newPath); err == nil {
			return nil, &content.DuplicateSlugError{Kind: s.kind, Slug: newSlug}
		}
	}

	data, err := s.render(record, format)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(newPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", filepath.Base(newPath), err)
	}
	if newPath != oldPath {
		if err := os.Remove(oldPath); err != nil {
			return nil, fmt.Errorf("remove %s: %w", filepath.Base(oldPath), err)
		}
	}
	return &record, nil
}

func (s *FileStore[T]) Delete(ctx context.Context, slug string) error {
	path, ok := s.path(slug)
	if !ok {
		return &content.NotFoundError{Kind: s.kind, Slug: slug}
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &content.NotFoundError{Kind: s.kind, Slug: slug}
		}
		return fmt.Errorf("delete %s: %w", filepath.Base(path), err)
	}
	return nil
}

var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parsePublished returns the zero time for unparseable dates, which sorts
// them last.
func parsePublished(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
