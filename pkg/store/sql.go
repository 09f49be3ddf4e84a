package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// tableMapping describes how one record type maps onto its table.
type tableMapping[T any] struct {
	// columns are written on insert and update, slug first.
	columns []string
	// dateOrder is the ordering after display_order, e.g. "published_at DESC".
	dateOrder string
	values    func(T) ([]any, error)
	// scan reads columns followed by display_order, created_at, updated_at.
	scan   func(rowScanner) (T, error)
	slugOf func(T) string
}

// SQLStore is the remote store for one content type. Postgres and SQLite
// share the same statements.
type SQLStore[T any] struct {
	db      *sql.DB
	kind    models.Kind
	mapping tableMapping[T]
}

func (s *SQLStore[T]) table() string {
	return string(s.kind)
}

func (s *SQLStore[T]) selectList(legacy bool) string {
	order := "display_order"
	if legacy {
		order = "NULL AS display_order"
	}
	return strings.Join(s.mapping.columns, ", ") + ", " + order + ", created_at, updated_at"
}

func (s *SQLStore[T]) orderBy(legacy bool) string {
	var parts []string
	if !legacy {
		parts = append(parts, "display_order ASC NULLS LAST")
	}
	if s.mapping.dateOrder != "" {
		parts = append(parts, s.mapping.dateOrder)
	}
	parts = append(parts, "created_at DESC")
	return strings.Join(parts, ", ")
}

func (s *SQLStore[T]) List(ctx context.Context) ([]T, error) {
	records, err := s.list(ctx, false)
	if err != nil && isMissingColumn(err, "display_order") {
		// Tables created before manual ordering existed.
		records, err = s.list(ctx, true)
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return records, nil
}

func (s *SQLStore[T]) list(ctx context.Context, legacy bool) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", s.selectList(legacy), s.table(), s.orderBy(legacy))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		record, err := s.mapping.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLStore[T]) Get(ctx context.Context, slug string) (*T, error) {
	record, err := s.get(ctx, slug, false)
	if err != nil && isMissingColumn(err, "display_order") {
		record, err = s.get(ctx, slug, true)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", s.kind, slug, err)
	}
	return record, nil
}

func (s *SQLStore[T]) get(ctx context.Context, slug string, legacy bool) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE slug = $1", s.selectList(legacy), s.table())
	record, err := s.mapping.scan(s.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *SQLStore[T]) Insert(ctx context.Context, record T) (*T, error) {
	values, err := s.mapping.values(record)
	if err != nil {
		return nil, err
	}
	slug := s.mapping.slugOf(record)

	query := fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (%s)",
		s.table(), strings.Join(s.mapping.columns, ", "), placeholders(1, len(values)+1))
	args := append([]any{uuid.NewString()}, values...)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, &content.DuplicateSlugError{Kind: s.kind, Slug: slug}
		}
		return nil, fmt.Errorf("insert %s %q: %w", s.kind, slug, err)
	}
	return s.reload(ctx, slug)
}

// Update overwrites every writable column of the row currently at slug.
func (s *SQLStore[T]) Update(ctx context.Context, slug string, record T) (*T, error) {
	values, err := s.mapping.values(record)
	if err != nil {
		return nil, err
	}
	newSlug := s.mapping.slugOf(record)

	assignments := make([]string, 0, len(s.mapping.columns)+1)
	for i, col := range s.mapping.columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE slug = $%d",
		s.table(), strings.Join(assignments, ", "), len(values)+1)
	result, err := s.db.ExecContext(ctx, query, append(values, slug)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &content.DuplicateSlugError{Kind: s.kind, Slug: newSlug}
		}
		return nil, fmt.Errorf("update %s %q: %w", s.kind, slug, err)
	}
	if err := expectRow(result, s.kind, slug); err != nil {
		return nil, err
	}
	return s.reload(ctx, newSlug)
}

func (s *SQLStore[T]) Delete(ctx context.Context, slug string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE slug = $1", s.table())
	result, err := s.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("delete %s %q: %w", s.kind, slug, err)
	}
	return expectRow(result, s.kind, slug)
}

func (s *SQLStore[T]) SetOrder(ctx context.Context, slug string, order int) error {
	return setOrder(ctx, s.db, s.kind, slug, order)
}

// SetOrders applies the batch in one transaction. Nothing is changed when
// any item fails.
func (s *SQLStore[T]) SetOrders(ctx context.Context, items []models.ReorderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder of %s: %w", s.kind, err)
	}
	defer tx.Rollback()

	for i, item := range items {
		if err := setOrder(ctx, tx, s.kind, item.Slug, item.Order); err != nil {
			return &content.ReorderError{Index: i, Slug: item.Slug, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder of %s: %w", s.kind, err)
	}
	return nil
}

// Upsert inserts the record or overwrites the row with the same slug. The
// display order of an existing row is kept.
func (s *SQLStore[T]) Upsert(ctx context.Context, record T) (*T, error) {
	values, err := s.mapping.values(record)
	if err != nil {
		return nil, err
	}
	slug := s.mapping.slugOf(record)

	updates := make([]string, 0, len(s.mapping.columns))
	for _, col := range s.mapping.columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (%s) ON CONFLICT (slug) DO UPDATE SET %s",
		s.table(), strings.Join(s.mapping.columns, ", "), placeholders(1, len(values)+1), strings.Join(updates, ", "))
	args := append([]any{uuid.NewString()}, values...)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("upsert %s %q: %w", s.kind, slug, err)
	}
	return s.reload(ctx, slug)
}

func (s *SQLStore[T]) reload(ctx context.Context, slug string) (*T, error) {
	record, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &content.NotFoundError{Kind: s.kind, Slug: slug}
	}
	return record, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setOrder(ctx context.Context, db execer, kind models.Kind, slug string, order int) error {
	query := fmt.Sprintf("UPDATE %s SET display_order = $1 WHERE slug = $2", kind)
	result, err := db.ExecContext(ctx, query, order, slug)
	if err != nil {
		return fmt.Errorf("set display order of %s %q: %w", kind, slug, err)
	}
	return expectRow(result, kind, slug)
}

func expectRow(result sql.Result, kind models.Kind, slug string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &content.NotFoundError{Kind: kind, Slug: slug}
	}
	return nil
}

// placeholders returns "$from, ..., $to".
func placeholders(from, to int) string {
	marks := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		marks = append(marks, fmt.Sprintf("$%d", i))
	}
	return strings.Join(marks, ", ")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

func isMissingColumn(err error, column string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42703" {
		return strings.Contains(pqErr.Message, column)
	}
	msg := err.Error()
	return strings.Contains(msg, column) &&
		(strings.Contains(msg, "no such column") || strings.Contains(msg, "does not exist"))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
