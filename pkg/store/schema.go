package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"portfolio-cms/pkg/models"
)

type columnTypes struct {
	json      string
	timestamp string
}

var dialectTypes = map[string]columnTypes{
	DriverPostgres: {json: "JSONB", timestamp: "TIMESTAMPTZ"},
	DriverSQLite:   {json: "TEXT", timestamp: "TEXT"},
}

const projectsTable = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	images {{json}} NOT NULL DEFAULT '[]',
	published_at TEXT NOT NULL,
	link TEXT,
	team {{json}} NOT NULL DEFAULT '[]',
	image TEXT,
	display_order INTEGER,
	created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const blogsTable = `
CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	subtitle TEXT,
	summary TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	image TEXT,
	published_at TEXT NOT NULL,
	tag TEXT,
	display_order INTEGER,
	created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const reviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	role TEXT,
	company TEXT,
	content TEXT NOT NULL,
	rating INTEGER NOT NULL DEFAULT 5,
	avatar TEXT,
	display_order INTEGER,
	created_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at {{timestamp}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrate creates the content tables and adds display_order to tables
// created before manual ordering existed. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	types, ok := dialectTypes[driver]
	if !ok {
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	r := strings.NewReplacer("{{json}}", types.json, "{{timestamp}}", types.timestamp)

	for _, ddl := range []string{projectsTable, blogsTable, reviewsTable} {
		if _, err := db.ExecContext(ctx, r.Replace(ddl)); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	for _, kind := range []models.Kind{models.KindProject, models.KindBlog, models.KindReview} {
		exists, err := columnExists(ctx, db, string(kind), "display_order")
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN display_order INTEGER", kind)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add display_order to %s: %w", kind, err)
		}
	}
	return nil
}

// columnExists probes with a query that matches no rows, which works the
// same on every supported engine.
func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE 1 = 0", column, table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		if isMissingColumn(err, column) {
			return false, nil
		}
		return false, fmt.Errorf("probe %s.%s: %w", table, column, err)
	}
	rows.Close()
	return true, nil
}
