// Package pageindex keeps the byte location of every page of an
// uncompressed dump in SQLite, so single pages can be read back without
// scanning the dump again.
package pageindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dustin/go-wiktionary"
)

// ErrNotFound is returned by Lookup for titles not in the index.
var ErrNotFound = errors.New("page not found")

// Metadata keys written by the index builder.
const (
	MetaDumpFile  = "dump_file"
	MetaDumpSize  = "dump_size"
	MetaBuiltAt   = "built_at"
	MetaPageCount = "page_count"
)

// Index is an open page index database.
type Index struct {
	db *sql.DB
}

// Open opens or creates the index database at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	ix := &Index{db: db}
	if err := ix.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return ix, nil
}

// Close releases the database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS page_index (
			title TEXT PRIMARY KEY,
			page_id INTEGER NOT NULL,
			namespace INTEGER NOT NULL,
			byte_offset INTEGER NOT NULL,
			byte_length INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_page_index_page_id ON page_index(page_id)`,
		`CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := ix.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put stores a batch of page locations in one transaction. A title
// already present is overwritten.
func (ix *Index) Put(ctx context.Context, locs []wiktionary.PageLocation) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO page_index (title, page_id, namespace, byte_offset, byte_length)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range locs {
		if _, err := stmt.ExecContext(ctx, l.Title, int64(l.PageID), l.Namespace, l.Offset, l.Length); err != nil {
			return fmt.Errorf("inserting %q: %w", l.Title, err)
		}
	}
	return tx.Commit()
}

func scanLocation(row interface{ Scan(...interface{}) error }) (wiktionary.PageLocation, error) {
	var l wiktionary.PageLocation
	var id int64
	err := row.Scan(&l.Title, &id, &l.Namespace, &l.Offset, &l.Length)
	l.PageID = uint64(id)
	return l, err
}

// Lookup finds a page by exact title.
func (ix *Index) Lookup(ctx context.Context, title string) (wiktionary.PageLocation, error) {
	l, err := scanLocation(ix.db.QueryRowContext(ctx,
		`SELECT title, page_id, namespace, byte_offset, byte_length
		 FROM page_index WHERE title = ?`, title))
	if errors.Is(err, sql.ErrNoRows) {
		return l, fmt.Errorf("%q: %w", title, ErrNotFound)
	}
	if err != nil {
		return l, fmt.Errorf("looking up %q: %w", title, err)
	}
	return l, nil
}

// Search finds pages whose title matches a SQL LIKE pattern, in title
// order. A limit of zero or less means no limit.
func (ix *Index) Search(ctx context.Context, pattern string, limit int) ([]wiktionary.PageLocation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := ix.db.QueryContext(ctx,
		`SELECT title, page_id, namespace, byte_offset, byte_length
		 FROM page_index WHERE title LIKE ? ORDER BY title LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", pattern, err)
	}
	defer rows.Close()

	var rv []wiktionary.PageLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rv = append(rv, l)
	}
	return rv, rows.Err()
}

// Stats summarizes the index.
type Stats struct {
	Pages      int
	Entries    int // pages in the main namespace
	TotalBytes int64
	Meta       map[string]string
}

// Stats counts the indexed pages and returns the stored metadata.
func (ix *Index) Stats(ctx context.Context) (Stats, error) {
	rv := Stats{Meta: map[string]string{}}
	err := ix.db.QueryRowContext(ctx,
		`SELECT count(*),
		        coalesce(sum(CASE WHEN namespace = ? THEN 1 ELSE 0 END), 0),
		        coalesce(sum(byte_length), 0)
		 FROM page_index`, wiktionary.MainNamespace).Scan(&rv.Pages, &rv.Entries, &rv.TotalBytes)
	if err != nil {
		return rv, fmt.Errorf("counting pages: %w", err)
	}

	rows, err := ix.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return rv, fmt.Errorf("reading metadata: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return rv, fmt.Errorf("scanning metadata: %w", err)
		}
		rv.Meta[k] = v
	}
	return rv, rows.Err()
}

// SetMeta records a metadata value, replacing any previous one.
func (ix *Index) SetMeta(ctx context.Context, key, value string) error {
	_, err := ix.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("setting %v: %w", key, err)
	}
	return nil
}
