package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is a local document-store backend with the same path semantics as
// the hosted facade, used when no remote database is configured. Each row
// holds one JSON subtree; the invariant is that no stored path is an
// ancestor of another stored path.
type SQLite struct {
	db *sql.DB
}

var _ Client = (*SQLite)(nil)

func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

const sqliteDriverName = "sqlite"

const schemaDocuments = `
CREATE TABLE IF NOT EXISTS documents (
    path TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const (
	selectDocSQL = `SELECT body FROM documents WHERE path = ?`

	selectSubtreeSQL = `SELECT path, body FROM documents WHERE path LIKE ? ORDER BY path`

	upsertDocSQL = `
		INSERT INTO documents (path, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			body=excluded.body,
			updated_at=excluded.updated_at
	`

	deleteSubtreeSQL = `DELETE FROM documents WHERE path = ? OR path LIKE ?`
)

// InitDB opens/creates the SQLite file backing the local store.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if _, err := db.Exec(schemaDocuments); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply documents schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// anchor locates the stored row covering path: the row at path itself or at
// its nearest stored ancestor. rest holds the segments from the anchor down
// to path (empty when the row is at path).
func (s *SQLite) anchor(ctx context.Context, path string) (anchorPath string, doc any, rest []string, found bool, err error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments); i > 0; i-- {
		candidate := strings.Join(segments[:i], "/")
		var body string
		err := s.db.QueryRowContext(ctx, selectDocSQL, candidate).Scan(&body)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return "", nil, nil, false, fmt.Errorf("%w: select %s: %v", ErrUnavailable, candidate, err)
		}
		var value any
		if err := json.Unmarshal([]byte(body), &value); err != nil {
			return "", nil, nil, false, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, candidate, err)
		}
		return candidate, value, segments[i:], true, nil
	}
	return "", nil, nil, false, nil
}

func (s *SQLite) Get(ctx context.Context, path string, out any) (bool, error) {
	_, doc, rest, found, err := s.anchor(ctx, path)
	if err != nil {
		return false, err
	}
	if found {
		value, ok := descend(doc, rest)
		if !ok {
			return false, nil
		}
		return true, reencode(value, out)
	}

	// No covering row: the document may be spread over descendant rows.
	assembled, any, err := s.assemble(ctx, path)
	if err != nil {
		return false, err
	}
	if !any {
		return false, nil
	}
	return true, reencode(assembled, out)
}

// assemble rebuilds a document from the rows stored below path.
func (s *SQLite) assemble(ctx context.Context, path string) (map[string]any, bool, error) {
	prefix := strings.Trim(path, "/") + "/"
	rows, err := s.db.QueryContext(ctx, selectSubtreeSQL, prefix+"%")
	if err != nil {
		return nil, false, fmt.Errorf("%w: select subtree %s: %v", ErrUnavailable, path, err)
	}
	defer rows.Close()

	doc := make(map[string]any)
	found := false
	for rows.Next() {
		var rowPath, body string
		if err := rows.Scan(&rowPath, &body); err != nil {
			return nil, false, fmt.Errorf("%w: scan subtree %s: %v", ErrUnavailable, path, err)
		}
		var value any
		if err := json.Unmarshal([]byte(body), &value); err != nil {
			return nil, false, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, rowPath, err)
		}
		splice(doc, strings.Split(strings.TrimPrefix(rowPath, prefix), "/"), value)
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: iterate subtree %s: %v", ErrUnavailable, path, err)
	}
	return doc, found, nil
}

func (s *SQLite) Put(ctx context.Context, path string, value any) error {
	anchorPath, doc, rest, found, err := s.anchor(ctx, path)
	if err != nil {
		return err
	}

	if found && len(rest) > 0 {
		// A stored ancestor covers this path: rewrite the value inside it.
		root, ok := doc.(map[string]any)
		if !ok {
			root = make(map[string]any)
		}
		splice(root, rest, toJSONValue(value))
		return s.writeRow(ctx, anchorPath, root)
	}

	// Row lands at path itself; descendant rows (if any) are superseded.
	if !found {
		prefix := strings.Trim(path, "/") + "/"
		if _, err := s.db.ExecContext(ctx, deleteSubtreeSQL, strings.Trim(path, "/"), prefix+"%"); err != nil {
			return fmt.Errorf("%w: clear subtree %s: %v", ErrUnavailable, path, err)
		}
	}
	return s.writeRow(ctx, strings.Trim(path, "/"), value)
}

func (s *SQLite) Patch(ctx context.Context, path string, fields map[string]any) error {
	current := make(map[string]any)
	if _, err := s.Get(ctx, path, &current); err != nil {
		return err
	}
	if current == nil {
		current = make(map[string]any)
	}
	for k, v := range fields {
		current[k] = toJSONValue(v)
	}
	return s.Put(ctx, path, current)
}

func (s *SQLite) Push(ctx context.Context, path string, value any) (string, error) {
	key := uuid.NewString()
	if err := s.Put(ctx, Join(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *SQLite) Delete(ctx context.Context, path string) error {
	anchorPath, doc, rest, found, err := s.anchor(ctx, path)
	if err != nil {
		return err
	}

	if found && len(rest) > 0 {
		root, ok := doc.(map[string]any)
		if !ok {
			return nil
		}
		if removeNested(root, rest) {
			return s.writeRow(ctx, anchorPath, root)
		}
		return nil
	}

	prefix := strings.Trim(path, "/") + "/"
	if _, err := s.db.ExecContext(ctx, deleteSubtreeSQL, strings.Trim(path, "/"), prefix+"%"); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

func (s *SQLite) writeRow(ctx context.Context, path string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, path, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertDocSQL, path, string(body), time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: upsert %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// -------- JSON tree helpers --------

// descend walks keys down a decoded JSON value.
func descend(doc any, keys []string) (any, bool) {
	current := doc
	for _, k := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// splice sets value at the nested key chain, creating intermediate maps.
func splice(doc map[string]any, keys []string, value any) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := doc[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			doc[k] = next
		}
		doc = next
	}
	doc[keys[len(keys)-1]] = value
}

// removeNested deletes the nested key chain; reports whether anything changed.
func removeNested(doc map[string]any, keys []string) bool {
	for _, k := range keys[:len(keys)-1] {
		next, ok := doc[k].(map[string]any)
		if !ok {
			return false
		}
		doc = next
	}
	last := keys[len(keys)-1]
	if _, ok := doc[last]; !ok {
		return false
	}
	delete(doc, last)
	return true
}

// toJSONValue normalizes a Go value to its decoded-JSON form so typed
// structs and plain maps splice identically.
func toJSONValue(value any) any {
	switch value.(type) {
	case nil, bool, string, float64, map[string]any, []any:
		return value
	}
	b, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return value
	}
	return out
}

// reencode copies a decoded JSON value into a typed destination.
func reencode(value any, out any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: re-encode document: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: decode document: %v", ErrUnavailable, err)
	}
	return nil
}
