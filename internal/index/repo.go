package index

import (
	"fmt"
	"time"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path      string
	Title     string
	Checksum  string
	Issues    int
	UpdatedAt time.Time
}

// BlockRow represents one metadata block of a document.
type BlockRow struct {
	Path      string
	Kind      string
	Name      string
	StartLine int
	EndLine   int
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// UpsertDocument inserts or replaces a document, its FTS entry, and its
// block rows within a transaction.
func (db *DB) UpsertDocument(d DocumentRow, body string, blocks []BlockRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO documents (path, title, checksum, body, issues, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			body       = excluded.body,
			issues     = excluded.issues,
			updated_at = excluded.updated_at
	`, d.Path, d.Title, d.Checksum, body, d.Issues, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, d.Path, d.Title, body, blockNames(blocks)); err != nil {
		return err
	}

	// Replace block rows: delete old then bulk insert in document order.
	_, _ = tx.Exec(`DELETE FROM blocks WHERE path = ?`, d.Path)
	if len(blocks) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO blocks (path, kind, name, start_line, end_line) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare block insert: %w", err)
		}
		defer stmt.Close()
		for _, b := range blocks {
			if _, err := stmt.Exec(d.Path, b.Kind, b.Name, b.StartLine, b.EndLine); err != nil {
				return fmt.Errorf("index: insert block: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document, its FTS entry, and its block rows.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM blocks WHERE path = ?`, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a document, or empty
// string if not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// GetDocument returns the indexed row for a document, or nil when the
// path is not indexed.
func (db *DB) GetDocument(path string) (*DocumentRow, error) {
	var d DocumentRow
	err := db.conn.QueryRow(`
		SELECT path, title, checksum, issues, updated_at
		FROM documents WHERE path = ?
	`, path).Scan(&d.Path, &d.Title, &d.Checksum, &d.Issues, &d.UpdatedAt)
	if err != nil {
		return nil, nil
	}
	return &d, nil
}

// ListDocuments returns paginated documents, optionally filtered to
// those containing a block with the given scope name.
func (db *DB) ListDocuments(limit, offset int, scope, sort string) ([]DocumentRow, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	order := "updated_at DESC"
	switch sort {
	case "path":
		order = "path ASC"
	case "title":
		order = "title ASC"
	case "issues":
		order = "issues DESC"
	}

	where := ""
	args := []any{}
	if scope != "" {
		where = `WHERE EXISTS (SELECT 1 FROM blocks b WHERE b.path = documents.path AND b.name = ?)`
		args = append(args, scope)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count documents: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT path, title, checksum, issues, updated_at
		FROM documents %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, where, order)
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var d DocumentRow
		if err := rows.Scan(&d.Path, &d.Title, &d.Checksum, &d.Issues, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// Blocks returns the block rows of a document in document order.
func (db *DB) Blocks(path string) ([]BlockRow, error) {
	rows, err := db.conn.Query(`
		SELECT path, kind, name, start_line, end_line
		FROM blocks WHERE path = ? ORDER BY start_line
	`, path)
	if err != nil {
		return nil, fmt.Errorf("index: blocks: %w", err)
	}
	defer rows.Close()

	var out []BlockRow
	for rows.Next() {
		var b BlockRow
		if err := rows.Scan(&b.Path, &b.Kind, &b.Name, &b.StartLine, &b.EndLine); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ScopeNames returns the distinct scope names of a document in
// first-seen order.
func (db *DB) ScopeNames(path string) ([]string, error) {
	return db.names(`
		SELECT name FROM blocks
		WHERE path = ? AND kind = 'scoped' AND name <> ''
		GROUP BY name ORDER BY MIN(start_line)
	`, path)
}

// QuillNames returns the distinct quill template names observed across
// the whole workspace, in first-indexed order. This feeds the template
// registry consumed by completion.
func (db *DB) QuillNames() ([]string, error) {
	return db.names(`
		SELECT name FROM blocks
		WHERE kind = 'quill' AND name <> ''
		GROUP BY name ORDER BY MIN(rowid)
	`)
}

func (db *DB) names(query string, args ...any) ([]string, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: names: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// AllPaths returns every indexed document path.
func (db *DB) AllPaths() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT path FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

func blockNames(blocks []BlockRow) []string {
	var out []string
	for _, b := range blocks {
		if b.Name != "" {
			out = append(out, b.Name)
		}
	}
	return out
}
