package index

import (
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/metadata"
	"github.com/starford/ansuz/internal/storage"
)

// Sync walks the workspace and brings the index up to date:
//   - new/changed files are analyzed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexDocument(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexDocument runs a full engine pass over data and upserts the result.
func indexDocument(db *DB, path string, data []byte) error {
	text := string(data)
	doc := metadata.NewDocument(text)
	blocks, structural := metadata.Match(doc)
	issues := append(structural, metadata.Validate(blocks)...)

	row := DocumentRow{
		Path:      path,
		Title:     documentTitle(blocks),
		Checksum:  checksum.Sum(data),
		Issues:    len(issues),
		UpdatedAt: time.Now(),
	}
	return db.UpsertDocument(row, text, BlockRows(path, blocks))
}

// BlockRows converts an engine pass into index rows for a document.
func BlockRows(path string, blocks []metadata.Block) []BlockRow {
	out := make([]BlockRow, len(blocks))
	for i, b := range blocks {
		out[i] = BlockRow{
			Path:      path,
			Kind:      string(b.Kind),
			Name:      b.Name,
			StartLine: b.StartLine,
			EndLine:   b.EndLine,
		}
	}
	return out
}

// documentTitle returns the global block's "title" field value, if any.
func documentTitle(blocks []metadata.Block) string {
	for _, b := range blocks {
		if b.Kind != metadata.KindGlobal {
			continue
		}
		for _, f := range b.Fields {
			if f.Key == "title" {
				return f.Value.Text
			}
		}
		break
	}
	return ""
}
