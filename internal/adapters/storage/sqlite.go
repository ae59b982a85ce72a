package storage

// sqlite.go: el journal como blob clave-valor.
//
// Estrategia:
//   - `documents`: UNA fila por clave con el journal completo en JSON y su versión.
//     Load/Save siempre mueven el estado entero; no hay schema por trade.
//   - `imports`: una fila ligera por fichero importado (fuente, dialecto, conteos).
//   - Cache en memoria: si el documento serializado no cambió desde el último Save,
//     no se escribe.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alejandrodnm/tradejournal/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Estado completo del journal, un documento por clave
CREATE TABLE IF NOT EXISTS documents (
    key        TEXT PRIMARY KEY,
    version    INTEGER  NOT NULL,
    doc        TEXT     NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Historial de imports
CREATE TABLE IF NOT EXISTS imports (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    source      TEXT     NOT NULL,
    dialect     TEXT     NOT NULL,
    trades      INTEGER  NOT NULL DEFAULT 0,
    diagnostics INTEGER  NOT NULL DEFAULT 0,
    net_profit  TEXT     NOT NULL DEFAULT '0',
    imported_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_imports_at ON imports(imported_at DESC);
`

// DefaultKey es la clave bajo la que se guarda el journal si no se indica otra.
const DefaultKey = "journal"

// SQLiteStorage implementa ports.JournalStore usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db      *sql.DB
	key     string
	lastDoc []byte // último documento guardado o cargado
	mu      sync.Mutex
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el schema.
// key selecciona el documento; vacío usa DefaultKey.
func NewSQLiteStorage(path, key string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	if key == "" {
		key = DefaultKey
	}
	return &SQLiteStorage{db: db, key: key}, nil
}

// Load devuelve el journal guardado. Si no hay documento devuelve uno vacío.
func (s *SQLiteStorage) Load(ctx context.Context) (domain.Journal, error) {
	var (
		version        int
		doc, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, doc, updated_at FROM documents WHERE key = ?`, s.key,
	).Scan(&version, &doc, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewJournal(), nil
	}
	if err != nil {
		return domain.Journal{}, fmt.Errorf("storage.Load: query: %w", err)
	}

	if version > domain.JournalVersion {
		return domain.Journal{}, fmt.Errorf("storage.Load: document version %d is newer than supported %d", version, domain.JournalVersion)
	}

	j := domain.NewJournal()
	if err := json.Unmarshal([]byte(doc), &j); err != nil {
		return domain.Journal{}, fmt.Errorf("storage.Load: decode: %w", err)
	}
	j.Version = domain.JournalVersion
	j.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)

	s.mu.Lock()
	s.lastDoc = []byte(doc)
	s.mu.Unlock()
	return j, nil
}

// Save serializa el journal completo y hace upsert del documento.
// No escribe si el contenido es idéntico al último guardado.
func (s *SQLiteStorage) Save(ctx context.Context, j domain.Journal) error {
	j.Version = domain.JournalVersion
	if j.Trades == nil {
		j.Trades = []domain.Trade{}
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}

	// UpdatedAt fuera de la comparación: sólo cuenta el contenido
	updated := j.UpdatedAt
	j.UpdatedAt = time.Time{}
	doc, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("storage.Save: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastDoc != nil && string(s.lastDoc) == string(doc) {
		return nil // nada nuevo
	}

	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, version, doc, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version    = excluded.version,
			doc        = excluded.doc,
			updated_at = excluded.updated_at`,
		s.key, j.Version, string(doc), updated.UTC(),
	); err != nil {
		return fmt.Errorf("storage.Save: upsert %s: %w", s.key, err)
	}
	s.lastDoc = doc
	return nil
}

// RecordImport añade una fila al historial de imports.
func (s *SQLiteStorage) RecordImport(ctx context.Context, res domain.ImportResult) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (source, dialect, trades, diagnostics, net_profit, imported_at) VALUES (?, ?, ?, ?, ?, ?)`,
		res.Source, string(res.Dialect), len(res.Trades), len(res.Diagnostics),
		res.NetProfit().String(), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("storage.RecordImport: insert %s: %w", res.Source, err)
	}
	return nil
}

// ImportHistory devuelve los últimos imports, el más reciente primero.
func (s *SQLiteStorage) ImportHistory(ctx context.Context, limit int) ([]domain.ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, dialect, trades, diagnostics, net_profit, imported_at
		FROM imports
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.ImportHistory: query: %w", err)
	}
	defer rows.Close()

	var out []domain.ImportRecord
	for rows.Next() {
		var (
			rec                 domain.ImportRecord
			dialect, importedAt string
		)
		if err := rows.Scan(&rec.Source, &dialect, &rec.Trades, &rec.Diagnostics, &rec.NetProfit, &importedAt); err != nil {
			return nil, fmt.Errorf("storage.ImportHistory: scan row: %w", err)
		}
		rec.Dialect = domain.Dialect(dialect)
		rec.ImportedAt, _ = time.Parse(time.RFC3339Nano, importedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
