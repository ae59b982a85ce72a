package ports

import (
	"context"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// JournalStore persiste el journal completo como un único documento versionado.
type JournalStore interface {
	// Load devuelve el journal guardado, o uno vacío si todavía no existe.
	Load(ctx context.Context) (domain.Journal, error)

	// Save reemplaza el documento guardado por j.
	Save(ctx context.Context, j domain.Journal) error

	// RecordImport deja constancia de un import (fuente, dialecto, conteos).
	RecordImport(ctx context.Context, res domain.ImportResult) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
