package ports

import (
	"context"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// Reporter presenta al usuario el resultado de cada import.
type Reporter interface {
	// Report muestra un resumen por fichero: éxito con conteo de diagnósticos si hubo
	// trades, o el fallo con los diagnósticos (truncados) si no hubo ninguno.
	Report(ctx context.Context, results []domain.ImportResult) error
}
