// Package journal commits imported trades into the stored journal.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/ports"
)

// Service loads the journal, appends new trades and saves it back as one document.
type Service struct {
	store ports.JournalStore
	now   func() time.Time
}

// NewService wires a service to its store.
func NewService(store ports.JournalStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Commit stores the trades of every successful result and records each import in
// the history. Trades already present (same ID) are skipped, so re-importing a
// file is a no-op. It returns how many trades were added.
func (s *Service) Commit(ctx context.Context, results []domain.ImportResult) (int, error) {
	j, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("journal.Commit: %w", err)
	}

	added := 0
	for _, res := range results {
		n := j.AddTrades(res.Trades)
		added += n
		slog.Debug("journal merge", "source", res.Source, "trades", len(res.Trades), "added", n)
	}

	if added > 0 {
		j.UpdatedAt = s.now().UTC()
		if err := s.store.Save(ctx, j); err != nil {
			return 0, fmt.Errorf("journal.Commit: %w", err)
		}
	}

	for _, res := range results {
		if err := s.store.RecordImport(ctx, res); err != nil {
			return added, fmt.Errorf("journal.Commit: %w", err)
		}
	}

	slog.Info("journal updated", "added", added, "total", len(j.Trades))
	return added, nil
}
