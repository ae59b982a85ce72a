package importer

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// ImportFiles imports several files in parallel with a bounded worker pool.
// Every file is reconciled by its own engine; nothing is merged across files.
// Results are returned in the order of paths.
//
// If workers <= 0 it uses runtime.NumCPU().
func ImportFiles(ctx context.Context, paths []string, workers int) []domain.ImportResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]domain.ImportResult, len(paths))
	workCh := make(chan int, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				if ctx.Err() != nil {
					results[idx] = newAggregator(filepath.Base(paths[idx])).
						fatal("import cancelled: " + ctx.Err().Error())
					continue
				}
				results[idx] = ImportFile(paths[idx])
			}
		}()
	}

	for i := range paths {
		workCh <- i
	}
	close(workCh)
	wg.Wait()

	slog.Debug("batch import complete", "files", len(paths), "workers", workers)
	return results
}
