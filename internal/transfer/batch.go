package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/store"
)

// FileResult is the outcome of importing one file.
type FileResult struct {
	Path   string
	Result ImportResult
	Err    error
}

// BatchResult tracks a multi-file import.
type BatchResult struct {
	Files    []FileResult
	Total    ImportResult
	Failed   int
	Duration time.Duration
}

// Summary returns a human-readable summary.
func (b *BatchResult) Summary() string {
	return fmt.Sprintf("files=%d failed=%d %s dur=%s",
		len(b.Files), b.Failed, b.Total.Summary(), b.Duration.Round(time.Millisecond))
}

// ImportFiles decodes paths with a pool of workers, then merges each file into
// s in argument order. Decoding is concurrent; merging is not, so the result
// is the same as importing the files one by one.
func ImportFiles(ctx context.Context, s store.Store, paths []string, workers int, logger *slog.Logger) BatchResult {
	start := time.Now()
	result := BatchResult{Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return result
	}

	type decoded struct {
		records []match.Record
		read    ImportResult
	}
	parsed := make([]decoded, len(paths))

	// Worker pool: one channel of file indexes, N workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	ch := make(chan int, len(paths))
	for i := range paths {
		ch <- i
	}
	close(ch)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range ch {
				if ctx.Err() != nil {
					result.Files[i] = FileResult{Path: paths[i], Err: ctx.Err()}
					continue
				}
				records, read, err := readFile(paths[i])
				// Each worker writes distinct indexes; no lock needed.
				parsed[i] = decoded{records, read}
				result.Files[i] = FileResult{Path: paths[i], Err: err}
			}
		}()
	}
	wg.Wait()

	for i := range paths {
		fr := &result.Files[i]
		if fr.Err == nil {
			res := parsed[i].read
			merged, err := s.Merge(ctx, parsed[i].records)
			res.MergeResult = merged
			fr.Result, fr.Err = res, err
		}
		if fr.Err != nil {
			result.Failed++
			result.Total.AddErrorf("%s: %v", fr.Path, fr.Err)
			logger.Warn("Import file failed", "file", fr.Path, "error", fr.Err)
			continue
		}

		result.Total.Read += fr.Result.Read
		result.Total.Add(fr.Result.MergeResult)
		for _, e := range fr.Result.Errors {
			result.Total.AddErrorf("%s: %s", fr.Path, e)
		}
		logger.Info("Imported file", "file", fr.Path, "summary", fr.Result.Summary())
	}

	result.Duration = time.Since(start)
	return result
}

func readFile(path string) ([]match.Record, ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ImportResult{}, err
	}
	defer f.Close()
	return ReadRecords(f)
}
