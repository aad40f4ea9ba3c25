// File: pkg/scan/worker.go
package scan

import (
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// fileJob carries one file through the reader pool. The index pins the
// record back to its walk-order slot so concurrency never reorders output.
type fileJob struct {
	index   int
	path    string // Path for reading.
	relPath string // Root-relative path for the record header.
}

// readFiles reads the collected files with a bounded worker pool and returns
// their records in the original walk order.
func (s *Scanner) readFiles(jobs []fileJob) []FileContent {
	results := make([]FileContent, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	maxWorkers := s.opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if maxWorkers > len(jobs) {
		maxWorkers = len(jobs)
	}
	s.logger.Debug("Initializing reader pool",
		zap.Int("workers", maxWorkers), zap.Int("files", len(jobs)))

	queue := make(chan fileJob, len(jobs))
	var wg sync.WaitGroup
	for workerID := 0; workerID < maxWorkers; workerID++ {
		wg.Add(1)
		workerLogger := s.logger.With(zap.Int("workerID", workerID))
		go func() {
			defer wg.Done()
			for job := range queue {
				results[job.index] = s.readFile(job, workerLogger)
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()

	return results
}

// readFile produces the record for one file. Read failures and non-text
// content become placeholder payloads rather than errors.
func (s *Scanner) readFile(job fileJob, logger *zap.Logger) FileContent {
	data, err := afero.ReadFile(s.fs, job.path)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("filePath", job.path), zap.Error(err))
		return FileContent{Path: job.relPath, Content: readErrorMessage(err)}
	}
	if !utf8.Valid(data) {
		logger.Debug("Skipping binary or non-UTF-8 content", zap.String("filePath", job.path))
		return FileContent{Path: job.relPath, Content: BinarySkipMessage}
	}
	return FileContent{Path: job.relPath, Content: string(data)}
}
