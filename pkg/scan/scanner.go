// Package scan walks content roots, turns every file that survives ignore
// matching into a record, and assembles the records into the combined
// document. The walk is deterministic: files are collected in lexical walk
// order, read concurrently, and emitted in collection order.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"llmcontext/pkg/ignore"
)

// Scanner walks content roots and produces one FileContent per included
// file. The filesystem is injected so tests can run against an in-memory
// tree.
type Scanner struct {
	fs      afero.Fs
	opts    Options
	logger  *zap.Logger
	exclude map[string]struct{}
}

// NewScanner initializes a Scanner. A nil logger is replaced with a no-op
// logger.
func NewScanner(fsys afero.Fs, opts Options, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	exclude := make(map[string]struct{}, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		exclude[filepath.Clean(p)] = struct{}{}
	}
	return &Scanner{fs: fsys, opts: opts, logger: logger, exclude: exclude}
}

// Scan walks root top-down and returns the records of every file that
// survives matching against matcher. Directories that match are pruned
// before descent, so nothing beneath them is visited or read. Only a root
// that cannot be traversed at all produces an error; an unreadable file
// degrades to an in-band placeholder record instead.
func (s *Scanner) Scan(root string, matcher *ignore.Matcher) ([]FileContent, error) {
	jobs, err := s.collectFiles(root, matcher)
	if err != nil {
		return nil, err
	}
	return s.readFiles(jobs), nil
}

// collectFiles performs the pruning walk and gathers the files to read, in
// walk order.
func (s *Scanner) collectFiles(root string, matcher *ignore.Matcher) ([]fileJob, error) {
	var jobs []fileJob
	walkErr := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("Error accessing path during traversal",
				zap.String("path", path), zap.Error(err))
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			s.logger.Warn("Failed to compute relative path",
				zap.String("path", path), zap.Error(relErr))
			return nil
		}
		if rel == "." {
			// The root itself is never matched.
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if matcher.Match(rel, true) {
				s.logger.Debug("Pruned ignored directory", zap.String("directory", rel))
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(path) {
			s.logger.Debug("Skipping excluded path", zap.String("path", path))
			return nil
		}
		if matcher.Match(rel, false) {
			s.logger.Debug("Skipping ignored file", zap.String("file", rel))
			return nil
		}
		if s.opts.MaxFileSizeKB > 0 && info.Size() > int64(s.opts.MaxFileSizeKB)*1024 {
			s.logger.Debug("Skipping file over size limit",
				zap.String("file", rel),
				zap.Int64("sizeBytes", info.Size()),
				zap.Int("maxSizeKB", s.opts.MaxFileSizeKB))
			return nil
		}

		jobs = append(jobs, fileJob{index: len(jobs), path: path, relPath: rel})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to traverse %s: %w", root, walkErr)
	}

	s.logger.Debug("Collected files for processing",
		zap.String("root", root), zap.Int("fileCount", len(jobs)))
	return jobs, nil
}

func (s *Scanner) isExcluded(path string) bool {
	_, excluded := s.exclude[filepath.Clean(path)]
	return excluded
}
