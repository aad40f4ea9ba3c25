package scan

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"llmcontext/pkg/filelock"
)

// RenderDocument assembles the final document text. Each record renders as a
// header line carrying its root-relative path, the payload, and a blank
// separator line. With more than one root every root's block sequence is
// wrapped in directory markers; a single root renders bare.
func RenderDocument(outputs []RootOutput) string {
	var b strings.Builder
	wrap := len(outputs) > 1
	for _, output := range outputs {
		if wrap {
			fmt.Fprintf(&b, "=== Directory: %s ===\n\n", output.Root)
		}
		for _, file := range output.Files {
			fmt.Fprintf(&b, "--%s--\n%s\n\n", file.Path, file.Content)
		}
		if wrap {
			fmt.Fprintf(&b, "=== End of %s ===\n\n", output.Root)
		}
	}
	return b.String()
}

// WriteDocument renders the document and writes it to path under an
// exclusive lock. The write itself is atomic, so a failed or interrupted run
// leaves any previous document intact, and a concurrent invocation targeting
// the same path is refused instead of interleaving output.
func WriteDocument(path string, outputs []RootOutput, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	lock := filelock.New(path + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock output file: %w", err)
	}
	if !acquired {
		return fmt.Errorf("output file %s is in use by another llmcontext process", path)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logger.Warn("Failed to release output lock",
				zap.String("lockFile", lock.Path()), zap.Error(unlockErr))
		}
	}()

	content := RenderDocument(outputs)
	if err := filelock.AtomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	totalFiles := 0
	for _, output := range outputs {
		totalFiles += len(output.Files)
	}
	logger.Debug("Wrote combined document",
		zap.String("path", path),
		zap.Int("totalFiles", totalFiles),
		zap.Int("bytes", len(content)))
	return nil
}
