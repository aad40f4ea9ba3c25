package scan

import "fmt"

// BinarySkipMessage replaces the content of files that are not valid UTF-8.
const BinarySkipMessage = "[Skipped: Binary or non-UTF-8 file]"

// FileContent represents the processed content of a single file.
type FileContent struct {
	Path    string // Root-relative path with forward slashes.
	Content string // Raw text, or one of the placeholder payloads.
}

// RootOutput pairs one scanned root with the records produced beneath it.
type RootOutput struct {
	Root  string        // Absolute path of the scanned root.
	Files []FileContent // Records in walk order.
}

// Options configures a Scanner.
type Options struct {
	MaxFileSizeKB int      // Skip files larger than this many KB; 0 means unlimited.
	MaxWorkers    int      // Concurrent file readers; 0 means one per CPU.
	ExcludePaths  []string // Paths never emitted, e.g. the output document itself.
}

// readErrorMessage builds the in-band payload for a file that could not be
// read. A single unreadable file never aborts the scan.
func readErrorMessage(err error) string {
	return fmt.Sprintf("[Error reading file: %v]", err)
}
