// File: pkg/scan/tree.go
package scan

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"llmcontext/pkg/ignore"
)

// RenderTree builds a connector-style listing of the tree under root, pruned
// by the same matcher used for scanning. The listing starts with the root
// path itself; it is written to its own file, never into the combined
// document.
func (s *Scanner) RenderTree(root string, matcher *ignore.Matcher) (string, error) {
	var treeBuilder strings.Builder
	treeBuilder.WriteString(root + "/\n")

	subtree, err := s.renderSubtree(root, root, matcher, "")
	if err != nil {
		return "", err
	}
	if subtree != "" {
		treeBuilder.WriteString(subtree)
		treeBuilder.WriteString("\n")
	}
	return treeBuilder.String(), nil
}

type treeEntry struct {
	name  string
	path  string
	isDir bool
}

// renderSubtree renders one directory level, directories first, each group
// sorted case-insensitively. Entries are filtered before connectors are
// assigned so the last visible entry gets the closing connector.
func (s *Scanner) renderSubtree(directory, root string, matcher *ignore.Matcher, prefix string) (string, error) {
	infos, err := afero.ReadDir(s.fs, directory)
	if err != nil {
		if directory == root {
			return "", fmt.Errorf("failed to read directory %s: %w", directory, err)
		}
		s.logger.Warn("Failed to read directory for tree structure",
			zap.String("directory", directory), zap.Error(err))
		return "", nil
	}

	// Sort entries: directories first, then files, alphabetically.
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].IsDir() != infos[j].IsDir() {
			return infos[i].IsDir()
		}
		return strings.ToLower(infos[i].Name()) < strings.ToLower(infos[j].Name())
	})

	var entries []treeEntry
	for _, info := range infos {
		entryPath := filepath.Join(directory, info.Name())
		rel, relErr := filepath.Rel(root, entryPath)
		if relErr != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if matcher.Match(rel, true) {
				s.logger.Debug("Skipping ignored directory in tree",
					zap.String("directory", entryPath))
				continue
			}
		} else if s.isExcluded(entryPath) || matcher.Match(rel, false) {
			continue
		}
		entries = append(entries, treeEntry{name: info.Name(), path: entryPath, isDir: info.IsDir()})
	}

	var output []string
	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.isDir {
			output = append(output, prefix+connector+entry.name+"/")
			subtree, err := s.renderSubtree(entry.path, root, matcher, prefix+extension)
			if err != nil {
				return "", err
			}
			if subtree != "" {
				output = append(output, subtree)
			}
		} else {
			output = append(output, prefix+connector+entry.name)
		}
	}
	return strings.Join(output, "\n"), nil
}
