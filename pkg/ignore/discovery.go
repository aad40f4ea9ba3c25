// File: pkg/ignore/discovery.go
package ignore

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultIgnoreNames are the file names recognized as ignore files during
// discovery. .gitignore keeps parity with version control; .llmignore lets a
// tree exclude content from the combined document without touching its git
// configuration.
var DefaultIgnoreNames = []string{".gitignore", ".llmignore"}

// Rule is one raw pattern line paired with the directory of the ignore file
// that declared it.
type Rule struct {
	Pattern string // Trimmed pattern text, never empty or a comment.
	Dir     string // Directory containing the declaring ignore file.
	Source  string // Path of the declaring ignore file.
	LineNo  int    // Line number within the file (1-based).
}

// DiscoverRules walks the tree under root and collects the pattern lines of
// every ignore file found at any depth, the root included. Rules are grouped
// by file name: all rules from files named names[0] precede all rules from
// files named names[1], preserving walk order within each group. An
// unreadable ignore file is logged and contributes nothing; only a root that
// cannot be walked at all is an error.
func DiscoverRules(fsys afero.Fs, root string, names []string, logger *zap.Logger) ([]Rule, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(names) == 0 {
		names = DefaultIgnoreNames
	}

	grouped := make(map[string][]Rule, len(names))
	walkErr := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Error accessing path during ignore discovery",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if info.IsDir() {
			// A directory that happens to carry an ignore-file name is not
			// an ignore file.
			return nil
		}
		name := info.Name()
		if !isIgnoreFileName(names, name) {
			return nil
		}

		rules, readErr := readRules(fsys, path)
		if readErr != nil {
			logger.Warn("Failed to read ignore file",
				zap.String("filePath", path), zap.Error(readErr))
			return nil
		}
		logger.Debug("Discovered ignore file",
			zap.String("filePath", path), zap.Int("ruleCount", len(rules)))
		grouped[name] = append(grouped[name], rules...)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("ignore discovery failed for %s: %w", root, walkErr)
	}

	var all []Rule
	for _, name := range names {
		all = append(all, grouped[name]...)
	}
	return all, nil
}

// readRules parses one ignore file into rules, dropping blank lines and
// comments.
func readRules(fsys afero.Fs, path string) ([]Rule, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var rules []Rule
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rules = append(rules, Rule{
			Pattern: trimmed,
			Dir:     dir,
			Source:  path,
			LineNo:  i + 1,
		})
	}
	return rules, nil
}

func isIgnoreFileName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// sortRulesByDepth stable-sorts rules by the depth of their declaring
// directory below root, shallowest first. Rules from deeper ignore files end
// up later in the compiled list and therefore win under last-match-wins
// matching. A directory that does not resolve under root sorts last.
func sortRulesByDepth(root string, rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return ruleDepth(root, rules[i]) < ruleDepth(root, rules[j])
	})
}

// ruleDepth counts the path segments between root and the rule's declaring
// directory.
func ruleDepth(root string, rule Rule) int {
	rel, err := filepath.Rel(root, rule.Dir)
	if err != nil {
		return math.MaxInt
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return 0
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return math.MaxInt
	}
	return strings.Count(rel, "/") + 1
}
