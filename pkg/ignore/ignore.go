// Package ignore resolves which paths a scan must skip. It discovers
// .gitignore and .llmignore files at every depth of a tree, rewrites their
// patterns into root-relative form, and compiles the ordered result into a
// Matcher with gitignore semantics: wildcards never cross slashes, "**"
// spans directories, a trailing slash restricts a pattern to directories,
// and the last matching pattern wins, with "!" negations re-including paths.
package ignore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// IgnorePattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type IgnorePattern struct {
	Pattern *regexp.Regexp // Compiled regular expression for the pattern.
	Negate  bool           // Indicates if the pattern is a negation (starts with '!').
	Line    string         // Effective pattern text the regex was compiled from.
	Source  string         // Path of the declaring ignore file, empty for injected lines.
	LineNo  int            // Line number in the source (1-based).
}

// Matcher is an ordered collection of compiled ignore patterns. Every
// pattern is consulted on each lookup and the last one that matches decides
// the verdict; negation patterns flip it back to included.
type Matcher struct {
	patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewMatcher initializes an empty Matcher. A nil logger is replaced with a
// no-op logger.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// CompileIgnoreLines compiles raw ignore-dialect lines and appends them after
// any previously compiled patterns, giving them higher precedence. Blank
// lines and comments are dropped; a line that fails to compile is logged and
// skipped.
func (m *Matcher) CompileIgnoreLines(lines ...string) {
	for i, line := range lines {
		m.compileLine(line, "", i+1)
	}
}

// Len reports how many patterns compiled successfully.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Match reports whether a root-relative path is ignored.
func (m *Matcher) Match(path string, isDir bool) bool {
	matched, _ := m.MatchWithPattern(path, isDir)
	return matched
}

// MatchWithPattern works like Match and also returns the pattern that decided
// the verdict, nil when no pattern matched at all.
func (m *Matcher) MatchWithPattern(path string, isDir bool) (bool, *IgnorePattern) {
	normalized := normalizeMatchPath(path, isDir)

	matched := false
	var matchedPattern *IgnorePattern
	for _, pattern := range m.patterns {
		if pattern.Pattern.MatchString(normalized) {
			matched = !pattern.Negate
			matchedPattern = pattern
		}
	}
	return matched, matchedPattern
}

func (m *Matcher) compileLine(line, source string, lineNo int) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}
	pattern, err := compilePattern(trimmed, source, lineNo)
	if err != nil {
		m.logger.Warn("Skipping invalid ignore pattern",
			zap.String("pattern", trimmed),
			zap.String("source", source),
			zap.Int("lineNo", lineNo),
			zap.Error(err))
		return
	}
	m.patterns = append(m.patterns, pattern)
}

// compilePattern translates one trimmed, non-comment pattern line into its
// compiled form.
func compilePattern(line, source string, lineNo int) (*IgnorePattern, error) {
	negate := strings.HasPrefix(line, "!")
	body := strings.TrimPrefix(line, "!")

	expr, err := translatePattern(body, negate)
	if err != nil {
		return nil, err
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern does not compile: %w", err)
	}
	return &IgnorePattern{
		Pattern: compiled,
		Negate:  negate,
		Line:    line,
		Source:  source,
		LineNo:  lineNo,
	}, nil
}

// normalizeMatchPath converts a root-relative path into the canonical form
// patterns compile against: forward slashes, no leading "./", and a trailing
// slash on directory paths.
func normalizeMatchPath(path string, isDir bool) string {
	normalized := filepath.ToSlash(path)
	normalized = strings.TrimPrefix(normalized, "./")
	if isDir && !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return normalized
}
