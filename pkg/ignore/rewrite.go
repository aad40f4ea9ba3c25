// File: pkg/ignore/rewrite.go
package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// CompileOptions bundles the inputs to CompileTree beyond the root itself.
type CompileOptions struct {
	// Names are the ignore-file names to discover. DefaultIgnoreNames when
	// empty.
	Names []string

	// GlobalFile optionally points at an ignore file whose lines apply to
	// every root at the lowest precedence. An unreadable file is logged and
	// skipped.
	GlobalFile string

	// ExtraPatterns are compiled last and therefore carry the highest
	// precedence. They are matched relative to the root exactly as written.
	ExtraPatterns []string
}

// CompileTree produces the Matcher for one scan root: the global ignore
// file's lines first, then every discovered rule rewritten into root-relative
// form in depth order, then the extra patterns.
func CompileTree(fsys afero.Fs, root string, opts CompileOptions, logger *zap.Logger) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	matcher := NewMatcher(logger)

	if opts.GlobalFile != "" {
		content, err := afero.ReadFile(fsys, opts.GlobalFile)
		if err != nil {
			logger.Warn("Failed to load global ignore file",
				zap.String("filePath", opts.GlobalFile), zap.Error(err))
		} else {
			for i, line := range strings.Split(string(content), "\n") {
				matcher.compileLine(line, opts.GlobalFile, i+1)
			}
			logger.Debug("Loaded global ignore file",
				zap.String("filePath", opts.GlobalFile))
		}
	}

	rules, err := DiscoverRules(fsys, root, opts.Names, logger)
	if err != nil {
		return nil, err
	}
	sortRulesByDepth(root, rules)

	for _, rule := range rules {
		effective, ok := rewritePattern(rule.Pattern, rulePrefix(root, rule.Dir))
		if !ok {
			logger.Debug("Discarded pattern with no effective form",
				zap.String("pattern", rule.Pattern), zap.String("source", rule.Source))
			continue
		}
		matcher.compileLine(effective, rule.Source, rule.LineNo)
	}

	for i, line := range opts.ExtraPatterns {
		matcher.compileLine(line, "", i+1)
	}

	logger.Debug("Compiled ignore rules",
		zap.String("root", root),
		zap.Int("discoveredRules", len(rules)),
		zap.Int("patternCount", matcher.Len()))
	return matcher, nil
}

// rulePrefix computes the slash form of the declaring directory relative to
// root. It is empty when the ignore file sits at the root itself or does not
// resolve beneath it.
func rulePrefix(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

// rewritePattern rewrites one raw pattern declared in the directory at prefix
// (slash form relative to the scan root, empty at the root itself) so that it
// matches correctly against root-relative paths:
//
//   - a leading slash anchors the pattern to the declaring directory:
//     "/build" under "a/b" becomes "a/b/build", and at the root the slash is
//     kept so the pattern stays anchored instead of floating;
//   - a pattern containing a slash elsewhere is joined below the declaring
//     directory: "out/bin" under "a/b" becomes "a/b/out/bin";
//   - a bare name or single-segment glob keeps floating: unchanged at the
//     root, "a/b/**/<pattern>" below it.
//
// The negation marker and a trailing directory-only slash both survive the
// rewrite. ok is false for patterns that rewrite to nothing.
func rewritePattern(pattern, prefix string) (effective string, ok bool) {
	negate := strings.HasPrefix(pattern, "!")
	pattern = strings.TrimPrefix(pattern, "!")
	dirOnly := strings.HasSuffix(pattern, "/")

	switch {
	case strings.HasPrefix(pattern, "/"):
		trimmed := strings.TrimPrefix(pattern, "/")
		if prefix == "" {
			effective = "/" + trimmed
		} else {
			effective = path.Join(prefix, trimmed)
		}
	case strings.Contains(pattern, "/"):
		effective = path.Join(prefix, pattern)
	default:
		if prefix == "" {
			effective = pattern
		} else {
			effective = prefix + "/**/" + pattern
		}
	}

	effective = strings.TrimPrefix(effective, "./")
	if dirOnly && !strings.HasSuffix(effective, "/") {
		effective += "/"
	}
	if effective == "" || effective == "." || effective == "/" {
		return "", false
	}
	if negate {
		effective = "!" + effective
	}
	return effective, true
}
