// File: pkg/ignore/patterns.go
package ignore

import (
	"errors"
	"regexp"
	"strings"
)

// translatePattern converts one pattern in the ignore-file dialect into the
// source text of an anchored regular expression. Patterns are matched against
// root-relative slash-separated paths, with a trailing slash appended to
// directory paths. negate relaxes the descendant expansion: a negation
// pattern re-includes only the exact paths it names, never paths beneath
// them.
func translatePattern(pattern string, negate bool) (string, error) {
	segments := collapseDoubleStars(strings.Split(pattern, "/"))

	switch {
	case segments[0] == "":
		// A leading slash anchors the pattern; drop the empty segment so
		// the remainder matches from the start of the path.
		segments = segments[1:]
	case len(segments) == 1 || (len(segments) == 2 && segments[1] == ""):
		// No slash except possibly a trailing one: the pattern floats and
		// may match at any depth, equivalent to "**/<pattern>".
		if segments[0] != "**" {
			segments = append([]string{"**"}, segments...)
		}
	}
	if len(segments) == 0 || (len(segments) == 1 && segments[0] == "") {
		return "", errors.New("pattern has no content")
	}
	if last := len(segments) - 1; segments[last] == "" {
		// A trailing slash restricts the pattern to directories. Directory
		// paths carry a trailing slash when matched, so rewriting the empty
		// segment to "**" yields the directory-only behavior.
		segments[last] = "**"
	}

	var sb strings.Builder
	sb.WriteByte('^')
	needSlash := false
	end := len(segments) - 1
	for i, segment := range segments {
		switch {
		case segment == "**":
			switch {
			case i == 0 && i == end:
				sb.WriteString(`[^/]+(?:/.*)?`)
			case i == 0:
				// Leading "**/" covers any number of leading directories.
				sb.WriteString(`(?:.+/)?`)
				needSlash = false
			case i == end:
				// Trailing "/**" covers everything inside the directory.
				sb.WriteString(`/.*`)
			default:
				// Interior "/**/" spans zero or more directories.
				sb.WriteString(`(?:/.+)?`)
				needSlash = true
			}
		case segment == "*":
			if needSlash {
				sb.WriteByte('/')
			}
			// A lone "*" segment must consume at least one character, so
			// "dir/*" matches the children of dir but never dir itself.
			sb.WriteString(`[^/]+`)
			if i == end && !negate {
				sb.WriteString(`(?:/.*)?`)
			}
			needSlash = true
		default:
			if needSlash {
				sb.WriteByte('/')
			}
			translated, err := translateSegment(segment)
			if err != nil {
				return "", err
			}
			sb.WriteString(translated)
			if i == end && !negate {
				// A pattern naming a directory also covers everything
				// beneath it.
				sb.WriteString(`(?:/.*)?`)
			}
			needSlash = true
		}
	}
	sb.WriteByte('$')
	return sb.String(), nil
}

// collapseDoubleStars folds runs of consecutive "**" segments into one, so
// "a/**/**/b" behaves exactly like "a/**/b".
func collapseDoubleStars(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "**" && len(out) > 0 && out[len(out)-1] == "**" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// translateSegment translates a single path segment, where "*", "?" and
// bracket expressions never cross a slash boundary.
func translateSegment(segment string) (string, error) {
	var sb strings.Builder
	runes := []rune(segment)
	escaped := false
	for i := 0; i < len(runes); {
		ch := runes[i]
		i++
		switch {
		case escaped:
			escaped = false
			sb.WriteString(regexp.QuoteMeta(string(ch)))
		case ch == '\\':
			escaped = true
		case ch == '*':
			sb.WriteString(`[^/]*`)
		case ch == '?':
			sb.WriteString(`[^/]`)
		case ch == '[':
			var ok bool
			i, ok = translateBracket(&sb, runes, i)
			if !ok {
				// Never closed: the bracket is a literal character.
				sb.WriteString(`\[`)
			}
		default:
			sb.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	if escaped {
		return "", errors.New("trailing backslash")
	}
	return sb.String(), nil
}

// translateBracket consumes a bracket expression starting at runes[i], one
// past the opening bracket. It returns the index one past the closing
// bracket, or ok=false when the expression never closes.
func translateBracket(sb *strings.Builder, runes []rune, i int) (int, bool) {
	j := i
	if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
		j++
	}
	// A closing bracket directly after the opening bracket or the negation
	// marker is a literal member of the set.
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	if j >= len(runes) {
		return i, false
	}

	sb.WriteByte('[')
	if runes[i] == '!' || runes[i] == '^' {
		sb.WriteByte('^')
		i++
	}
	body := strings.ReplaceAll(string(runes[i:j]), `\`, `\\`)
	if strings.HasPrefix(body, "]") {
		// The regexp syntax rejects a bare "]" opening a character class.
		body = `\` + body
	}
	sb.WriteString(body)
	sb.WriteByte(']')
	return j + 1, true
}
