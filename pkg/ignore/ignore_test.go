package ignore

import (
	"testing"
)

func TestMatcherLastMatchWins(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("*.log", "!important.log")

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"debug.log", false, true},
		{"sub/debug.log", false, true},
		{"important.log", false, false},
		{"sub/important.log", false, false},
		{"notes.txt", false, false},
	}
	for _, tt := range tests {
		if got := m.Match(tt.path, tt.isDir); got != tt.want {
			t.Errorf("Match(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
		}
	}
}

func TestMatcherReIgnoreAfterNegation(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("*.log", "!important.log", "important.log")

	if !m.Match("important.log", false) {
		t.Error("later pattern should re-ignore a negated path")
	}
}

func TestMatcherNegationBeforeIgnoreIsInert(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("!important.log", "*.log")

	if !m.Match("important.log", false) {
		t.Error("a negation compiled before the ignoring pattern has no effect")
	}
}

func TestMatcherDirectoryOnlyPatterns(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("temp/")

	if !m.Match("temp", true) {
		t.Error("directory-only pattern should match a directory")
	}
	if m.Match("temp", false) {
		t.Error("directory-only pattern should not match a plain file")
	}
	if !m.Match("a/b/temp", true) {
		t.Error("floating directory-only pattern should match at any depth")
	}
}

func TestMatcherNormalizesLeadingDotSlash(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("/build")

	if !m.Match("./build", false) {
		t.Error("leading ./ should be stripped before matching")
	}
}

func TestMatcherSkipsCommentsAndBlanks(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("# comment", "", "   ", "*.log")

	if m.Len() != 1 {
		t.Errorf("expected 1 compiled pattern, got %d", m.Len())
	}
}

func TestMatcherSkipsInvalidPatterns(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines(`bad\`, "*.log")

	if m.Len() != 1 {
		t.Errorf("expected invalid pattern to be dropped, got %d patterns", m.Len())
	}
	if !m.Match("app.log", false) {
		t.Error("valid pattern after an invalid one should still apply")
	}
}

func TestMatchWithPattern(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("*.log")

	matched, pattern := m.MatchWithPattern("app.log", false)
	if !matched {
		t.Fatal("expected a match for app.log")
	}
	if pattern == nil || pattern.Line != "*.log" {
		t.Errorf("expected decisive pattern *.log, got %+v", pattern)
	}
	if pattern.LineNo != 1 {
		t.Errorf("expected line number 1, got %d", pattern.LineNo)
	}

	matched, pattern = m.MatchWithPattern("app.txt", false)
	if matched || pattern != nil {
		t.Errorf("expected no match for app.txt, got %v with %+v", matched, pattern)
	}
}

func TestMatchWithPatternReportsDecidingNegation(t *testing.T) {
	m := NewMatcher(nil)
	m.CompileIgnoreLines("*.log", "!keep.log")

	matched, pattern := m.MatchWithPattern("keep.log", false)
	if matched {
		t.Error("negated path should not be ignored")
	}
	if pattern == nil || !pattern.Negate {
		t.Errorf("deciding pattern should be the negation, got %+v", pattern)
	}
}

func TestMatcherEmpty(t *testing.T) {
	m := NewMatcher(nil)
	if m.Match("anything", false) {
		t.Error("empty matcher should never match")
	}
	if m.Len() != 0 {
		t.Errorf("empty matcher should have no patterns, got %d", m.Len())
	}
}
