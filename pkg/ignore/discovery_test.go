package ignore

import (
	"testing"

	"github.com/spf13/afero"
)

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverRulesCollectsAllDepths(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/project/.gitignore", "*.log\n")
	writeFile(t, fsys, "/project/sub/.gitignore", "*.tmp\n")
	writeFile(t, fsys, "/project/sub/deep/.llmignore", "secret/\n")
	writeFile(t, fsys, "/project/a.txt", "content")

	rules, err := DiscoverRules(fsys, "/project", nil, nil)
	if err != nil {
		t.Fatalf("DiscoverRules: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d: %+v", len(rules), rules)
	}

	// All .gitignore rules come before all .llmignore rules.
	if rules[0].Pattern != "*.log" || rules[1].Pattern != "*.tmp" {
		t.Errorf("unexpected .gitignore rule order: %+v", rules[:2])
	}
	if rules[2].Pattern != "secret/" {
		t.Errorf("expected the .llmignore rule last, got %+v", rules[2])
	}
	if rules[2].Source != "/project/sub/deep/.llmignore" {
		t.Errorf("unexpected rule source %q", rules[2].Source)
	}
}

func TestDiscoverRulesSkipsCommentsAndBlanks(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/p/.gitignore", "# header\n\n*.log\n   \n!keep.log\n")

	rules, err := DiscoverRules(fsys, "/p", nil, nil)
	if err != nil {
		t.Fatalf("DiscoverRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d: %+v", len(rules), rules)
	}
	if rules[0].Pattern != "*.log" || rules[0].LineNo != 3 {
		t.Errorf("unexpected first rule %+v", rules[0])
	}
	if rules[1].Pattern != "!keep.log" || rules[1].LineNo != 5 {
		t.Errorf("unexpected second rule %+v", rules[1])
	}
}

func TestDiscoverRulesCustomNames(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/p/.customignore", "*.bak\n")
	writeFile(t, fsys, "/p/.gitignore", "*.log\n")

	rules, err := DiscoverRules(fsys, "/p", []string{".customignore"}, nil)
	if err != nil {
		t.Fatalf("DiscoverRules: %v", err)
	}
	if len(rules) != 1 || rules[0].Pattern != "*.bak" {
		t.Errorf("expected only the .customignore rule, got %+v", rules)
	}
}

func TestDiscoverRulesMissingRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if _, err := DiscoverRules(fsys, "/absent", nil, nil); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestSortRulesByDepth(t *testing.T) {
	rules := []Rule{
		{Pattern: "deep", Dir: "/p/a/b"},
		{Pattern: "root", Dir: "/p"},
		{Pattern: "mid-first", Dir: "/p/a"},
		{Pattern: "mid-second", Dir: "/p/a"},
	}
	sortRulesByDepth("/p", rules)

	got := make([]string, len(rules))
	for i, rule := range rules {
		got[i] = rule.Pattern
	}
	want := []string{"root", "mid-first", "mid-second", "deep"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("depth order = %v, want %v", got, want)
		}
	}
}

func TestRuleDepth(t *testing.T) {
	tests := []struct {
		dir  string
		want int
	}{
		{"/p", 0},
		{"/p/a", 1},
		{"/p/a/b", 2},
	}
	for _, tt := range tests {
		if got := ruleDepth("/p", Rule{Dir: tt.dir}); got != tt.want {
			t.Errorf("ruleDepth(%q) = %d, want %d", tt.dir, got, tt.want)
		}
	}

	// A directory outside the root sorts after everything else.
	outside := ruleDepth("/p", Rule{Dir: "/elsewhere"})
	inside := ruleDepth("/p", Rule{Dir: "/p/a/b/c/d"})
	if outside <= inside {
		t.Errorf("outside depth %d should exceed inside depth %d", outside, inside)
	}
}
