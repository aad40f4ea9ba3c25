package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output != DefaultOutputFile {
		t.Errorf("Expected default output %q, got %q", DefaultOutputFile, cfg.Output)
	}
	if cfg.Verbose {
		t.Error("Expected verbose to default to false")
	}
	if cfg.MaxFileSizeKB != 0 {
		t.Errorf("Expected unlimited file size by default, got %d", cfg.MaxFileSizeKB)
	}
	if cfg.MaxWorkers != 0 {
		t.Errorf("Expected default worker count 0, got %d", cfg.MaxWorkers)
	}
	if len(cfg.Ignore) != 0 {
		t.Errorf("Expected no default ignore patterns, got %v", cfg.Ignore)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Missing config file should not error: %v", err)
	}
	if cfg.Output != DefaultOutputFile {
		t.Errorf("Expected defaults for missing file, got output %q", cfg.Output)
	}
}

func TestLoadConfigReadsAllFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `output: context.txt
verbose: true
max_file_size_kb: 256
max_workers: 4
global_ignore: /etc/llmcontext/ignore
ignore:
  - "*.secret"
  - "tmp/"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output != "context.txt" {
		t.Errorf("Expected output context.txt, got %q", cfg.Output)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose true")
	}
	if cfg.MaxFileSizeKB != 256 {
		t.Errorf("Expected max_file_size_kb 256, got %d", cfg.MaxFileSizeKB)
	}
	if cfg.MaxWorkers != 4 {
		t.Errorf("Expected max_workers 4, got %d", cfg.MaxWorkers)
	}
	if cfg.GlobalIgnore != "/etc/llmcontext/ignore" {
		t.Errorf("Expected global_ignore path, got %q", cfg.GlobalIgnore)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "*.secret" || cfg.Ignore[1] != "tmp/" {
		t.Errorf("Expected two ignore patterns, got %v", cfg.Ignore)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte("verbose: true\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose true from file")
	}
	if cfg.Output != DefaultOutputFile {
		t.Errorf("Unset fields should keep defaults, got output %q", cfg.Output)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected error for malformed config file")
	}
}
