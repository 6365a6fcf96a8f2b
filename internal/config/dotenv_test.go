package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
# comment
FINTRACK_TEST_PLAIN=hello
export FINTRACK_TEST_EXPORTED=world
FINTRACK_TEST_QUOTED="with spaces"
FINTRACK_TEST_PRESET=from-file
not-a-pair
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("FINTRACK_TEST_PRESET", "from-env")
	t.Setenv("FINTRACK_TEST_PLAIN", "")
	t.Setenv("FINTRACK_TEST_EXPORTED", "")
	t.Setenv("FINTRACK_TEST_QUOTED", "")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := os.Getenv("FINTRACK_TEST_PLAIN"); got != "hello" {
		t.Errorf("plain = %q, want hello", got)
	}
	if got := os.Getenv("FINTRACK_TEST_EXPORTED"); got != "world" {
		t.Errorf("exported = %q, want world", got)
	}
	if got := os.Getenv("FINTRACK_TEST_QUOTED"); got != "with spaces" {
		t.Errorf("quoted = %q, want 'with spaces'", got)
	}
	// The process environment wins over the file.
	if got := os.Getenv("FINTRACK_TEST_PRESET"); got != "from-env" {
		t.Errorf("preset = %q, want from-env", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
