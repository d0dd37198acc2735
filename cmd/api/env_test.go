package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	t.Setenv(envFileVar, filepath.Join(t.TempDir(), "absent.env"))

	if err := loadDotEnv(); err != nil {
		t.Fatalf("expected missing dotenv file to be ignored, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=debug\nCALC_TEST_ONLY_FROM_FILE=yes\n"), 0o600); err != nil {
		t.Fatalf("writing dotenv file: %v", err)
	}
	t.Setenv(envFileVar, path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CALC_TEST_ONLY_FROM_FILE", "")
	os.Unsetenv("CALC_TEST_ONLY_FROM_FILE")

	if err := loadDotEnv(); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}

	if got := os.Getenv("LOG_LEVEL"); got != "warn" {
		t.Fatalf("expected process env to win, got LOG_LEVEL=%q", got)
	}
	if got := os.Getenv("CALC_TEST_ONLY_FROM_FILE"); got != "yes" {
		t.Fatalf("expected value loaded from file, got %q", got)
	}
}
