package config

import (
	"os"
	"testing"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("INVADERS_TEST_INT", "42")
	if got := GetEnvInt("INVADERS_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	t.Setenv("INVADERS_TEST_INT", "forty")
	if got := GetEnvInt("INVADERS_TEST_INT", 7); got != 7 {
		t.Errorf("unparsable value = %d, want fallback 7", got)
	}
	if got := GetEnvInt("INVADERS_TEST_UNSET", 9); got != 9 {
		t.Errorf("unset = %d, want 9", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("missing .env: %v", err)
	}

	if err := os.WriteFile(".env", []byte("INVADERS_TEST_DOTENV=from-file\nINVADERS_TEST_SET=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVADERS_TEST_SET", "from-env")
	t.Setenv("INVADERS_TEST_DOTENV", "")
	os.Unsetenv("INVADERS_TEST_DOTENV")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := GetEnv("INVADERS_TEST_DOTENV", ""); got != "from-file" {
		t.Errorf("dotenv value = %q", got)
	}
	if got := GetEnv("INVADERS_TEST_SET", ""); got != "from-env" {
		t.Errorf("existing env overwritten: %q", got)
	}
}
