package keystore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	key, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if key != "" {
		t.Errorf("Load() = %q, want empty", key)
	}
}

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.toml")

	if err := Save(path, "  abc123xyz \n"); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() returned unexpected error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	key, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if key != "abc123xyz" {
		t.Errorf("Load() = %q, want %q", key, "abc123xyz")
	}

	if err := Clear(path); err != nil {
		t.Fatalf("Clear() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Clear(): %v", err)
	}

	if err := Clear(path); err != nil {
		t.Errorf("second Clear() returned unexpected error: %v", err)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	if err := os.WriteFile(path, []byte("api_key = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for malformed file, got nil")
	}
}

func TestResolvePath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolvePath("~/creds.toml")
	if err != nil {
		t.Fatalf("resolvePath() returned unexpected error: %v", err)
	}
	if want := filepath.Join(home, "creds.toml"); got != want {
		t.Errorf("resolvePath() = %q, want %q", got, want)
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "(not set)"},
		{"abc", "***"},
		{"abcd", "****"},
		{"0123456789", "******6789"},
	}

	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
