package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "out", "dst.mp3")

	if err := os.WriteFile(src, []byte("audio-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "audio-bytes" {
		t.Errorf("copied content = %q, want %q", got, "audio-bytes")
	}

	// Source must survive the copy.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	if err := CopyFile(filepath.Join(t.TempDir(), "nope.mp3"), filepath.Join(t.TempDir(), "dst.mp3")); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestCleanupRefusesOutsideTemp(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if err := Cleanup(filepath.Join(home, "autoradio-test-should-not-exist")); err == nil {
		t.Error("expected refusal for directory outside temp")
	}
}

func TestCleanDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stale.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CleanDir(dir); err != nil {
		t.Fatalf("CleanDir() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("dir missing after clean: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir, got %d entries", len(entries))
	}
}

func TestCleanDirRefusesRoot(t *testing.T) {
	if err := CleanDir("/"); err == nil {
		t.Error("expected refusal for root")
	}
	if err := CleanDir(""); err == nil {
		t.Error("expected refusal for empty path")
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
	}
	for _, tt := range tests {
		if got := HumanBytes(tt.n); got != tt.want {
			t.Errorf("HumanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
