package metadata

import (
	"os/exec"
	"path/filepath"
	"testing"

	"go.senan.xyz/taglib"
)

// createTestAudioFile generates a minimal MP3 using ffmpeg.
// Skips the test if ffmpeg is not available.
func createTestAudioFile(t *testing.T, dir string) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available, skipping tagger test")
	}

	path := filepath.Join(dir, "test.mp3")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=44100:cl=mono", "-t", "0.1", "-q:a", "9", path)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

func TestWrite(t *testing.T) {
	path := createTestAudioFile(t, t.TempDir())

	var tagger Tagger
	err := tagger.Write(path, Tags{Title: "Morning News", Album: "PODCASTS", TrackNumber: 3}, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	checks := map[string]string{
		taglib.Title:       "Morning News",
		taglib.Album:       "PODCASTS",
		taglib.TrackNumber: "3",
	}
	for key, want := range checks {
		got := ""
		if vals, ok := tags[key]; ok && len(vals) > 0 {
			got = vals[0]
		}
		if got != want {
			t.Errorf("tag %s = %q, want %q", key, got, want)
		}
	}
}

func TestWriteStripRemovesLegacyTags(t *testing.T) {
	path := createTestAudioFile(t, t.TempDir())

	var tagger Tagger

	// Seed the file with legacy tags a sloppy publisher might have left.
	seed := map[string][]string{
		taglib.Title:       {"Old Title"},
		taglib.Album:       {"Old Album"},
		taglib.Artist:      {"Old Artist"},
		taglib.Genre:       {"Podcast"},
		taglib.TrackNumber: {"99"},
	}
	if err := taglib.WriteTags(path, seed, 0); err != nil {
		t.Fatalf("failed to seed tags: %v", err)
	}

	err := tagger.Write(path, Tags{Title: "Fresh Title", Album: "PODCASTS", TrackNumber: 1}, true)
	if err != nil {
		t.Fatalf("Write with strip failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	if got := first(tags, taglib.Album); got != "PODCASTS" {
		t.Errorf("album = %q, want profile-derived value only", got)
	}
	if got := first(tags, taglib.Title); got != "Fresh Title" {
		t.Errorf("title = %q, want %q", got, "Fresh Title")
	}
	if got := first(tags, taglib.Artist); got != "" {
		t.Errorf("legacy artist tag survived strip: %q", got)
	}
	if got := first(tags, taglib.Genre); got != "" {
		t.Errorf("legacy genre tag survived strip: %q", got)
	}
	if got := first(tags, taglib.TrackNumber); got != "1" {
		t.Errorf("track number = %q, want %q", got, "1")
	}
}

func TestReadTitle(t *testing.T) {
	path := createTestAudioFile(t, t.TempDir())

	var tagger Tagger

	// No title tag yet: fall back to the filename stem.
	if got := tagger.ReadTitle(path); got != "test" {
		t.Errorf("ReadTitle() without tag = %q, want %q", got, "test")
	}

	if err := taglib.WriteTags(path, map[string][]string{taglib.Title: {"Embedded Title"}}, 0); err != nil {
		t.Fatalf("failed to write title: %v", err)
	}
	if got := tagger.ReadTitle(path); got != "Embedded Title" {
		t.Errorf("ReadTitle() = %q, want %q", got, "Embedded Title")
	}
}

func TestReadTitleUnreadableFile(t *testing.T) {
	var tagger Tagger
	if got := tagger.ReadTitle("/nonexistent/042_episode.mp3"); got != "042_episode" {
		t.Errorf("ReadTitle() fallback = %q, want %q", got, "042_episode")
	}
}

func TestWriteNonexistentFile(t *testing.T) {
	var tagger Tagger
	if err := tagger.Write("/nonexistent/file.mp3", Tags{Title: "x"}, false); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func first(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}
