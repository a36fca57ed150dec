// Package source discovers the audio files that make up an export run.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDirectoryNotFound is returned when the source path does not exist or
// is not a directory. It is the only error that aborts a run before any
// output is produced.
var ErrDirectoryNotFound = errors.New("source directory not found")

// Supported audio file extensions
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".opus": true,
	".wav":  true,
	".aac":  true,
	".ogg":  true,
}

// IsAudio reports whether a file name carries a supported audio extension.
func IsAudio(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// Ignored reports whether a file name is hidden or a macOS sidecar file
// (._*, .DS_Store). Car radios choke on these and they are never audio.
func Ignored(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Item is one discovered audio file.
type Item struct {
	Path     string
	Name     string
	Position int // enumeration order within the source directory
}

// Discover enumerates the regular audio files directly inside dir.
// Non-audio files and hidden files are silently skipped; an empty result
// is not an error.
func Discover(dir string) ([]Item, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", dir, err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if Ignored(name) || !IsAudio(name) {
			continue
		}
		items = append(items, Item{
			Path:     filepath.Join(dir, name),
			Name:     name,
			Position: len(items),
		})
	}

	return items, nil
}
