// Package metadata reads and writes embedded audio tags via taglib.
package metadata

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.senan.xyz/taglib"
)

// Tags is the full set of values the pipeline embeds in an output file.
type Tags struct {
	Title       string
	Album       string
	TrackNumber int
}

// Tagger is the taglib-backed tag facility.
type Tagger struct{}

// ReadTitle returns the embedded title of an audio file, falling back to
// the filename without extension when no usable title tag is present.
func (Tagger) ReadTitle(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	tags, err := taglib.ReadTags(path)
	if err != nil {
		return stem
	}
	if vals, ok := tags[taglib.Title]; ok && len(vals) > 0 {
		if title := strings.TrimSpace(vals[0]); title != "" {
			return title
		}
	}
	return stem
}

// Write embeds the given tags. When strip is set, all pre-existing tags are
// cleared before the new values are written, so no legacy tag survives the
// rewrite.
func (Tagger) Write(path string, t Tags, strip bool) error {
	tags := make(map[string][]string)
	if t.Title != "" {
		tags[taglib.Title] = []string{t.Title}
	}
	if t.Album != "" {
		tags[taglib.Album] = []string{t.Album}
	}
	if t.TrackNumber > 0 {
		tags[taglib.TrackNumber] = []string{strconv.Itoa(t.TrackNumber)}
	}

	var opts taglib.WriteOption
	if strip {
		opts |= taglib.Clear
	}

	if err := taglib.WriteTags(path, tags, opts); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}
