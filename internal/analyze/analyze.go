// Package analyze inspects a destination volume (typically a USB stick)
// and reports whether its layout is friendly to car radio head units,
// which often choke on deep trees, huge directories, and exotic names.
package analyze

import (
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"autoradio/internal/source"
	"autoradio/pkg/utils"
)

// Head units tolerate surprisingly little. These limits come from field
// reports on consumer car radios, not from any formal standard.
const (
	maxNameLen    = 64
	maxDirFiles   = 200
	maxTotalFiles = 1500
	maxTreeDepth  = 2
)

// Analysis summarizes a scanned volume.
type Analysis struct {
	Root            string
	FSType          string
	FileCount       int
	AudioCount      int
	OtherCount      int
	MaxDepth        int
	MaxFilesPerDir  int
	LongNameCount   int
	NonASCIICount   int
	TotalAudioBytes int64
	Problems        []string
}

// OK reports whether the volume passed every check.
func (a *Analysis) OK() bool {
	return len(a.Problems) == 0
}

// Scan walks root and builds an Analysis. Hidden files and macOS
// metadata files are not counted. Unreadable entries are skipped
// rather than failing the whole scan.
func Scan(root string) (*Analysis, error) {
	a := &Analysis{
		Root:   root,
		FSType: fsType(root),
	}

	perDir := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && rel != "." {
				depth := len(strings.Split(rel, string(filepath.Separator)))
				if depth > a.MaxDepth {
					a.MaxDepth = depth
				}
			}
			return nil
		}

		name := d.Name()
		if source.Ignored(name) {
			return nil
		}

		a.FileCount++
		perDir[filepath.Dir(path)]++

		if source.IsAudio(name) {
			a.AudioCount++
			if info, infoErr := d.Info(); infoErr == nil {
				a.TotalAudioBytes += info.Size()
			}
		} else {
			a.OtherCount++
		}

		if len(name) > maxNameLen {
			a.LongNameCount++
		}
		if !isASCII(name) {
			a.NonASCIICount++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	for _, n := range perDir {
		if n > a.MaxFilesPerDir {
			a.MaxFilesPerDir = n
		}
	}

	a.Problems = problems(a)
	return a, nil
}

func problems(a *Analysis) []string {
	var out []string

	switch a.FSType {
	case "exfat", "ntfs", "unknown":
		out = append(out, fmt.Sprintf("filesystem is %s; FAT32 (or FAT16) is the safest choice for car radios", a.FSType))
	}
	if a.MaxDepth > maxTreeDepth {
		out = append(out, fmt.Sprintf("directory tree is %d levels deep; keep it to %d or flatter", a.MaxDepth, maxTreeDepth))
	}
	if a.MaxFilesPerDir > maxDirFiles {
		out = append(out, fmt.Sprintf("one directory holds %d files; 50 to 100 per directory is safer", a.MaxFilesPerDir))
	}
	if a.FileCount > maxTotalFiles {
		out = append(out, fmt.Sprintf("%d files in total; some head units stop indexing past %d", a.FileCount, maxTotalFiles))
	}
	if a.NonASCIICount > 0 {
		out = append(out, fmt.Sprintf("%d file names contain non-ASCII characters", a.NonASCIICount))
	}
	if a.LongNameCount > 0 {
		out = append(out, fmt.Sprintf("%d file names exceed %d characters", a.LongNameCount, maxNameLen))
	}
	return out
}

// Report renders a human-readable summary.
func (a *Analysis) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Analysis report: %s ===\n\n", a.Root)
	if a.OK() {
		b.WriteString("Verdict: volume looks radio-friendly\n\n")
	} else {
		b.WriteString("Verdict: volume may cause playback problems\n\n")
		for _, p := range a.Problems {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Filesystem:      %s\n", a.FSType)
	fmt.Fprintf(&b, "Files:           %d (%d audio, %d other)\n", a.FileCount, a.AudioCount, a.OtherCount)
	fmt.Fprintf(&b, "Max depth:       %d\n", a.MaxDepth)
	fmt.Fprintf(&b, "Max per dir:     %d\n", a.MaxFilesPerDir)
	fmt.Fprintf(&b, "Long names:      %d\n", a.LongNameCount)
	fmt.Fprintf(&b, "Non-ASCII names: %d\n", a.NonASCIICount)
	fmt.Fprintf(&b, "Audio size:      %s\n", utils.HumanBytes(a.TotalAudioBytes))
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// fsType asks the OS which filesystem backs path. Best effort: an
// empty or failed probe yields "unknown".
func fsType(path string) string {
	switch runtime.GOOS {
	case "linux":
		out, err := exec.Command("findmnt", "-no", "FSTYPE", "--target", path).Output()
		if err != nil {
			return "unknown"
		}
		if t := strings.ToLower(strings.TrimSpace(string(out))); t != "" {
			return t
		}
	case "darwin":
		out, err := exec.Command("diskutil", "info", path).Output()
		if err != nil {
			return "unknown"
		}
		for _, line := range strings.Split(string(out), "\n") {
			if strings.Contains(line, "File System Personality") {
				if _, v, ok := strings.Cut(line, ":"); ok {
					return strings.ToLower(strings.TrimSpace(v))
				}
			}
		}
	}
	return "unknown"
}
