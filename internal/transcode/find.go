package transcode

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FindFFmpeg locates the ffmpeg binary. A bundled copy under a tools/
// directory next to the executable wins over PATH, so a packaged build
// works on machines without ffmpeg installed.
func FindFFmpeg() (string, error) {
	binary := "ffmpeg"
	if runtime.GOOS == "windows" {
		binary = "ffmpeg.exe"
	}

	if exe, err := os.Executable(); err == nil {
		toolsRoot := filepath.Join(filepath.Dir(exe), "tools")
		candidates := []string{
			filepath.Join(toolsRoot, binary),
			filepath.Join(toolsRoot, runtime.GOOS, binary),
			filepath.Join(toolsRoot, runtime.GOOS+"-"+runtime.GOARCH, binary),
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
				return c, nil
			}
		}
	}

	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in tools/ or PATH: %w", err)
	}
	return path, nil
}
