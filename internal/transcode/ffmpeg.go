// Package transcode drives the external ffmpeg binary: plain CBR re-encodes,
// single-pass dynamic normalization, and the measurement half of the
// two-pass loudnorm cycle.
package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"autoradio/internal/logger"
)

// Loudness targets for two-pass normalization.
const (
	targetLoudness = -16.0 // integrated, LUFS
	targetRange    = 11.0  // loudness range, LU
	targetTruePeak = -1.5  // dBTP
)

// Single-pass dynaudnorm parameters: 150 ms frame length, 15 dB max gain.
const (
	dynFrameLen = 150
	dynMaxGain  = 15
)

// Filter selects the normalization filter applied during an encode.
type Filter int

const (
	FilterNone     Filter = iota
	FilterDynamic         // one-shot dynaudnorm
	FilterLoudnorm        // linear loudnorm correction, needs a Measurement
)

// Job describes a single encode invocation.
type Job struct {
	Source      string
	Dest        string
	Bitrate     string // CBR target, e.g. "128k"
	Channels    int    // 1 = mono, 2 = joint stereo
	StripTags   bool
	Filter      Filter
	Measurement *Measurement // required when Filter == FilterLoudnorm
}

// Encoder runs ffmpeg invocations synchronously, one at a time.
type Encoder struct {
	Path   string
	Logger *logger.Logger
}

// New creates an Encoder for the ffmpeg binary at path.
func New(path string, log *logger.Logger) *Encoder {
	return &Encoder{Path: path, Logger: log}
}

// Run executes one encode to completion. A non-zero exit aborts only this
// item; the error carries an excerpt of ffmpeg's stderr.
func (e *Encoder) Run(ctx context.Context, job Job) error {
	args, err := buildArgs(job)
	if err != nil {
		return err
	}

	e.Logger.Debug("ffmpeg %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("transcode cancelled")
		}
		return fmt.Errorf("ffmpeg failed for %s: %w\nDetails: %s",
			filepath.Base(job.Source), err, excerpt(stderr.String()))
	}
	return nil
}

// Measure runs the analysis-only loudnorm pass: ffmpeg decodes the whole
// file, writes no audio, and prints the measured loudness summary. The
// result feeds the correction pass for the same file.
func (e *Encoder) Measure(ctx context.Context, src string) (Measurement, error) {
	filter := fmt.Sprintf("loudnorm=I=%g:LRA=%g:TP=%g:print_format=json",
		targetLoudness, targetRange, targetTruePeak)
	args := []string{
		"-hide_banner", "-nostats",
		"-i", src,
		"-vn",
		"-af", filter,
		"-f", "null", "-",
	}

	e.Logger.Debug("ffmpeg %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Measurement{}, fmt.Errorf("measurement cancelled")
		}
		return Measurement{}, fmt.Errorf("ffmpeg measurement failed for %s: %w\nDetails: %s",
			filepath.Base(src), err, excerpt(stderr.String()))
	}

	return ParseMeasurement(stderr.String())
}

// buildArgs constructs the full ffmpeg argument list for a Job.
func buildArgs(job Job) ([]string, error) {
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", job.Source}

	// Do not carry metadata or chapters over from the source.
	if job.StripTags {
		args = append(args, "-map_metadata", "-1", "-map_chapters", "-1")
	}

	args = append(args,
		"-vn",
		"-ac", strconv.Itoa(job.Channels),
		"-ar", "44100",
		"-codec:a", "libmp3lame",
		"-b:a", job.Bitrate,
		"-joint_stereo", "1",
	)

	switch job.Filter {
	case FilterNone:
	case FilterDynamic:
		args = append(args, "-af", fmt.Sprintf("dynaudnorm=f=%d:m=%d", dynFrameLen, dynMaxGain))
	case FilterLoudnorm:
		if job.Measurement == nil {
			return nil, fmt.Errorf("loudnorm correction requires a measurement")
		}
		args = append(args, "-af", correctionFilter(*job.Measurement))
	default:
		return nil, fmt.Errorf("unknown filter %d", job.Filter)
	}

	// ID3v2.3 only: v1 tags and v2.4 confuse older head units.
	if job.StripTags {
		args = append(args, "-write_id3v1", "0", "-id3v2_version", "3")
	}

	return append(args, job.Dest), nil
}

// correctionFilter builds the linear loudnorm filter string from the values
// measured by the analysis pass.
func correctionFilter(m Measurement) string {
	return fmt.Sprintf(
		"loudnorm=I=%g:LRA=%g:TP=%g:measured_I=%.2f:measured_LRA=%.2f:measured_TP=%.2f:measured_thresh=%.2f:offset=%.2f:linear=true",
		targetLoudness, targetRange, targetTruePeak,
		m.InputI, m.InputLRA, m.InputTP, m.InputThresh, m.Offset)
}

const maxExcerpt = 1200

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxExcerpt {
		return s[:maxExcerpt]
	}
	return s
}
