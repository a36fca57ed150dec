package transcode

import (
	"strings"
	"testing"
)

func baseJob() Job {
	return Job{
		Source:   "/src/episode.mp3",
		Dest:     "/tmp/01_Episode.mp3",
		Bitrate:  "128k",
		Channels: 2,
	}
}

func TestBuildArgsPlain(t *testing.T) {
	args, err := buildArgs(baseJob())
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i /src/episode.mp3",
		"-vn",
		"-ac 2",
		"-ar 44100",
		"-codec:a libmp3lame",
		"-b:a 128k",
		"-joint_stereo 1",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if strings.Contains(joined, "-af") {
		t.Errorf("plain encode should carry no filter: %s", joined)
	}
	if strings.Contains(joined, "-map_metadata") {
		t.Errorf("plain encode should not strip metadata: %s", joined)
	}
	if args[len(args)-1] != "/tmp/01_Episode.mp3" {
		t.Errorf("destination must be the last argument, got %q", args[len(args)-1])
	}
}

func TestBuildArgsStripTags(t *testing.T) {
	job := baseJob()
	job.StripTags = true

	args, err := buildArgs(job)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-map_metadata -1",
		"-map_chapters -1",
		"-write_id3v1 0",
		"-id3v2_version 3",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestBuildArgsDynamicFilter(t *testing.T) {
	job := baseJob()
	job.Filter = FilterDynamic

	args, err := buildArgs(job)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-af dynaudnorm=f=150:m=15") {
		t.Errorf("expected dynaudnorm filter, got: %s", joined)
	}
}

func TestBuildArgsLoudnormFilter(t *testing.T) {
	job := baseJob()
	job.Filter = FilterLoudnorm
	job.Measurement = &Measurement{
		InputI:      -19.82,
		InputTP:     -2.01,
		InputLRA:    6.30,
		InputThresh: -30.25,
		Offset:      0.08,
	}

	args, err := buildArgs(job)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}

	joined := strings.Join(args, " ")
	want := "loudnorm=I=-16:LRA=11:TP=-1.5" +
		":measured_I=-19.82:measured_LRA=6.30:measured_TP=-2.01" +
		":measured_thresh=-30.25:offset=0.08:linear=true"
	if !strings.Contains(joined, want) {
		t.Errorf("correction filter = %s, want substring %q", joined, want)
	}
}

func TestBuildArgsLoudnormRequiresMeasurement(t *testing.T) {
	job := baseJob()
	job.Filter = FilterLoudnorm

	if _, err := buildArgs(job); err == nil {
		t.Error("buildArgs() should fail when loudnorm has no measurement")
	}
}

func TestBuildArgsMono(t *testing.T) {
	job := baseJob()
	job.Channels = 1

	args, err := buildArgs(job)
	if err != nil {
		t.Fatalf("buildArgs() error: %v", err)
	}
	if !strings.Contains(strings.Join(args, " "), "-ac 1") {
		t.Error("expected -ac 1 for mono job")
	}
}
