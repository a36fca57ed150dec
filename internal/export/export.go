// Package export implements the deterministic ordering and export pipeline:
// discover the source files, fix their order once, then transcode, re-tag
// and rename each one into the output directory.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"autoradio/internal/logger"
	"autoradio/internal/metadata"
	"autoradio/internal/order"
	"autoradio/internal/source"
	"autoradio/internal/transcode"
	"autoradio/pkg/utils"
)

// Transcoder runs the external encode and measurement invocations.
type Transcoder interface {
	Run(ctx context.Context, job transcode.Job) error
	Measure(ctx context.Context, src string) (transcode.Measurement, error)
}

// Tagger reads and writes embedded tags.
type Tagger interface {
	ReadTitle(path string) string
	Write(path string, t metadata.Tags, strip bool) error
}

// Failure records one item that could not be exported.
type Failure struct {
	Name string // source file name
	Err  error
}

// Report summarizes an export run.
type Report struct {
	Succeeded int
	Failed    []Failure
}

// Exporter processes an ordering plan item by item. Each item's output is
// independent, so one failed item never aborts the run.
type Exporter struct {
	Profile    Profile
	Logger     *logger.Logger
	Transcoder Transcoder
	Tagger     Tagger
	TmpDir     string
	OnProgress func(done, total int)
}

// New creates an Exporter using the taglib-backed tagger.
func New(profile Profile, log *logger.Logger, tc Transcoder, tmpDir string) *Exporter {
	return &Exporter{
		Profile:    profile,
		Logger:     log,
		Transcoder: tc,
		Tagger:     metadata.Tagger{},
		TmpDir:     tmpDir,
	}
}

// Run exports sourceDir into outputDir and reports per-item results.
// Cancellation is honored between items only: a two-pass measurement and
// its correction always run as a unit for the same item.
func (e *Exporter) Run(ctx context.Context, sourceDir, outputDir string) (Report, error) {
	var report Report

	items, err := source.Discover(sourceDir)
	if err != nil {
		return report, err
	}
	if len(items) == 0 {
		e.Logger.Warn("No audio files found in %s", sourceDir)
		return report, nil
	}

	plan := order.Compute(items)
	total := len(plan.Entries)
	e.Logger.Info("=== Exporting %d files to %s ===", total, outputDir)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, entry := range plan.Entries {
		select {
		case <-ctx.Done():
			return report, fmt.Errorf("export cancelled after %d of %d items", i, total)
		default:
		}

		name, err := e.processItem(ctx, plan, entry, outputDir)
		if err != nil {
			e.Logger.Warn("Skipping %s: %v", entry.Item.Name, err)
			report.Failed = append(report.Failed, Failure{Name: entry.Item.Name, Err: err})
		} else {
			report.Succeeded++
			e.Logger.Info("[%d/%d] %s", entry.Index, total, name)
		}

		if e.OnProgress != nil {
			e.OnProgress(i+1, total)
		}
	}

	return report, nil
}

// processItem transcodes one item into the staging directory, rewrites its
// tags, and copies it under its final name. Returns the output filename.
//
// The item runs on a context detached from the run's cancellation: once an
// item has started it completes, so a cancel never kills an in-flight
// ffmpeg invocation or splits a measurement from its correction pass. Run
// checks the live context between items.
func (e *Exporter) processItem(ctx context.Context, plan order.Plan, entry order.Entry, outputDir string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	title := e.Tagger.ReadTitle(entry.Item.Path)
	name := plan.FileName(entry, title, e.Profile.MaxTitleLen)
	staged := filepath.Join(e.TmpDir, name)

	job := transcode.Job{
		Source:    entry.Item.Path,
		Dest:      staged,
		Bitrate:   e.Profile.Bitrate,
		Channels:  e.Profile.Channels,
		StripTags: e.Profile.StripMetadata,
	}

	switch e.Profile.Normalization {
	case NormSinglePass:
		job.Filter = transcode.FilterDynamic
	case NormTwoPass:
		// Measure-then-correct is an explicit two-step task: the second
		// invocation is parameterized by the first and the pair runs to
		// completion as one unit.
		m, err := e.Transcoder.Measure(ctx, entry.Item.Path)
		if err != nil {
			return "", fmt.Errorf("loudness measurement failed: %w", err)
		}
		job.Filter = transcode.FilterLoudnorm
		job.Measurement = &m
	}

	if err := e.Transcoder.Run(ctx, job); err != nil {
		return "", err
	}

	tags := metadata.Tags{
		Title:       title,
		Album:       e.Profile.Album,
		TrackNumber: entry.Index,
	}
	if err := e.Tagger.Write(staged, tags, e.Profile.StripMetadata); err != nil {
		return "", err
	}

	if err := utils.CopyFile(staged, filepath.Join(outputDir, name)); err != nil {
		return "", fmt.Errorf("failed to copy %s to output: %w", name, err)
	}
	return name, nil
}

// PlanNames returns the output filenames the pipeline would produce for
// sourceDir without transcoding anything. Used for dry runs.
func (e *Exporter) PlanNames(sourceDir string) ([]string, error) {
	items, err := source.Discover(sourceDir)
	if err != nil {
		return nil, err
	}

	plan := order.Compute(items)
	names := make([]string, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		title := e.Tagger.ReadTitle(entry.Item.Path)
		names = append(names, plan.FileName(entry, title, e.Profile.MaxTitleLen))
	}
	return names, nil
}
