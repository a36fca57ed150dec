package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autoradio/internal/analyze"
	"autoradio/internal/config"
	"autoradio/internal/export"
	"autoradio/internal/logger"
	"autoradio/internal/progress"
	"autoradio/internal/shutdown"
	"autoradio/internal/transcode"
	"autoradio/pkg/utils"
)

func main() {
	cfg, opts, configPath, err := parseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}

	sh := shutdown.New()
	sh.Listen()
	defer sh.Wait()

	log := logger.New(cfg.Verbose)
	defer log.Close()

	if !cfg.Verbose {
		logDir := config.GetDefaultLogPath()
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to create log directory: %v\n", err)
		} else {
			logFile := filepath.Join(logDir, fmt.Sprintf("autoradio_%s.log", time.Now().Format("2006-01-02_15-04-05")))
			if err := log.SetFileLog(logFile); err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
			} else {
				log.Debug("Logging to file: %s", logFile)
			}
		}
	}

	if cfg.Verbose && configPath != "" {
		log.Debug("Loaded configuration from: %s", configPath)
	}

	if opts.SourceDir == "" {
		log.Error("A source directory is required")
		os.Exit(1)
	}

	if opts.Analyze {
		a, err := analyze.Scan(opts.SourceDir)
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		fmt.Println(a.Report())
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Configuration error: %v", err)
		os.Exit(1)
	}

	if err := run(sh, cfg, opts, log); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(sh *shutdown.Handler, cfg config.Config, opts options, log *logger.Logger) error {
	ffmpegPath, err := transcode.FindFFmpeg()
	if err != nil {
		return fmt.Errorf("dependency check failed: %w", err)
	}
	log.Debug("Using ffmpeg: %s", ffmpegPath)

	tmpDir, err := utils.CreateTempDir()
	if err != nil {
		return fmt.Errorf("error creating temporary folder: %w", err)
	}
	log.Debug("Temporary folder: %s", tmpDir)

	if !cfg.KeepTemp {
		sh.AddCleanup(func() {
			log.Debug("Cleaning up...")
			if err := utils.Cleanup(tmpDir); err != nil {
				log.Warn("Error during cleanup: %v", err)
			}
		})
	}

	exp := export.New(cfg.Profile(), log, transcode.New(ffmpegPath, log), tmpDir)

	if cfg.DryRun {
		names, err := exp.PlanNames(opts.SourceDir)
		if err != nil {
			return err
		}
		log.Info("Would export %d files to %s:", len(names), cfg.OutputDir)
		for _, name := range names {
			fmt.Println("  " + name)
		}
		return nil
	}

	if cfg.CleanOutput {
		log.Info("Cleaning output directory %s", cfg.OutputDir)
		if err := utils.CleanDir(cfg.OutputDir); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}

	var bar *progress.Bar
	exp.OnProgress = func(done, total int) {
		if bar == nil && !cfg.Verbose {
			bar = progress.New(total)
			log.SetProgressBar(true)
		}
		if bar != nil {
			bar.Set(done)
		}
	}

	report, err := exp.Run(sh.Context(), opts.SourceDir, cfg.OutputDir)

	if bar != nil {
		bar.Finish()
		log.SetProgressBar(false)
	}

	if err != nil {
		return err
	}

	for _, f := range report.Failed {
		log.Warn("Failed: %s (%v)", f.Name, f.Err)
	}
	log.Info("=== Exported %d files to %s (%d failed) ===", report.Succeeded, cfg.OutputDir, len(report.Failed))

	if report.Succeeded == 0 && len(report.Failed) > 0 {
		return fmt.Errorf("all %d files failed to export", len(report.Failed))
	}
	return nil
}
