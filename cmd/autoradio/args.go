package main

import (
	"fmt"
	"os"

	"autoradio/internal/config"
)

// options carries the per-invocation settings that are not part of the
// persisted configuration.
type options struct {
	SourceDir string
	Analyze   bool
}

// parseArgs parses command-line arguments and loads configuration.
// Priority: CLI flags > config file > defaults
func parseArgs() (config.Config, options, string, error) {
	args := os.Args[1:]
	var opts options

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		}
		if arg == "--init-config" {
			return config.Config{}, opts, "", initConfigFile()
		}
	}

	var configPath string
	var cfg config.Config
	var err error

	for i := 0; i < len(args); i++ {
		if args[i] == "--config" || args[i] == "-c" {
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--config requires a path argument")
			}
			configPath = args[i+1]
			break
		}
	}

	cfg, err = config.LoadConfigFile(configPath)
	if err != nil {
		return config.Config{}, opts, "", fmt.Errorf("failed to load config: %w", err)
	}
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--verbose", "-v":
			cfg.Verbose = true

		case "--dry-run", "-n":
			cfg.DryRun = true

		case "--analyze", "-a":
			opts.Analyze = true

		case "--output", "-o":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--output requires a directory argument")
			}
			i++
			cfg.OutputDir = config.ExpandHome(args[i])

		case "--bitrate", "-b":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--bitrate requires a value like 128k")
			}
			i++
			cfg.Bitrate = args[i]

		case "--mono":
			cfg.Channels = 1

		case "--stereo":
			cfg.Channels = 2

		case "--normalize":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--normalize requires a mode: none, single-pass or two-pass")
			}
			i++
			cfg.Normalization = args[i]

		case "--strip-metadata":
			cfg.StripMetadata = true

		case "--keep-metadata":
			cfg.StripMetadata = false

		case "--album":
			if i+1 >= len(args) {
				return config.Config{}, opts, "", fmt.Errorf("--album requires a name")
			}
			i++
			cfg.Album = args[i]

		case "--clean-output":
			cfg.CleanOutput = true

		case "--keep-temp":
			cfg.KeepTemp = true

		case "--config", "-c":
			i++

		default:
			if len(arg) > 0 && arg[0] == '-' {
				return config.Config{}, opts, "", fmt.Errorf("unknown flag: %s", arg)
			}
			opts.SourceDir = arg
		}
	}

	return cfg, opts, configPath, nil
}

// initConfigFile creates a new config file with default values
func initConfigFile() error {
	path := config.GetDefaultConfigPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at: %s\n", path)
		fmt.Println("Delete it first if you want to recreate it.")
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if err := config.SaveConfigFile(cfg, path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created default config file at: %s\n", path)
	fmt.Println("\nYou can now edit this file to customize your settings.")
	fmt.Println("Available options:")
	fmt.Println("  output_dir: destination directory (default: ~/PODCASTS)")
	fmt.Println("  bitrate: 96k, 128k, 192k, 256k, 320k")
	fmt.Println("  channels: 1 (mono) or 2 (stereo)")
	fmt.Println("  normalization: none, single-pass, two-pass")
	fmt.Println("  strip_metadata: true/false (drop all original tags)")
	fmt.Println("  album: album tag written to every track")
	fmt.Println("  max_title_length: title characters kept in file names (0 = unlimited)")
	fmt.Println("  clean_output: true/false (empty the output directory first)")
	fmt.Println("  theme: display theme name (persisted for UI shells)")

	os.Exit(0)
	return nil
}

// printUsage displays the help message
func printUsage() {
	fmt.Println("autoradio - Prepare audio files for car radio USB playback")
	fmt.Println()
	fmt.Println("Usage: autoradio [options] <source_dir>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o, --output <dir>         Destination directory (default: ~/PODCASTS)")
	fmt.Println("  -b, --bitrate <rate>       MP3 bitrate: 96k, 128k, 192k, 256k, 320k (default: 128k)")
	fmt.Println("      --mono                 Downmix to mono")
	fmt.Println("      --stereo               Keep stereo (default)")
	fmt.Println("      --normalize <mode>     Loudness normalization: none, single-pass, two-pass")
	fmt.Println("      --strip-metadata       Remove all original tags before writing new ones (default)")
	fmt.Println("      --keep-metadata        Keep original tags alongside the new ones")
	fmt.Println("      --album <name>         Album tag for all tracks (default: PODCASTS)")
	fmt.Println("      --clean-output         Empty the output directory before exporting")
	fmt.Println("      --keep-temp            Keep the temporary staging directory")
	fmt.Println("  -a, --analyze              Analyze the source volume instead of exporting")
	fmt.Println("  -n, --dry-run              Show the planned file names without transcoding")
	fmt.Println("  -v, --verbose              Show detailed output")
	fmt.Println("  -c, --config <path>        Path to config file")
	fmt.Println("  -h, --help                 Show this help message")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --init-config              Create a default config file")
	fmt.Println()
	fmt.Println("Config file locations (checked in order):")
	fmt.Println("  ./autoradio.yaml")
	fmt.Println("  ~/.config/autoradio/config.yaml")
	fmt.Println("  ~/.autoradio.yaml")
	fmt.Println()
	fmt.Println("Logging:")
	fmt.Println("  Normal mode: Progress bar shown, detailed logs saved to:")
	fmt.Println("    ~/.local/share/autoradio/logs/")
	fmt.Println("  Verbose mode: All output to stdout, no progress bar, no file logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Preview the export without touching any file")
	fmt.Println("  autoradio --dry-run ~/Downloads/podcasts")
	fmt.Println()
	fmt.Println("  # Export with defaults (128k stereo, single-pass normalization)")
	fmt.Println("  autoradio ~/Downloads/podcasts")
	fmt.Println()
	fmt.Println("  # Export straight to a USB stick, mono, maximum accuracy")
	fmt.Println("  autoradio --mono --normalize two-pass -o /media/usb/PODCASTS ~/Downloads/podcasts")
	fmt.Println()
	fmt.Println("  # Check whether a USB stick will play nicely in a car radio")
	fmt.Println("  autoradio --analyze /media/usb")
	fmt.Println()
	fmt.Println("  # Create a config file to persist settings")
	fmt.Println("  autoradio --init-config")
}
