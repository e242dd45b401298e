package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raflos10/video-player/internal/config"
	"github.com/Raflos10/video-player/internal/logging"
	"github.com/Raflos10/video-player/internal/subtitle"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vplayer",
	Short: "Find, inspect and play back subtitles for video files",
	Long: `vplayer locates the SubRip or WebVTT caption file that belongs to a video,
parses it and answers which captions are on screen at any playback position.

Caption files are looked up next to the video (movie.mkv -> movie.srt, movie.vtt)
and then in a subs/ directory beside it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file (default: user config dir/video-player/config.yaml)")
	rootCmd.PersistentFlags().
		String("subtitle-format", "", "Force caption format (auto, srt, vtt)")
	rootCmd.PersistentFlags().
		Bool("no-strip", false, "Keep leading and trailing whitespace of caption lines")
	rootCmd.PersistentFlags().
		Bool("transcode", false, "Decode caption files that are not UTF-8 from their detected charset")
	rootCmd.PersistentFlags().
		Duration("delay", 0, "Shift captions later (positive) or earlier (negative), e.g. 1.5s")
}

func setup(cmd *cobra.Command, args []string) error {
	logger = logging.NewLogger(verbose)

	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("subtitle-format") {
		value, _ := flags.GetString("subtitle-format")
		format, err := subtitle.ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.Subtitles.Format = string(format)
	}
	if flags.Changed("no-strip") {
		noStrip, _ := flags.GetBool("no-strip")
		cfg.Subtitles.StripText = !noStrip
	}
	if flags.Changed("transcode") {
		cfg.Subtitles.Transcode, _ = flags.GetBool("transcode")
	}
	if flags.Changed("delay") {
		cfg.Subtitles.Delay, _ = flags.GetDuration("delay")
	}

	logger.Debugw("Configuration loaded",
		"config", configPath,
		"format", cfg.Subtitles.Format,
		"strip_text", cfg.Subtitles.StripText,
		"transcode", cfg.Subtitles.Transcode,
		"delay", cfg.Subtitles.Delay,
	)
	return nil
}
