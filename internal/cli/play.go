package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raflos10/video-player/internal/ffmpeg"
	"github.com/Raflos10/video-player/internal/player"
	"github.com/Raflos10/video-player/internal/subtitle"
	"github.com/Raflos10/video-player/internal/video"
)

var playCmd = &cobra.Command{
	Use:   "play [video_or_caption_file]",
	Short: "Simulate playback and print captions as they change",
	Long: `Advance a playback clock in real time and print the captions whenever the
set on screen changes. Without --to playback stops at the end of the video as
reported by ffprobe, or when the last caption ends.

With --watch the caption file is reloaded when it is created, edited or
removed, so edits show up while playing.

Examples:
  vplayer play movie.mkv
  vplayer play movie.mkv --from 10:00 --to 12:00 --speed 4
  vplayer play movie.srt --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().
		String("from", "0", "Start position")
	playCmd.Flags().
		String("to", "", "End position (default: end of the last caption)")
	playCmd.Flags().
		Float64("speed", 1, "Playback speed multiplier")
	playCmd.Flags().
		Float64("tick-rate", 20, "Position updates per second")
	playCmd.Flags().
		Bool("watch", false, "Reload captions when the caption file changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := args[0]
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	watch, _ := cmd.Flags().GetBool("watch")

	speed := cfg.Playback.Speed
	if cmd.Flags().Changed("speed") {
		speed, _ = cmd.Flags().GetFloat64("speed")
	}
	tickRate := cfg.Playback.TickRate
	if cmd.Flags().Changed("tick-rate") {
		tickRate, _ = cmd.Flags().GetFloat64("tick-rate")
	}

	opts := player.ClockOptions{Speed: speed, TickRate: tickRate}
	var err error
	if opts.From, err = parsePosition(fromStr); err != nil {
		return err
	}
	if toStr != "" {
		if opts.To, err = parsePosition(toStr); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}

	out := cmd.OutOrStdout()
	session := newSession(func(u player.Update) {
		printUpdate(out, u)
	})

	var loaded bool
	if subtitle.IsSubtitleFile(path) {
		loaded = session.LoadFile(path)
	} else {
		warnIfNotMedia(path)
		loaded = session.Load(path)
		if opts.To == 0 {
			opts.To = mediaDuration(cmd.Context(), path)
		}
	}
	if !loaded {
		fmt.Fprintln(out, "no subtitles")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		watcher, err := player.NewWatcher(session, logger.SugaredLogger)
		if err != nil {
			return err
		}
		defer watcher.Close()
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Warnw("Watcher stopped", "error", err)
			}
		}()
	}

	clock, err := player.NewClock(session, opts)
	if err != nil {
		return err
	}
	end, err := clock.End()
	if err != nil {
		if errors.Is(err, player.ErrNoEnd) {
			return fmt.Errorf("nothing to play: %w (pass --to)", err)
		}
		return err
	}

	logger.Infow("Starting playback",
		"media", path,
		"subtitles", session.SourcePath(),
		"from", subtitle.FormatTimestamp(opts.From),
		"to", subtitle.FormatTimestamp(end),
		"speed", speed,
	)

	if err := clock.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Infow("Playback interrupted", "position", subtitle.FormatTimestamp(session.Position()))
			return nil
		}
		return err
	}
	return nil
}

func printUpdate(w io.Writer, u player.Update) {
	fmt.Fprintf(w, "[%s]", subtitle.FormatTimestamp(u.Position))
	if len(u.Entries) == 0 {
		fmt.Fprintln(w, " (clear)")
		return
	}
	fmt.Fprintln(w)
	printEntries(w, "  ", subtitle.Chronological(u.Entries))
}

// playing time of the media file, zero when ffprobe cannot tell
func mediaDuration(ctx context.Context, path string) time.Duration {
	paths, err := ffmpeg.Lookup(ffmpeg.BinaryPaths{
		FFmpeg:  cfg.FFmpeg.FFmpegPath,
		FFprobe: cfg.FFmpeg.FFprobePath,
	})
	if err != nil {
		logger.Debugw("Cannot probe media duration", "error", err)
		return 0
	}

	d, err := video.NewProcessor(paths).Duration(ctx, path)
	if err != nil {
		logger.Debugw("Cannot probe media duration", "media", path, "error", err)
		return 0
	}
	return d
}
