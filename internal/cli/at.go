package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raflos10/video-player/internal/subtitle"
)

var atCmd = &cobra.Command{
	Use:   "at [video_or_caption_file] [position...]",
	Short: "Print the captions on screen at playback positions",
	Long: `Print every caption displayed at each position. Captions are listed latest
start first; use --chronological for the opposite order.

Positions may be milliseconds (90500), Go durations (1m30.5s) or clock
positions (01:30.500, 1:02:03,250).

Examples:
  vplayer at movie.mkv 00:42.000
  vplayer at movie.srt 1m 1m30s 2m --chronological`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)

	atCmd.Flags().
		Bool("chronological", false, "List overlapping captions earliest start first")
}

func runAt(cmd *cobra.Command, args []string) error {
	chronological, _ := cmd.Flags().GetBool("chronological")
	out := cmd.OutOrStdout()

	positions := make([]time.Duration, 0, len(args)-1)
	for _, arg := range args[1:] {
		pos, err := parsePosition(arg)
		if err != nil {
			return err
		}
		positions = append(positions, pos)
	}

	sub, err := loadSubtitle(args[0])
	if err != nil {
		return err
	}
	tl := subtitle.NewTimeline(sub.Entries)

	for _, pos := range positions {
		var active []subtitle.Entry
		if cfg.Subtitles.Enabled {
			active = tl.ActiveAt(pos - cfg.Subtitles.Delay)
		}
		if chronological {
			active = subtitle.Chronological(active)
		}

		fmt.Fprintf(out, "[%s]\n", subtitle.FormatTimestamp(pos))
		if len(active) == 0 {
			fmt.Fprintln(out, "  (nothing)")
			continue
		}
		printEntries(out, "  ", active)
	}
	return nil
}
