package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raflos10/video-player/internal/subtitle"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [video_or_caption_file]",
	Short: "Parse captions and print a summary",
	Long: `Parse a caption file, or the caption file found for a video, and print its
format, number of entries and the time range they cover.

Examples:
  vplayer inspect movie.mkv
  vplayer inspect movie.srt --entries`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		Bool("entries", false, "Print every entry in start time order")
}

func runInspect(cmd *cobra.Command, args []string) error {
	showEntries, _ := cmd.Flags().GetBool("entries")
	out := cmd.OutOrStdout()

	sub, err := loadSubtitle(args[0])
	if err != nil {
		return err
	}
	tl := subtitle.NewTimeline(sub.Entries)

	fmt.Fprintf(out, "File:    %s\n", sub.Path)
	fmt.Fprintf(out, "Format:  %s\n", sub.Format)
	fmt.Fprintf(out, "Entries: %d\n", tl.Len())
	if start, end, ok := tl.Span(); ok {
		fmt.Fprintf(out, "Span:    %s --> %s\n",
			subtitle.FormatTimestamp(start),
			subtitle.FormatTimestamp(end),
		)
	}

	if showEntries {
		printEntries(out, "", tl.Entries())
	}
	return nil
}
