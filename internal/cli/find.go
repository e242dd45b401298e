package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [video_file]",
	Short: "Show which caption file belongs to a video",
	Long: `Look for <name>.srt or <name>.vtt next to the video, then in subs/.

The first directory holding a match wins; inside it .srt is preferred over .vtt.

Examples:
  vplayer find movie.mkv
  vplayer find movie.mkv --all`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().
		Bool("all", false, "List every existing candidate in preference order")
}

func runFind(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	all, _ := cmd.Flags().GetBool("all")
	out := cmd.OutOrStdout()

	warnIfNotMedia(mediaPath)
	loader := newLoader()

	if all {
		candidates := loader.Candidates(mediaPath)
		if len(candidates) == 0 {
			fmt.Fprintln(out, "no subtitles")
			return nil
		}
		for _, path := range candidates {
			fmt.Fprintln(out, path)
		}
		return nil
	}

	path, ok := loader.Find(mediaPath)
	if !ok {
		fmt.Fprintln(out, "no subtitles")
		return nil
	}
	fmt.Fprintln(out, path)
	return nil
}
