package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Raflos10/video-player/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [video_or_caption_file]",
	Short: "Rewrite captions as SubRip or WebVTT",
	Long: `Parse captions and write them back in the requested format. Entries are
renumbered from 1 in file order; blocks the parser could not read are dropped.

Examples:
  vplayer convert movie.srt -f vtt
  vplayer convert movie.mkv -f srt -o clean/movie.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "vtt", "Output caption format (srt, vtt)")
	convertCmd.Flags().
		StringP("output", "o", "", "Output file path (default: input name with the new extension)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil || format == subtitle.FormatAuto {
		return fmt.Errorf("unsupported format %q: use srt or vtt", formatStr)
	}

	sub, err := loadSubtitle(args[0])
	if err != nil {
		return err
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(sub.Path, filepath.Ext(sub.Path))
		outputPath = baseName + subtitle.GetExtensionForFormat(format)
	}
	if filepath.Clean(outputPath) == filepath.Clean(sub.Path) {
		return fmt.Errorf("output would overwrite %s: choose another path with -o", sub.Path)
	}

	logger.Infow("Converting subtitles",
		"input", sub.Path,
		"output", outputPath,
		"from", sub.Format,
		"to", format,
		"entries", len(sub.Entries),
	)

	if err := subtitle.WriteFile(outputPath, format, sub.Entries); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
	return nil
}
