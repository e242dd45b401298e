package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Raflos10/video-player/internal/ffmpeg"
	"github.com/Raflos10/video-player/internal/subtitle"
	"github.com/Raflos10/video-player/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "List or extract subtitle tracks embedded in a video",
	Long: `Without --stream, list the subtitle tracks embedded in a video container.
With --stream N, write track N next to the video so that it is picked up as
the video's caption file.

Requires ffmpeg and ffprobe, found through the config file,
VPLAYER_FFMPEG_PATH / VPLAYER_FFPROBE_PATH or PATH.

Examples:
  vplayer extract movie.mkv
  vplayer extract movie.mkv --stream 0
  vplayer extract movie.mkv --stream 1 -f vtt -o subs/movie.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", -1, "Subtitle track to extract (as numbered by the listing)")
	extractCmd.Flags().
		StringP("format", "f", "srt", "Output caption format (srt, vtt)")
	extractCmd.Flags().
		StringP("output", "o", "", "Output file path (default: beside the video)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	stream, _ := cmd.Flags().GetInt("stream")
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil || format == subtitle.FormatAuto {
		return fmt.Errorf("unsupported format %q: use srt or vtt", formatStr)
	}

	paths, err := ffmpeg.Lookup(ffmpeg.BinaryPaths{
		FFmpeg:  cfg.FFmpeg.FFmpegPath,
		FFprobe: cfg.FFmpeg.FFprobePath,
	})
	if err != nil {
		return err
	}
	logger.Debugw("Using ffmpeg binaries", "ffmpeg", paths.FFmpeg, "ffprobe", paths.FFprobe)

	processor := video.NewProcessor(paths)
	ctx := cmd.Context()

	streams, err := processor.SubtitleStreams(ctx, videoPath)
	if err != nil {
		return err
	}

	if stream < 0 {
		for _, s := range streams {
			fmt.Fprintf(out, "%d: %s (%s, stream #%d)\n", s.Index, s.Name(), s.Codec, s.StreamIndex)
		}
		return nil
	}
	if stream >= len(streams) {
		return fmt.Errorf("stream %d does not exist: %s has %d subtitle streams", stream, videoPath, len(streams))
	}

	if outputPath == "" {
		outputPath = video.SidecarPath(videoPath, format)
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"stream", streams[stream].Name(),
		"output", outputPath,
	)

	if err := processor.ExtractSubtitle(ctx, videoPath, stream, outputPath); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Subtitles extracted successfully: %s\n", absOutput)

	return nil
}
