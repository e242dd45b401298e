package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/Raflos10/video-player/internal/ffmpeg"
	"github.com/Raflos10/video-player/internal/subtitle"
)

// ErrNoSubtitleStreams is returned when a container carries no subtitle track.
var ErrNoSubtitleStreams = errors.New("no subtitle streams")

// subtitle track embedded in a media container
type SubtitleStream struct {
	Index       int // position among subtitle streams, as used by -map 0:s:N
	StreamIndex int // absolute stream index in the container
	Codec       string
	Language    string
	Title       string
}

// Name is the title, else the language, else the 1-based track number.
func (s SubtitleStream) Name() string {
	switch {
	case s.Title != "":
		return s.Title
	case s.Language != "":
		return s.Language
	default:
		return strconv.Itoa(s.Index + 1)
	}
}

// defines interface for embedded subtitle operations
type Processor interface {
	// lists subtitle tracks of a media file
	SubtitleStreams(ctx context.Context, videoPath string) ([]SubtitleStream, error)

	// probes the playing time of a media file
	Duration(ctx context.Context, videoPath string) (time.Duration, error)

	// writes one subtitle track to a caption file
	ExtractSubtitle(
		ctx context.Context,
		videoPath string,
		stream int,
		outputPath string,
	) error
}

// default implementation using ffprobe and ffmpeg
type DefaultProcessor struct {
	paths ffmpegbin.BinaryPaths
}

func NewProcessor(paths ffmpegbin.BinaryPaths) *DefaultProcessor {
	return &DefaultProcessor{paths: paths}
}

// JSON output from ffprobe -show_streams / -show_format
type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type ffprobeStream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Tags      any    `json:"tags,omitempty"`
}

type streamTags struct {
	Title    string `mapstructure:"title"`
	Language string `mapstructure:"language"`
}

// probes the playing time of a media file
func (p *DefaultProcessor) Duration(ctx context.Context, videoPath string) (time.Duration, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return 0, fmt.Errorf("video file not found: %s", videoPath)
	}

	cmd := exec.CommandContext(ctx, p.paths.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseDuration(out.Bytes())
}

func parseDuration(data []byte) (time.Duration, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return subtitle.Seconds(seconds), nil
}

// lists subtitle tracks of a media file
func (p *DefaultProcessor) SubtitleStreams(
	ctx context.Context,
	videoPath string,
) ([]SubtitleStream, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	cmd := exec.CommandContext(ctx, p.paths.FFprobe,
		"-v", "error",
		"-select_streams", "s",
		"-show_streams",
		"-of", "json",
		videoPath,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	return parseSubtitleStreams(out.Bytes())
}

func parseSubtitleStreams(data []byte) ([]SubtitleStream, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var streams []SubtitleStream
	for _, s := range probe.Streams {
		if s.CodecType != "subtitle" {
			continue
		}

		var tags streamTags
		if err := mapstructure.WeakDecode(s.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of stream %d: %w", s.Index, err)
		}

		streams = append(streams, SubtitleStream{
			Index:       len(streams),
			StreamIndex: s.Index,
			Codec:       s.CodecName,
			Language:    tags.Language,
			Title:       tags.Title,
		})
	}

	if len(streams) == 0 {
		return nil, ErrNoSubtitleStreams
	}
	return streams, nil
}

// writes one subtitle track to a caption file; the output extension picks the format
func (p *DefaultProcessor) ExtractSubtitle(
	ctx context.Context,
	videoPath string,
	stream int,
	outputPath string,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if !subtitle.IsSubtitleFile(outputPath) {
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(outputPath))
	}
	if stream < 0 {
		return fmt.Errorf("stream number must not be negative, got %d", stream)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	kwargs := ffmpeg.KwArgs{
		"map": "0:s:" + strconv.Itoa(stream),
		"y":   "", // Overwrite output
	}

	err := ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(p.paths.FFmpeg).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

// SidecarPath is where an extracted track is written so the subtitle loader
// picks it up next to the media file.
func SidecarPath(videoPath string, format subtitle.Format) string {
	ext := filepath.Ext(videoPath)
	return videoPath[:len(videoPath)-len(ext)] + subtitle.GetExtensionForFormat(format)
}
