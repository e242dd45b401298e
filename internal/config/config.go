package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/Raflos10/video-player/internal/subtitle"
)

const (
	appDir   = "video-player"
	fileName = "config.yaml"
)

type Config struct {
	Subtitles SubtitleConfig `mapstructure:"subtitles"`
	Playback  PlaybackConfig `mapstructure:"playback"`
	FFmpeg    FFmpegConfig   `mapstructure:"ffmpeg"`
}

// subtitle discovery and parsing settings
type SubtitleConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	StripText  bool     `mapstructure:"strip_text"`
	Format     string   `mapstructure:"format"`
	Extensions []string `mapstructure:"extensions"`
	SearchDirs []string `mapstructure:"search_dirs"`
	Transcode  bool     `mapstructure:"transcode"`
	// shifts captions later (positive) or earlier (negative)
	Delay time.Duration `mapstructure:"delay"`
}

// simulated playback settings
type PlaybackConfig struct {
	TickRate float64 `mapstructure:"tick_rate"` // position updates per second
	Speed    float64 `mapstructure:"speed"`
}

// optional explicit binary locations
type FFmpegConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
}

func Default() *Config {
	return &Config{
		Subtitles: SubtitleConfig{
			Enabled:    true,
			StripText:  true,
			Format:     string(subtitle.FormatAuto),
			Extensions: append([]string(nil), subtitle.SubtitleExtensions...),
			SearchDirs: append([]string(nil), subtitle.SearchDirs...),
		},
		Playback: PlaybackConfig{
			TickRate: 20,
			Speed:    1,
		},
	}
}

// DefaultPath is <user config dir>/video-player/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the config file at path on top of the defaults. An empty path
// means the default location, where a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if raw == nil {
		return cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := subtitle.ParseFormat(c.Subtitles.Format); err != nil {
		return fmt.Errorf("subtitles.format: %w", err)
	}
	if len(c.Subtitles.Extensions) == 0 {
		return fmt.Errorf("subtitles.extensions must not be empty")
	}
	for _, ext := range c.Subtitles.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("subtitles.extensions: %q must start with a dot", ext)
		}
	}
	if len(c.Subtitles.SearchDirs) == 0 {
		return fmt.Errorf("subtitles.search_dirs must not be empty")
	}
	if c.Playback.TickRate <= 0 {
		return fmt.Errorf("playback.tick_rate must be positive, got %v", c.Playback.TickRate)
	}
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("playback.speed must be positive, got %v", c.Playback.Speed)
	}
	return nil
}

// ParseOptions converts the subtitle section into parser settings.
func (c *Config) ParseOptions() subtitle.ParseOptions {
	format, err := subtitle.ParseFormat(c.Subtitles.Format)
	if err != nil {
		format = subtitle.FormatAuto
	}
	return subtitle.ParseOptions{
		Format:    format,
		StripText: c.Subtitles.StripText,
	}
}

// LoaderOptions converts the subtitle section into loader settings.
func (c *Config) LoaderOptions() subtitle.LoaderOptions {
	return subtitle.LoaderOptions{
		Extensions: c.Subtitles.Extensions,
		SearchDirs: c.Subtitles.SearchDirs,
		Transcode:  c.Subtitles.Transcode,
	}
}
