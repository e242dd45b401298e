package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

const (
	EnvFFmpegPath  = "VPLAYER_FFMPEG_PATH"
	EnvFFprobePath = "VPLAYER_FFPROBE_PATH"
)

var ErrFFmpegNotFound = errors.New("ffmpeg binaries not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

// Lookup resolves the ffmpeg and ffprobe executables. Explicit paths win,
// then the VPLAYER_* environment variables, then $PATH.
func Lookup(configured BinaryPaths) (BinaryPaths, error) {
	ffmpegPath, err := resolve(configured.FFmpeg, EnvFFmpegPath, "ffmpeg")
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := resolve(configured.FFprobe, EnvFFprobePath, "ffprobe")
	if err != nil {
		return BinaryPaths{}, err
	}

	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func resolve(configured, envVar, name string) (string, error) {
	path := configured
	if path == "" {
		path = os.Getenv(envVar)
	}
	if path != "" {
		if !fileExists(path) {
			return "", fmt.Errorf("%w: %s does not exist", ErrFFmpegNotFound, path)
		}
		return path, nil
	}

	found, err := exec.LookPath(name + executableSuffix())
	if err != nil {
		return "", fmt.Errorf(
			"%w: install %s or set %s",
			ErrFFmpegNotFound,
			name,
			envVar,
		)
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
