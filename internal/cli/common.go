package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Raflos10/video-player/internal/media"
	"github.com/Raflos10/video-player/internal/player"
	"github.com/Raflos10/video-player/internal/subtitle"
)

var errNoSubtitles = errors.New("no subtitles found")

func newLoader() *subtitle.Loader {
	opts := cfg.LoaderOptions()
	opts.Logger = logger.SugaredLogger
	return subtitle.NewLoader(opts)
}

func newSession(onChange func(player.Update)) *player.Session {
	return player.NewSession(player.Options{
		Loader:   newLoader(),
		Parse:    cfg.ParseOptions(),
		Enabled:  cfg.Subtitles.Enabled,
		Delay:    cfg.Subtitles.Delay,
		OnChange: onChange,
		Logger:   logger.SugaredLogger,
	})
}

// loadSubtitle opens path directly when it is a caption file, otherwise it
// treats path as media and looks up its captions.
func loadSubtitle(path string) (*subtitle.Subtitle, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	if subtitle.IsSubtitleFile(path) {
		if !cfg.Subtitles.Transcode {
			return subtitle.Open(path, cfg.ParseOptions())
		}
		src, ok := newLoader().ReadFile(path)
		if !ok {
			return nil, fmt.Errorf("failed to read subtitle file: %s", path)
		}
		return subtitle.FromContent(src.Path, src.Content, cfg.ParseOptions()), nil
	}

	warnIfNotMedia(path)

	src, ok := newLoader().Load(path)
	if !ok {
		return nil, errNoSubtitles
	}
	return subtitle.FromContent(src.Path, src.Content, cfg.ParseOptions()), nil
}

func warnIfNotMedia(path string) {
	if kind := media.Detect(path); kind == media.KindUnknown {
		logger.Warnw("File does not look like audio or video, looking for captions anyway",
			"path", path,
		)
	}
}

// one caption per line, multi-line text joined with " / "
func printEntries(w io.Writer, indent string, entries []subtitle.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s#%d %s --> %s  %s\n",
			indent,
			e.Index,
			subtitle.FormatTimestamp(e.StartTime),
			subtitle.FormatTimestamp(e.EndTime),
			strings.ReplaceAll(e.Text, "\n", " / "),
		)
	}
}
