package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Raflos10/video-player/internal/charset"
)

// caption extensions in preference order
var SubtitleExtensions = []string{".srt", ".vtt"}

// directories searched relative to the media file, in order
var SearchDirs = []string{".", "subs"}

// settings for locating and reading caption files
type LoaderOptions struct {
	Extensions []string
	SearchDirs []string
	// Transcode decodes non UTF-8 files from their detected charset instead of
	// rejecting them.
	Transcode bool
	Logger    *zap.SugaredLogger
}

func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		Extensions: SubtitleExtensions,
		SearchDirs: SearchDirs,
	}
}

// caption text read for a media file
type Source struct {
	Path    string
	Content string
	Charset string
}

// Loader finds the caption file that belongs to a media file. Every failure
// (nothing found, unreadable, undecodable) means "no subtitles" and is only
// reported at debug level.
type Loader struct {
	opts   LoaderOptions
	logger *zap.SugaredLogger
}

func NewLoader(opts LoaderOptions) *Loader {
	if len(opts.Extensions) == 0 {
		opts.Extensions = SubtitleExtensions
	}
	if len(opts.SearchDirs) == 0 {
		opts.SearchDirs = SearchDirs
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{opts: opts, logger: logger}
}

// FindSubtitleFile looks for <stem>.srt or <stem>.vtt beside mediaPath, then in subs/.
func FindSubtitleFile(mediaPath string) (string, bool) {
	return NewLoader(DefaultLoaderOptions()).Find(mediaPath)
}

// LoadSubtitles returns the UTF-8 caption text for mediaPath, if there is any.
func LoadSubtitles(mediaPath string) (string, bool) {
	src, ok := NewLoader(DefaultLoaderOptions()).Load(mediaPath)
	return src.Content, ok
}

// Candidates lists every existing caption file for mediaPath in preference order.
func (l *Loader) Candidates(mediaPath string) []string {
	var found []string
	for _, path := range l.candidatePaths(mediaPath) {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		found = append(found, path)
	}
	return found
}

// Find returns the preferred caption file: the first search directory holding
// any match wins, and inside it the first extension in preference order.
func (l *Loader) Find(mediaPath string) (string, bool) {
	candidates := l.Candidates(mediaPath)
	if len(candidates) == 0 {
		l.logger.Debugw("No subtitle file found", "media", mediaPath)
		return "", false
	}
	return candidates[0], true
}

// Load finds and reads the caption file for mediaPath.
func (l *Loader) Load(mediaPath string) (Source, bool) {
	path, ok := l.Find(mediaPath)
	if !ok {
		return Source{}, false
	}
	return l.ReadFile(path)
}

// ReadFile reads a caption file and makes sure the content is UTF-8 text.
func (l *Loader) ReadFile(path string) (Source, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Debugw("Failed to read subtitle file", "path", path, "error", err)
		return Source{}, false
	}

	name := charset.UTF8
	if !utf8.Valid(data) {
		if !l.opts.Transcode {
			guess, _ := charset.Detect(data)
			l.logger.Debugw("Subtitle file is not valid UTF-8",
				"path", path,
				"detected_charset", guess,
			)
			return Source{}, false
		}

		data, name, err = charset.ToUTF8(data)
		if err != nil {
			l.logger.Debugw("Failed to transcode subtitle file",
				"path", path,
				"charset", name,
				"error", err,
			)
			return Source{}, false
		}
		l.logger.Debugw("Transcoded subtitle file", "path", path, "charset", name)
	}

	return Source{
		Path:    path,
		Content: strings.TrimPrefix(string(data), "\ufeff"),
		Charset: name,
	}, true
}

// SearchPaths returns the directories that may hold captions for mediaPath.
func (l *Loader) SearchPaths(mediaPath string) []string {
	base := filepath.Dir(mediaPath)
	dirs := make([]string, 0, len(l.opts.SearchDirs))
	for _, dir := range l.opts.SearchDirs {
		dirs = append(dirs, filepath.Join(base, dir))
	}
	return dirs
}

func (l *Loader) candidatePaths(mediaPath string) []string {
	stem := mediaStem(mediaPath)
	var paths []string
	for _, dir := range l.SearchPaths(mediaPath) {
		for _, ext := range l.opts.Extensions {
			paths = append(paths, filepath.Join(dir, stem+ext))
		}
	}
	return paths
}

// IsCandidate reports whether path is one of the files Find would consider.
func (l *Loader) IsCandidate(mediaPath, path string) bool {
	path = filepath.Clean(path)
	for _, candidate := range l.candidatePaths(mediaPath) {
		if candidate == path {
			return true
		}
	}
	return false
}

func mediaStem(mediaPath string) string {
	base := filepath.Base(mediaPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}
