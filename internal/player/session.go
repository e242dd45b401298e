package player

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Raflos10/video-player/internal/subtitle"
)

// Options configures a Session.
type Options struct {
	Loader *subtitle.Loader
	Parse  subtitle.ParseOptions
	// Enabled shows captions; a disabled session reports empty sets
	Enabled bool
	// Delay shifts captions later (positive) or earlier (negative)
	Delay time.Duration
	// OnChange receives every change of the active set. It runs with the
	// session locked and must not call back into the session.
	OnChange func(Update)
	Logger   *zap.SugaredLogger
}

func DefaultOptions() Options {
	return Options{
		Parse:   subtitle.DefaultParseOptions(),
		Enabled: true,
	}
}

// Session holds the caption timeline of the currently loaded media item. The
// timeline is swapped atomically on load, so lookups never block on a reload.
type Session struct {
	opts     Options
	loader   *subtitle.Loader
	logger   *zap.SugaredLogger
	timeline atomic.Pointer[subtitle.Timeline]

	mu          sync.Mutex
	tracker     *Tracker
	generation  uint64
	mediaPath   string
	direct      bool // mediaPath is the caption file itself
	sourcePath  string
	position    time.Duration
	hasPosition bool
}

func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	loader := opts.Loader
	if loader == nil {
		loaderOpts := subtitle.DefaultLoaderOptions()
		loaderOpts.Logger = logger
		loader = subtitle.NewLoader(loaderOpts)
	}

	tracker := NewTracker()
	tracker.SetEnabled(opts.Enabled)

	return &Session{
		opts:    opts,
		loader:  loader,
		logger:  logger,
		tracker: tracker,
	}
}

// Load finds and parses the captions of mediaPath and replaces the current
// timeline. It reports whether a caption file was found; without one the
// session has no timeline. A load that is overtaken by a newer one is dropped.
func (s *Session) Load(mediaPath string) bool {
	gen := s.begin()
	src, ok := s.loader.Load(mediaPath)
	if !ok {
		s.logger.Debugw("Playing without subtitles", "media", mediaPath)
	}
	return s.install(gen, mediaPath, false, src, ok)
}

// LoadFile uses the caption file at path itself instead of searching for one.
func (s *Session) LoadFile(path string) bool {
	gen := s.begin()
	src, ok := s.loader.ReadFile(path)
	return s.install(gen, path, true, src, ok)
}

// LoadContent installs captions from text that was read elsewhere.
func (s *Session) LoadContent(name, content string) *subtitle.Subtitle {
	gen := s.begin()
	sub := subtitle.FromContent(name, content, s.opts.Parse)
	s.replace(gen, "", false, name, subtitle.NewTimeline(sub.Entries))
	return sub
}

// Reload repeats the last Load or LoadFile.
func (s *Session) Reload() bool {
	s.mu.Lock()
	mediaPath, direct := s.mediaPath, s.direct
	s.mu.Unlock()

	if mediaPath == "" {
		return false
	}
	s.logger.Debugw("Reloading subtitles", "media", mediaPath)
	if direct {
		return s.LoadFile(mediaPath)
	}
	return s.Load(mediaPath)
}

// Affects reports whether a change to the file at path can change the
// captions of the current media item.
func (s *Session) Affects(path string) bool {
	s.mu.Lock()
	mediaPath, direct := s.mediaPath, s.direct
	s.mu.Unlock()

	if mediaPath == "" {
		return false
	}
	if direct {
		return filepath.Clean(path) == filepath.Clean(mediaPath)
	}
	return s.loader.IsCandidate(mediaPath, path)
}

// WatchDirs lists the directories that may hold the captions of the current
// media item.
func (s *Session) WatchDirs() []string {
	s.mu.Lock()
	mediaPath, direct := s.mediaPath, s.direct
	s.mu.Unlock()

	switch {
	case mediaPath == "":
		return nil
	case direct:
		return []string{filepath.Dir(mediaPath)}
	default:
		return s.loader.SearchPaths(mediaPath)
	}
}

func (s *Session) install(gen uint64, mediaPath string, direct bool, src subtitle.Source, ok bool) bool {
	var tl *subtitle.Timeline
	if ok {
		sub := subtitle.FromContent(src.Path, src.Content, s.opts.Parse)
		tl = subtitle.NewTimeline(sub.Entries)
		s.logger.Infow("Loaded subtitles",
			"path", src.Path,
			"format", sub.Format,
			"charset", src.Charset,
			"entries", tl.Len(),
		)
	}

	s.replace(gen, mediaPath, direct, src.Path, tl)
	return ok
}

func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *Session) replace(gen uint64, mediaPath string, direct bool, sourcePath string, tl *subtitle.Timeline) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debugw("Discarding superseded subtitle load", "media", mediaPath)
		return
	}

	s.timeline.Store(tl)
	s.mediaPath = mediaPath
	s.direct = direct
	s.sourcePath = sourcePath
	s.tracker.Reset()

	if s.hasPosition {
		s.observe(s.position)
	}
}

// Timeline returns the current timeline, nil when there are no subtitles.
func (s *Session) Timeline() *subtitle.Timeline {
	return s.timeline.Load()
}

// ActiveAt looks up pos without touching the change tracking.
func (s *Session) ActiveAt(pos time.Duration) []subtitle.Entry {
	if !s.Enabled() {
		return nil
	}
	return s.Timeline().ActiveAt(pos - s.opts.Delay)
}

// Update moves the playback position and reports whether the active set changed.
func (s *Session) Update(pos time.Duration) (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.position = pos
	s.hasPosition = true
	return s.observe(pos)
}

// SetEnabled toggles captions and reports the resulting change, if any.
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.SetEnabled(enabled)
	if s.hasPosition {
		s.observe(s.position)
	}
}

func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Enabled()
}

// caller must hold s.mu
func (s *Session) observe(pos time.Duration) (Update, bool) {
	update, changed := s.tracker.Observe(s.timeline.Load(), pos-s.opts.Delay)
	update.Position = pos
	if changed && s.opts.OnChange != nil {
		s.opts.OnChange(update)
	}
	return update, changed
}

// Position is the last position passed to Update.
func (s *Session) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// MediaPath is the path passed to the last Load or LoadFile.
func (s *Session) MediaPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mediaPath
}

// SourcePath is the caption file behind the current timeline, empty when none.
func (s *Session) SourcePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourcePath
}
