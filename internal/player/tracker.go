// Package player drives subtitle lookups from a playback position: it owns the
// timeline of the loaded media, reports caption changes and reloads captions
// when their files change on disk.
package player

import (
	"slices"
	"time"

	"github.com/Raflos10/video-player/internal/subtitle"
)

// Update is what a renderer needs after a position change.
type Update struct {
	Position time.Duration
	// active entries, latest start first; empty means show nothing
	Entries []subtitle.Entry
}

// Tracker remembers the last reported active set so that only changes are
// reported. It is not safe for concurrent use.
type Tracker struct {
	last     []subtitle.Entry
	reported bool
	enabled  bool
}

func NewTracker() *Tracker {
	return &Tracker{enabled: true}
}

// Observe looks up pos in tl and reports whether the active set differs from
// the one reported last.
func (t *Tracker) Observe(tl *subtitle.Timeline, pos time.Duration) (Update, bool) {
	var active []subtitle.Entry
	if t.enabled {
		active = tl.ActiveAt(pos)
	}

	if t.reported && slices.Equal(active, t.last) {
		return Update{Position: pos, Entries: active}, false
	}

	t.last = active
	t.reported = true
	return Update{Position: pos, Entries: active}, true
}

// SetEnabled toggles captions. A disabled tracker reports an empty set.
func (t *Tracker) SetEnabled(enabled bool) {
	t.enabled = enabled
}

func (t *Tracker) Enabled() bool {
	return t.enabled
}

// Reset forgets the last report so the next Observe always reports.
func (t *Tracker) Reset() {
	t.last = nil
	t.reported = false
}
