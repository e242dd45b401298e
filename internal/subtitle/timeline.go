package subtitle

import (
	"cmp"
	"slices"
	"sort"
	"time"
)

// Timeline is the sorted, read-only index of one subtitle track. It is built
// once per loaded media item and replaced, never modified, on reload, so a
// *Timeline can be shared between goroutines without locking. A nil *Timeline
// behaves as an empty one.
type Timeline struct {
	entries    []Entry
	startTimes []time.Duration
	// maxEnds[i] is the latest end among entries[0..i]
	maxEnds []time.Duration
}

// NewTimeline copies entries and orders them by start time. Entries sharing a
// start time keep their input order.
func NewTimeline(entries []Entry) *Timeline {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})

	startTimes := make([]time.Duration, len(sorted))
	maxEnds := make([]time.Duration, len(sorted))
	for i, e := range sorted {
		startTimes[i] = e.StartTime
		maxEnds[i] = e.EndTime
		if i > 0 && maxEnds[i-1] > e.EndTime {
			maxEnds[i] = maxEnds[i-1]
		}
	}

	return &Timeline{
		entries:    sorted,
		startTimes: startTimes,
		maxEnds:    maxEnds,
	}
}

// ActiveAt returns every entry displayed at t, latest start first. Entries with
// the same start come back in reverse input order. Use Chronological for the
// opposite order. The result is nil when nothing is displayed.
//
// The backward walk skips expired entries instead of stopping at them and ends
// only once no earlier entry can reach t, so a long cue that started before a
// shorter, already finished one is still reported.
func (tl *Timeline) ActiveAt(t time.Duration) []Entry {
	if tl.Empty() {
		return nil
	}

	// rightmost insertion point: last entry with start <= t
	i := sort.Search(len(tl.startTimes), func(k int) bool {
		return tl.startTimes[k] > t
	}) - 1

	var active []Entry
	for k := i; k >= 0 && tl.maxEnds[k] >= t; k-- {
		if tl.entries[k].EndTime >= t {
			active = append(active, tl.entries[k])
		}
	}

	return active
}

// number of entries in the timeline
func (tl *Timeline) Len() int {
	if tl == nil {
		return 0
	}
	return len(tl.entries)
}

func (tl *Timeline) Empty() bool {
	return tl.Len() == 0
}

// copy of all entries, sorted by start time
func (tl *Timeline) Entries() []Entry {
	if tl == nil {
		return nil
	}
	return slices.Clone(tl.entries)
}

// Span returns the earliest start and the latest end in the timeline.
func (tl *Timeline) Span() (time.Duration, time.Duration, bool) {
	if tl.Empty() {
		return 0, 0, false
	}
	return tl.startTimes[0], tl.maxEnds[len(tl.maxEnds)-1], true
}

// Chronological returns a reversed copy of an ActiveAt result (earliest start first).
func Chronological(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.Reverse(out)
	return out
}
