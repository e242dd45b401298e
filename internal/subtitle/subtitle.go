package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// time the entry stays on screen, negative when the file has end before start
func (e Entry) Duration() time.Duration {
	return e.EndTime - e.StartTime
}

// reports whether the entry is visible at position t (both bounds inclusive)
func (e Entry) DisplayedAt(t time.Duration) bool {
	return e.StartTime <= t && t <= e.EndTime
}

// represents complete subtitle track
type Subtitle struct {
	Path    string
	Format  Format
	Entries []Entry
}

// represents supported subtitle formats
type Format string

const (
	FormatAuto Format = "auto"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// ParseFormat maps a user supplied name ("srt", ".vtt", "auto", "") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "auto":
		return FormatAuto, nil
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format: %s", s)
	}
}

// subtitle format based on file extension, auto when unknown
func GetFormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	default:
		return FormatAuto
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	default:
		return ".srt"
	}
}

// Millis converts an integer millisecond playback position.
func Millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Seconds converts a floating point playback position, rounded to the millisecond.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond)
}
