package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// interface for writing subtitles
type Writer interface {
	Write(w io.Writer, entries []Entry) error
}

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes entries as SubRip, renumbered from 1
func (*SRTWriter) Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, entry := range entries {
		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1,
			formatTimestamp(entry.StartTime, ','),
			formatTimestamp(entry.EndTime, ','),
			entry.Text)
	}
	return bw.Flush()
}

// writes entries as WebVTT with numeric cue identifiers
func (*VTTWriter) Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("WEBVTT\n\n")
	for i, entry := range entries {
		// timestamps: 00:00:00.000 --> 00:00:00.000
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1,
			formatTimestamp(entry.StartTime, '.'),
			formatTimestamp(entry.EndTime, '.'),
			entry.Text)
	}
	return bw.Flush()
}

// WriteFile renders entries in the given format to path, creating parent directories.
func WriteFile(path string, format Format, entries []Entry) error {
	writer, err := NewWriter(format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create subtitle file: %w", err)
	}

	if err := writer.Write(file, entries); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write subtitle file: %w", err)
	}

	return file.Close()
}

// negative offsets are clamped to zero
func formatTimestamp(d time.Duration, sep byte) string {
	if d < 0 {
		d = 0
	}
	total := d.Milliseconds()
	millis := total % 1000
	total /= 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, seconds, sep, millis)
}

// FormatTimestamp renders a position the way SubRip files spell it.
func FormatTimestamp(d time.Duration) string {
	return formatTimestamp(d, ',')
}
