package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpenSRTFile(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	sub, err := Open(srtPath, DefaultParseOptions())
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}

	if sub.Format != FormatSRT {
		t.Errorf("expected format SRT, got %s", sub.Format)
	}
	if sub.Path != srtPath {
		t.Errorf("expected path %s, got %s", srtPath, sub.Path)
	}
	if len(sub.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sub.Entries))
	}

	if sub.Entries[0].StartTime != 1*time.Second {
		t.Errorf(
			"entry 0: expected start 1s, got %v",
			sub.Entries[0].StartTime,
		)
	}
	if sub.Entries[0].EndTime != 4*time.Second {
		t.Errorf("entry 0: expected end 4s, got %v", sub.Entries[0].EndTime)
	}
	if sub.Entries[0].Text != "Hello, world!" {
		t.Errorf(
			"entry 0: expected 'Hello, world!', got %q",
			sub.Entries[0].Text,
		)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if sub.Entries[1].Text != expectedText {
		t.Errorf(
			"entry 1: expected %q, got %q",
			expectedText,
			sub.Entries[1].Text,
		)
	}
}

func TestOpenVTTFile(t *testing.T) {
	content := `WEBVTT

1
00:00:01.000 --> 00:00:04.000
Hello, world!

2
00:00:05.500 --> 00:00:08.200
This is a test.
With multiple lines.

00:00:10.000 --> 00:00:12.500
No cue identifier.
`
	tmpDir := t.TempDir()
	vttPath := filepath.Join(tmpDir, "test.vtt")
	if err := os.WriteFile(vttPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	sub, err := Open(vttPath, DefaultParseOptions())
	if err != nil {
		t.Fatalf("failed to open VTT file: %v", err)
	}

	if sub.Format != FormatVTT {
		t.Errorf("expected format VTT, got %s", sub.Format)
	}
	if len(sub.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sub.Entries))
	}

	if sub.Entries[0].StartTime != 1*time.Second {
		t.Errorf(
			"entry 0: expected start 1s, got %v",
			sub.Entries[0].StartTime,
		)
	}
	if sub.Entries[2].Text != "No cue identifier." {
		t.Errorf(
			"entry 2: expected 'No cue identifier.', got %q",
			sub.Entries[2].Text,
		)
	}
	for i, e := range sub.Entries {
		if e.Index != i+1 {
			t.Errorf("entry %d: expected index %d, got %d", i, i+1, e.Index)
		}
	}
}

func TestOpenSniffsContentNotExtension(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "mislabeled.srt")
	content := "WEBVTT\n\n00:01.000 --> 00:02.000\nactually vtt\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	sub, err := Open(path, DefaultParseOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if sub.Format != FormatVTT {
		t.Errorf("expected format VTT, got %s", sub.Format)
	}
	if len(sub.Entries) != 1 || sub.Entries[0].Text != "actually vtt" {
		t.Errorf("unexpected entries: %+v", sub.Entries)
	}
}

func TestOpenErrors(t *testing.T) {
	tmpDir := t.TempDir()
	latin1 := filepath.Join(tmpDir, "latin1.srt")
	if err := os.WriteFile(latin1, []byte("1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(tmpDir, "missing.srt"), "failed to read"},
		{"not utf-8", latin1, "not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.path, DefaultParseOptions())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got: %v", tt.want, err)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"SRT", FormatSRT, false},
		{".vtt", FormatVTT, false},
		{"webvtt", FormatVTT, false},
		{"ass", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsSubtitleFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.srt", true},
		{"movie.VTT", true},
		{"movie.ass", false},
		{"movie.mkv", false},
		{"srt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsSubtitleFile(tt.path); got != tt.want {
				t.Errorf("IsSubtitleFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(2.5); got != 2500*time.Millisecond {
		t.Errorf("Seconds(2.5) = %v", got)
	}
	if got := Seconds(1.0004); got != 1000*time.Millisecond {
		t.Errorf("Seconds(1.0004) = %v", got)
	}
	if got := Millis(1500); got != 1500*time.Millisecond {
		t.Errorf("Millis(1500) = %v", got)
	}
}
