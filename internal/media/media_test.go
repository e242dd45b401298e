package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	dir := t.TempDir()

	// Matroska EBML header, stored under a misleading extension
	mkv := filepath.Join(dir, "episode.bin")
	if err := os.WriteFile(mkv, []byte{
		0x1A, 0x45, 0xDF, 0xA3, 0x93, 0x42, 0x82, 0x88,
		'm', 'a', 't', 'r', 'o', 's', 'k', 'a',
	}, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	// text content, so only the extension can classify it
	mp4 := filepath.Join(dir, "movie.mp4")
	mp3 := filepath.Join(dir, "song.MP3")
	txt := filepath.Join(dir, "notes.txt")
	for _, p := range []string{mp4, mp3, txt} {
		if err := os.WriteFile(p, []byte("plain text"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
	}

	tests := []struct {
		path string
		want Kind
	}{
		{mkv, KindVideo},
		{mp4, KindVideo},
		{mp3, KindAudio},
		{txt, KindUnknown},
		{filepath.Join(dir, "missing.mkv"), KindVideo},
		{filepath.Join(dir, "missing.srt"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			if got := Detect(tt.path); got != tt.want {
				t.Errorf("Detect(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsMediaFile(t *testing.T) {
	if !IsMediaFile("clip.webm") {
		t.Error("expected .webm to be a media file")
	}
	if IsMediaFile("clip.srt") {
		t.Error("expected .srt not to be a media file")
	}
	if !IsVideoFile("clip.mkv") {
		t.Error("expected .mkv to be a video file")
	}
}
