package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// filetype needs at most this many header bytes
const headerSize = 261

// broad media category of a file
type Kind string

const (
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindUnknown Kind = "unknown"
)

var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".ts":   true,
	".3gp":  true,
}

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".wma":  true,
	".opus": true,
}

// Detect sniffs the file header and falls back to the extension when the
// content is unreadable or not recognised.
func Detect(path string) Kind {
	if head, err := readHeader(path); err == nil {
		switch {
		case filetype.IsVideo(head):
			return KindVideo
		case filetype.IsAudio(head):
			return KindAudio
		}
	}
	return kindFromExtension(path)
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return Detect(path) != KindUnknown
}

// checks if the file is a video
func IsVideoFile(path string) bool {
	return Detect(path) == KindVideo
}

func kindFromExtension(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExts[ext]:
		return KindVideo
	case audioExts[ext]:
		return KindAudio
	default:
		return KindUnknown
	}
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return head[:n], nil
}
