package subtitle

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// Open reads and parses a caption file given directly by the user. Unlike the
// Loader it reports why a file could not be used.
func Open(path string, opts ParseOptions) (*Subtitle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("subtitle file is not valid UTF-8: %s", path)
	}

	return FromContent(path, string(data), opts), nil
}

// FromContent parses already loaded caption text, resolving the format that was used.
func FromContent(path, content string, opts ParseOptions) *Subtitle {
	format := opts.Format
	if format == FormatAuto || format == "" {
		format = DetectFormat(content)
		opts.Format = format
	}

	return &Subtitle{
		Path:    path,
		Format:  format,
		Entries: Parse(content, opts),
	}
}

// IsSubtitleFile reports whether path has a caption extension.
func IsSubtitleFile(path string) bool {
	return GetFormatFromExtension(path) != FormatAuto
}
