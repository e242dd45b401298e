package subtitle

import (
	"strings"
)

// block kinds that carry no cue
var vttMetadataBlocks = []string{"NOTE", "STYLE", "REGION"}

// WebVTT cue identifiers are optional and free-form, so cues are numbered in
// file order starting at 1 instead.
func parseVTT(content string, stripText bool) []Entry {
	entries := make([]Entry, 0)
	entryIndex := 1

	for _, lines := range splitBlocks(stripVTTHeader(content)) {
		if len(lines) < 2 || isVTTMetadataBlock(lines[0]) {
			continue
		}

		timestampLine := 0
		if !strings.Contains(lines[0], "-->") {
			timestampLine = 1
		}

		startTime, endTime, ok := parseTimestampLine(lines[timestampLine])
		if !ok {
			continue
		}

		entries = append(entries, Entry{
			Index:     entryIndex,
			StartTime: startTime,
			EndTime:   endTime,
			Text:      joinText(lines[timestampLine+1:], stripText),
		})
		entryIndex++
	}

	return entries
}

// removes the WEBVTT signature line and the blank line after it
func stripVTTHeader(content string) string {
	content = strings.TrimLeft(content, " \t\n")
	if !strings.HasPrefix(content, "WEBVTT") {
		return content
	}

	nl := strings.IndexByte(content, '\n')
	if nl < 0 {
		return ""
	}
	content = content[nl+1:]

	return strings.TrimPrefix(content, "\n")
}

func isVTTMetadataBlock(first string) bool {
	first = strings.TrimSpace(first)
	for _, kind := range vttMetadataBlocks {
		if first == kind ||
			strings.HasPrefix(first, kind+" ") ||
			strings.HasPrefix(first, kind+"\t") {
			return true
		}
	}
	return false
}
