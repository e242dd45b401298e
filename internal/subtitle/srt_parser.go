package subtitle

import (
	"strconv"
	"strings"
)

// SubRip blocks are: sequence number, timing line, one or more text lines.
// Blocks that do not follow that shape are dropped.
func parseSRT(content string, stripText bool) []Entry {
	entries := make([]Entry, 0)

	for _, lines := range splitBlocks(content) {
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}

		startTime, endTime, ok := parseTimestampLine(lines[1])
		if !ok {
			continue
		}

		entries = append(entries, Entry{
			Index:     index,
			StartTime: startTime,
			EndTime:   endTime,
			Text:      joinText(lines[2:], stripText),
		})
	}

	return entries
}
