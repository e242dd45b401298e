package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// how many leading characters are inspected for the WEBVTT marker
	detectWindow = 20
	// keeps hour*time.Hour inside the range of time.Duration
	maxHours = 2_000_000
)

// both sides accept "," or "." before the milliseconds and an optional hour field,
// anything after the end timestamp (cue settings) is ignored
var timestampRegex = regexp.MustCompile(
	`^(?:(\d{2,}):)?(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(?:(\d{2,}):)?(\d{2}):(\d{2})[,.](\d{3})`,
)

// ParseOptions controls how caption text is turned into entries.
type ParseOptions struct {
	// Format forces a parser; FormatAuto sniffs the content.
	Format Format
	// StripText trims every text line before the lines are joined.
	StripText bool
}

func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Format:    FormatAuto,
		StripText: true,
	}
}

// Parse converts caption text into entries in file order. Malformed blocks are
// skipped, so the result is empty (never nil) when nothing usable is found.
func Parse(content string, opts ParseOptions) []Entry {
	content = normalize(content)

	format := opts.Format
	if format == FormatAuto || format == "" {
		format = DetectFormat(content)
	}

	switch format {
	case FormatVTT:
		return parseVTT(content, opts.StripText)
	default:
		return parseSRT(content, opts.StripText)
	}
}

// DetectFormat reports FormatVTT when the WEBVTT marker appears near the start.
func DetectFormat(content string) Format {
	content = strings.TrimPrefix(content, "\ufeff")
	head := content
	n := 0
	for i := range content {
		if n == detectWindow {
			head = content[:i]
			break
		}
		n++
	}
	if strings.Contains(head, "WEBVTT") {
		return FormatVTT
	}
	return FormatSRT
}

func normalize(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// splits normalized content into blocks of lines separated by blank lines;
// each block is trimmed like a whole string would be, so the first line loses
// leading and the last line trailing whitespace
func splitBlocks(content string) [][]string {
	var blocks [][]string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		current[0] = strings.TrimLeft(current[0], " \t\f\v")
		last := len(current) - 1
		current[last] = strings.TrimRight(current[last], " \t\f\v")
		blocks = append(blocks, current)
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

func parseTimestampLine(line string) (time.Duration, time.Duration, bool) {
	matches := timestampRegex.FindStringSubmatch(strings.TrimSpace(line))
	if len(matches) != 9 {
		return 0, 0, false
	}

	start, err := parseTimestamp(matches[1], matches[2], matches[3], matches[4])
	if err != nil {
		return 0, 0, false
	}
	end, err := parseTimestamp(matches[5], matches[6], matches[7], matches[8])
	if err != nil {
		return 0, 0, false
	}

	return start, end, true
}

// converts the captured fields to an exact millisecond offset; an empty hour
// field (WebVTT short form) counts as zero
func parseTimestamp(
	hours, minutes, seconds, millis string,
) (time.Duration, error) {
	var h int64
	if hours != "" {
		v, err := strconv.ParseInt(hours, 10, 64)
		if err != nil {
			return 0, err
		}
		if v > maxHours {
			return 0, fmt.Errorf("hour field out of range: %d", v)
		}
		h = v
	}
	m, err := strconv.ParseInt(minutes, 10, 64)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return 0, err
	}

	return Millis((h*3600+m*60+s)*1000 + ms), nil
}

func joinText(lines []string, strip bool) string {
	if !strip {
		return strings.Join(lines, "\n")
	}
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimSpace(line)
	}
	return strings.Join(trimmed, "\n")
}
