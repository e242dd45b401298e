package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// [HH:]MM:SS with optional milliseconds after "." or ","
var clockRegex = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{1,2})(?:[.,](\d{1,3}))?$`)

// parsePosition accepts integer milliseconds ("90500"), Go durations
// ("1m30.5s") and clock positions ("01:30.500", "1:02:03,250").
func parsePosition(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty position")
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("position must not be negative: %s", s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	if m := clockRegex.FindStringSubmatch(s); m != nil {
		var hours int64
		if m[1] != "" {
			hours, _ = strconv.ParseInt(m[1], 10, 64)
		}
		minutes, _ := strconv.ParseInt(m[2], 10, 64)
		seconds, _ := strconv.ParseInt(m[3], 10, 64)
		if minutes > 59 || seconds > 59 {
			return 0, fmt.Errorf("invalid clock position: %s", s)
		}
		var millis int64
		if m[4] != "" {
			frac := m[4] + strings.Repeat("0", 3-len(m[4]))
			millis, _ = strconv.ParseInt(frac, 10, 64)
		}
		return time.Duration((hours*3600+minutes*60+seconds)*1000+millis) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: use milliseconds, a duration like 1m30s or MM:SS.mmm", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("position must not be negative: %s", s)
	}
	return d, nil
}
