package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// healthBar renders a 0-100 score as a 20-cell bar
func healthBar(score float64) string {
	barLen := int(score / 5)
	if barLen > 20 {
		barLen = 20
	}
	if barLen < 0 {
		barLen = 0
	}
	return strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
}

func truncLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// truncateMiddle shortens s by replacing the middle with "..." if it exceeds maxLen bytes.
// Preserves roughly equal portions from start and end without splitting a rune.
func truncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:runeFloor(s, maxLen)]
	}
	// Split available space: first half gets one more byte on odd splits.
	// Both cuts move inward to rune boundaries.
	available := maxLen - 3
	head := runeFloor(s, (available+1)/2)
	tail := len(s) - available/2
	for tail < len(s) && !utf8.RuneStart(s[tail]) {
		tail++
	}
	return s[:head] + "..." + s[tail:]
}

// runeFloor backs i up to the start of the rune containing s[i]
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// formatDurationShort renders elapsed time compactly: "0.4s", "12.3s", "2m5s", "1h3m"
func formatDurationShort(d time.Duration) string {
	ms := d.Milliseconds()
	switch {
	case ms < 1000:
		return fmt.Sprintf("0.%ds", ms/100)
	case ms < 60000:
		return fmt.Sprintf("%d.%ds", ms/1000, (ms%1000)/100)
	case ms < 3600000:
		minutes := ms / 60000
		seconds := (ms % 60000) / 1000
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		hours := ms / 3600000
		minutes := (ms % 3600000) / 60000
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}

// parseSince accepts a Go duration or a whole number of days ("30d")
func parseSince(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid --since %q: want e.g. 30d or 720h", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid --since %q: want e.g. 30d or 720h", s)
	}
	return d, nil
}
