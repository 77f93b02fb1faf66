package ttml

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts a TTML clock value (MM:SS.mmm or HH:MM:SS.mmm) to
// seconds. An empty value reads as zero; anything else malformed is an
// error.
func ParseClock(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	var total float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		total = total*60 + v
	}
	return total, nil
}

// FormatClock renders seconds as MM:SS.mmm, with minutes carrying any
// overflow past the hour.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	secs := seconds - float64(minutes)*60
	return fmt.Sprintf("%02d:%06.3f", minutes, secs)
}
