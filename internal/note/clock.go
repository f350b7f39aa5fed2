package note

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesInDay is the number of minutes on a full day's clock.
const MinutesInDay = 24 * 60

// FormatMinute renders minutes since midnight as a 12-hour clock string,
// e.g. 555 -> "9:15am", 0 -> "12:00am", 720 -> "12:00pm".
func FormatMinute(m int) string {
	if m < 0 {
		m = 0
	}
	m %= MinutesInDay
	h := m / 60
	mer := MeridiemAM
	if h >= 12 {
		mer = MeridiemPM
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d%s", h, m%60, mer)
}

// ParseClock parses a 12-hour clock string like "9:30am" or "12pm" into
// minutes since midnight. The minute part is optional.
func ParseClock(s string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))

	var mer Meridiem
	switch {
	case strings.HasSuffix(v, "am"):
		mer = MeridiemAM
	case strings.HasSuffix(v, "pm"):
		mer = MeridiemPM
	default:
		return 0, fmt.Errorf("time %q must end in am or pm", s)
	}
	v = strings.TrimSpace(v[:len(v)-2])

	hourPart, minutePart, hasMinute := strings.Cut(v, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute := 0
	if hasMinute {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("invalid minute in %q", s)
		}
	}

	h := hour % 12
	if mer == MeridiemPM {
		h += 12
	}
	return h*60 + minute, nil
}

// MinuteDistance returns the absolute difference in minutes between two
// minute-of-day values.
func MinuteDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}
