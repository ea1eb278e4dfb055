package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMinutes reads a duration string in H:MM:SS or MM:SS form and returns
// whole minutes. Seconds are discarded, not rounded. Anything else reports
// ok = false and is excluded from averaging.
func ParseMinutes(s string) (int, bool) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, false
		}
		return h*60 + m, true
	case 2:
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		return m, true
	}
	return 0, false
}

// FormatMinutes renders minutes as "{h}s {m}dk", or "{m}dk" under an hour.
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%ds %ddk", h, m)
	}
	return fmt.Sprintf("%ddk", m)
}

// ClockString renders a duration as H:MM:SS, the interchange form stored on
// completed works.
func ClockString(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
