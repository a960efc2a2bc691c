package format

import (
	"fmt"
	"time"
)

const (
	zeroLatency = "0ms"
	notFetched  = "-"
)

// Latency renders a round trip the way the CLI tables show it
func Latency(d time.Duration) string {
	ms := d.Milliseconds()
	if d <= 0 {
		return zeroLatency
	}
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if ms == 0 {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%dms", ms)
}

// Duration formats duration in a readable way
func Duration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// OrDash keeps empty table cells readable
func OrDash(s string) string {
	if s == "" {
		return notFetched
	}
	return s
}
