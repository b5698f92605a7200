// Package format holds the pure display helpers shared by the render
// adapters: byte sizes, absolute and relative times, durations, and the
// CPU/GPU memory split.
package format

import (
	"fmt"
	"strings"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Size renders a byte count with one decimal place, scaled by 1024 to the
// largest unit that keeps the value at or above 1 (decimal unit names over
// a binary divisor, matching the daemon's own tooling).
func Size(bytes int64) string {
	value := float64(bytes)
	for _, unit := range sizeUnits[:len(sizeUnits)-1] {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}

	return fmt.Sprintf("%.1f %s", value, sizeUnits[len(sizeUnits)-1])
}

// DateTime renders a timestamp in the given zone with its abbreviation,
// e.g. "3:04 PM, Jan 2 (MST)".
func DateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format("3:04 PM, Jan 2 (MST)")
}

// TimeAgo renders how long ago t was relative to now, in coarse buckets.
// Timestamps at or after now collapse to the smallest bucket; a larger
// elapsed time never maps to a closer bucket.
func TimeAgo(t, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "less than a minute"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour")
	default:
		return plural(int(elapsed.Hours())/24, "day")
	}
}

// Until renders an approximate phrase for how far in the future t is,
// using the half-up rounding the dashboard has always shown for keep-alive
// expirations ("a few minutes", "about 2 hours", "about 3 days").
func Until(t, now time.Time) string {
	remaining := t.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	days := int(remaining / (24 * time.Hour))
	hours := int(remaining/time.Hour) % 24
	minutes := int(remaining/time.Minute) % 60

	switch {
	case days > 0:
		if hours > 12 {
			days++
		}
		return "about " + plural(days, "day")
	case hours > 0:
		if minutes > 30 {
			hours++
		}
		return "about " + plural(hours, "hour")
	case minutes >= 45:
		return "about an hour"
	case minutes >= 25:
		return "about 30 minutes"
	case minutes >= 15:
		return "about 20 minutes"
	case minutes >= 5:
		return "about 10 minutes"
	case minutes >= 1:
		return "a few minutes"
	default:
		return "less than a minute"
	}
}

// Duration renders an elapsed time as day/hour/minute parts, e.g.
// "2 hours, 15 minutes". Zero and sub-minute durations render as
// "less than a minute".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}

	if len(parts) == 0 {
		return "less than a minute"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
