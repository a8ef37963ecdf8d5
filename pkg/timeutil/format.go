// Package timeutil provides time formatting utilities for gf2div.
//
// History timestamps are stored as Unix nanoseconds (int64) and shown
// with a user-configurable strftime pattern.
package timeutil

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// DefaultLayout is the strftime pattern used when none is configured.
const DefaultLayout = "%Y-%m-%d %H:%M:%S"

// FromNano converts a Unix nanosecond timestamp to time.Time.
func FromNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

// ValidateLayout reports whether layout is a usable strftime pattern.
func ValidateLayout(layout string) error {
	if _, err := strftime.New(layout); err != nil {
		return fmt.Errorf("invalid time format %q: %w", layout, err)
	}
	return nil
}

// FormatTimestamp formats a Unix nanosecond timestamp with a strftime
// pattern. An empty or invalid pattern falls back to DefaultLayout.
func FormatTimestamp(ns int64, layout string) string {
	t := FromNano(ns)
	if layout != "" {
		if s, err := strftime.Format(layout, t); err == nil {
			return s
		}
	}
	s, _ := strftime.Format(DefaultLayout, t)
	return s
}

// FormatInterval formats a playback interval.
// Examples: "500ms", "1.5s", "2s"
func FormatInterval(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	s := d.Seconds()
	if s == float64(int64(s)) {
		return fmt.Sprintf("%ds", int64(s))
	}
	return fmt.Sprintf("%.1fs", s)
}

// RelativeTime returns a human-readable relative time string.
// Examples: "just now", "5s ago", "2m ago", "1h ago"
func RelativeTime(ns int64) string {
	diff := time.Since(FromNano(ns))

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
}
