package playlist

import (
	"fmt"
	"time"
)

// ClockLayout is the layout of a start time of day
const ClockLayout = "15:04:05"

// FormatDuration renders d as H:MM:SS. Hours are not wrapped at 24.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, total/3600, total/60%60, total%60)
}

// FormatClock renders a time of day as HH:MM:SS
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
