package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a countdown as m:ss. Partial seconds round up, so
// only a finished countdown reads 0:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int((d + time.Second - 1) / time.Second)
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
