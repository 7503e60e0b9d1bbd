package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		-time.Second:                       "0:00",
		0:                                  "0:00",
		time.Millisecond:                   "0:01",
		5250 * time.Millisecond:            "0:06",
		time.Minute:                        "1:00",
		2*time.Minute + 59*time.Second + 1: "3:00",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Fatalf("FormatDuration(%v): expected %q, got %q", d, want, got)
		}
	}
}
