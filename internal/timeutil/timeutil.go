package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ZeroClock is the game clock value once a period has expired.
const ZeroClock = "00:00"

// ParseClock parses an "MM:SS" game clock. Malformed or negative input parses as zero.
func ParseClock(value string) time.Duration {
	mm, ss, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 {
		return 0
	}
	seconds, err := strconv.Atoi(ss)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// FormatClock renders a duration as "MM:SS", clamped at "00:00".
func FormatClock(d time.Duration) string {
	if d <= 0 {
		return ZeroClock
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Minutes returns the whole minutes left on an "MM:SS" clock.
func Minutes(value string) int {
	return int(ParseClock(value) / time.Minute)
}

// Decrement subtracts step from the clock and returns the new "MM:SS" value.
func Decrement(value string, step time.Duration) string {
	return FormatClock(ParseClock(value) - step)
}
