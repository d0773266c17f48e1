package transform

import (
	"strconv"
	"time"
)

// Unit sizes in milliseconds.
const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatInterval renders end-start in a compact human form, largest unit first.
//
//	3725.4s -> "1h 2m 5s"
//	5.042s  -> "5.042s"
//	0.042s  -> "42ms"
//
// Leading zero units are dropped. Seconds carry milliseconds only when the
// interval is under a minute. A negative interval is rendered like its
// absolute value with a leading "-".
func FormatInterval(end, start time.Time) string {
	total := end.Sub(start).Round(time.Millisecond).Milliseconds()

	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}

	d := total / msPerDay
	h := total % msPerDay / msPerHour
	m := total % msPerHour / msPerMinute
	s := total % msPerMinute / msPerSecond
	ms := total % msPerSecond

	itoa := func(n int64) string { return strconv.FormatInt(n, 10) }

	switch {
	case d > 0:
		return sign + itoa(d) + "d " + itoa(h) + "h " + itoa(m) + "m " + itoa(s) + "s"
	case h > 0:
		return sign + itoa(h) + "h " + itoa(m) + "m " + itoa(s) + "s"
	case m > 0:
		return sign + itoa(m) + "m " + itoa(s) + "s"
	case s > 0:
		return sign + itoa(s) + "." + padMillis(ms) + "s"
	default:
		return sign + itoa(ms) + "ms"
	}
}

// padMillis renders 0-999 as exactly three digits.
func padMillis(ms int64) string {
	str := strconv.FormatInt(ms, 10)
	for len(str) < 3 {
		str = "0" + str
	}
	return str
}
