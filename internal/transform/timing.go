package transform

import (
	"time"
)

// DefaultFinishedLayout renders finish times as "HH:MM:SS YYYY-MM-DD".
const DefaultFinishedLayout = "15:04:05 2006-01-02"

// Timing holds the start and end timestamps of the cell currently being
// rendered. Templates call its methods in a fixed order per cell:
//
//	StoreStart -> StoreEnd -> RenderElapsed -> RenderEndLocal
//
// Calling them out of order yields empty or stale text, never an error.
// A Timing belongs to a single conversion.
type Timing struct {
	// Location is the display zone. Nil means time.Local.
	Location *time.Location

	// Layout formats RenderEndLocal output. Empty means DefaultFinishedLayout.
	Layout string

	// OnParseError, if set, is told about timestamps that could not be parsed.
	OnParseError func(value string, err error)

	start string
	end   string
}

// NewTiming returns a tracker that displays times in loc.
func NewTiming(loc *time.Location) *Timing {
	return &Timing{Location: loc}
}

// StoreStart remembers the execution start timestamp and returns "".
func (t *Timing) StoreStart(ts string) string {
	t.start = ts
	return ""
}

// StoreEnd remembers the execution end timestamp and returns "".
func (t *Timing) StoreEnd(ts string) string {
	t.end = ts
	return ""
}

// RenderEndLocal converts a UTC ISO-8601 timestamp to the display zone and
// formats it. It clears the stored end timestamp. An empty or unparseable
// ts renders as "".
func (t *Timing) RenderEndLocal(ts string) string {
	if ts == "" {
		return ""
	}
	finished, ok := t.parse(ts)
	t.end = ""
	if !ok {
		return ""
	}

	layout := t.Layout
	if layout == "" {
		layout = DefaultFinishedLayout
	}
	return finished.In(t.location()).Format(layout)
}

// RenderElapsed returns the interval between the stored start and end
// timestamps and clears the start. Without a start, or without an end, it
// returns "".
func (t *Timing) RenderElapsed() string {
	if t.start == "" {
		return ""
	}
	startStr := t.start
	t.start = ""

	start, ok := t.parse(startStr)
	if !ok || t.end == "" {
		return ""
	}
	end, ok := t.parse(t.end)
	if !ok {
		return ""
	}
	return FormatInterval(end, start)
}

// Pending reports the stored start and end values.
func (t *Timing) Pending() (start, end string) {
	return t.start, t.end
}

func (t *Timing) location() *time.Location {
	if t.Location == nil {
		return time.Local
	}
	return t.Location
}

// parse reads an ISO-8601 timestamp. Values without a zone are taken as UTC.
func (t *Timing) parse(ts string) (time.Time, bool) {
	parsed, err := ParseTimestamp(ts)
	if err != nil {
		if t.OnParseError != nil {
			t.OnParseError(ts, err)
		}
		return time.Time{}, false
	}
	return parsed, true
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses the ISO-8601 forms notebook frontends record,
// e.g. "2024-03-01T09:30:00.123456Z". Zone-less values are UTC.
func ParseTimestamp(ts string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, ts, time.UTC)
		if err == nil {
			return parsed, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
