package transform

import (
	"testing"
	"time"
)

func TestTiming_RenderEndLocal(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "converts utc to location",
			input: "2024-03-01T09:30:15.123456Z",
			want:  "11:30:15 2024-03-01",
		},
		{
			name:  "crosses midnight",
			input: "2024-03-01T23:00:00Z",
			want:  "01:00:00 2024-03-02",
		},
		{
			name:  "zone-less timestamp taken as utc",
			input: "2024-03-01T09:30:15",
			want:  "11:30:15 2024-03-01",
		},
		{
			name:  "empty renders empty",
			input: "",
			want:  "",
		},
		{
			name:  "garbage renders empty",
			input: "yesterday",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			timing := NewTiming(loc)
			if got := timing.RenderEndLocal(tt.input); got != tt.want {
				t.Errorf("RenderEndLocal(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTiming_RenderEndLocalClearsEnd(t *testing.T) {
	t.Parallel()

	timing := NewTiming(time.UTC)
	timing.StoreEnd("2024-03-01T09:30:15Z")
	timing.RenderEndLocal("2024-03-01T09:30:15Z")

	if _, end := timing.Pending(); end != "" {
		t.Errorf("stored end after RenderEndLocal = %q, want empty", end)
	}
}

func TestTiming_CustomLayout(t *testing.T) {
	t.Parallel()

	timing := &Timing{Location: time.UTC, Layout: "2006-01-02 15:04"}
	if got := timing.RenderEndLocal("2024-03-01T09:30:15Z"); got != "2024-03-01 09:30" {
		t.Errorf("RenderEndLocal() = %q, want %q", got, "2024-03-01 09:30")
	}
}

func TestTiming_RenderElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		start     string
		end       string
		want      string
		wantStart string
		wantEnd   string
	}{
		{
			name:    "start and end",
			start:   "2024-03-01T09:30:00.000Z",
			end:     "2024-03-01T09:30:00.042Z",
			want:    "42ms",
			wantEnd: "2024-03-01T09:30:00.042Z",
		},
		{
			name:    "long running",
			start:   "2024-03-01T09:00:00Z",
			end:     "2024-03-01T10:02:05.400Z",
			want:    "1h 2m 5s",
			wantEnd: "2024-03-01T10:02:05.400Z",
		},
		{
			name:  "start without end",
			start: "2024-03-01T09:30:00Z",
			want:  "",
		},
		{
			name:    "end without start",
			end:     "2024-03-01T09:30:00Z",
			want:    "",
			wantEnd: "2024-03-01T09:30:00Z",
		},
		{
			name:    "unparseable start still cleared",
			start:   "soon",
			end:     "2024-03-01T09:30:00Z",
			want:    "",
			wantEnd: "2024-03-01T09:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			timing := NewTiming(time.UTC)
			timing.StoreStart(tt.start)
			timing.StoreEnd(tt.end)

			if got := timing.RenderElapsed(); got != tt.want {
				t.Errorf("RenderElapsed() = %q, want %q", got, tt.want)
			}

			start, end := timing.Pending()
			if start != tt.wantStart {
				t.Errorf("stored start = %q, want %q", start, tt.wantStart)
			}
			if end != tt.wantEnd {
				t.Errorf("stored end = %q, want %q", end, tt.wantEnd)
			}
		})
	}
}

func TestTiming_StoreReturnsEmpty(t *testing.T) {
	t.Parallel()

	timing := NewTiming(nil)
	if got := timing.StoreStart("2024-03-01T09:30:00Z"); got != "" {
		t.Errorf("StoreStart() = %q, want empty", got)
	}
	if got := timing.StoreEnd("2024-03-01T09:31:00Z"); got != "" {
		t.Errorf("StoreEnd() = %q, want empty", got)
	}
}

// Rendering the end time first clears it, so the elapsed time that follows
// has nothing to measure against.
func TestTiming_EndBeforeElapsedLosesInterval(t *testing.T) {
	t.Parallel()

	timing := NewTiming(time.UTC)
	timing.StoreStart("2024-03-01T09:30:00Z")
	timing.StoreEnd("2024-03-01T09:30:01Z")

	if got := timing.RenderEndLocal("2024-03-01T09:30:01Z"); got == "" {
		t.Fatal("RenderEndLocal() returned empty")
	}
	if got := timing.RenderElapsed(); got != "" {
		t.Errorf("RenderElapsed() after RenderEndLocal = %q, want empty", got)
	}
}

func TestTiming_ReportsParseErrors(t *testing.T) {
	t.Parallel()

	var reported []string
	timing := &Timing{
		Location:     time.UTC,
		OnParseError: func(value string, _ error) { reported = append(reported, value) },
	}

	timing.RenderEndLocal("not-a-time")

	if len(reported) != 1 || reported[0] != "not-a-time" {
		t.Errorf("reported = %v, want [not-a-time]", reported)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 1, 9, 30, 15, 123456000, time.UTC)

	for _, input := range []string{
		"2024-03-01T09:30:15.123456Z",
		"2024-03-01T11:30:15.123456+02:00",
		"2024-03-01T09:30:15.123456",
		"2024-03-01 09:30:15.123456",
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTimestamp(input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", input, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", input, got, want)
			}
		})
	}

	if _, err := ParseTimestamp(""); err == nil {
		t.Error("ParseTimestamp(\"\") should fail")
	}
}
