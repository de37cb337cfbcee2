package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"07:00", 420},
		{"22:30", 1350},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := ToMinutes(tt.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToMinutesMalformed(t *testing.T) {
	for _, in := range []string{"", "7:00", "24:00", "12:60", "ab:cd", "12-30", "12:3", "123:00"} {
		_, err := ToMinutes(in)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ToMinutes(%q): expected ParseError, got %v", in, err)
			continue
		}
		if pe.Input != in {
			t.Errorf("ParseError input = %q, want %q", pe.Input, in)
		}
	}
}

func TestToClockStringWraps(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{-135, "21:45"},
		{-1440, "00:00"},
		{-2881, "23:59"},
		{1440, "00:00"},
		{1500, "01:00"},
		{45, "00:45"},
	}
	for _, tt := range tests {
		if got := ToClockString(tt.in); got != tt.want {
			t.Errorf("ToClockString(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		s := ToClockString(m)
		back, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(%q): %v", s, err)
		}
		if ToClockString(back) != s {
			t.Fatalf("round trip of %q produced %q", s, ToClockString(back))
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(540); got != "9h" {
		t.Errorf("got %q", got)
	}
	if got := FormatDuration(450); got != "7h 30m" {
		t.Errorf("got %q", got)
	}
}

func TestAtRollsPastMidnight(t *testing.T) {
	day := time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC)
	got := At(day, 1350+15)
	want := time.Date(2024, 3, 10, 22, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("At = %v, want %v", got, want)
	}
	got = At(day, 1440+30)
	want = time.Date(2024, 3, 11, 0, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("At = %v, want %v", got, want)
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	day := time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC)
	key := DateKey(day)
	if key != "2024-01-05" {
		t.Fatalf("DateKey = %q", key)
	}
	parsed, err := ParseDateKey(key, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(StartOfDay(day)) {
		t.Fatalf("parsed %v, want %v", parsed, StartOfDay(day))
	}
}
