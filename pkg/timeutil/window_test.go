package timeutil

import "testing"

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in    string
		want  Window
		label string
	}{
		{in: "", want: 7, label: "1w"},
		{in: "3d", want: 3, label: "3d"},
		{in: "2w", want: 14, label: "2w"},
		{in: "1w 3d", want: 10, label: "1w3d"},
		{in: "1W2Days", want: 9, label: "1w2d"},
		{in: "30d", want: 30, label: "4w2d"},
	}
	for _, tt := range tests {
		got, err := ParseWindow(tt.in)
		if err != nil {
			t.Errorf("ParseWindow(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want || got.String() != tt.label {
			t.Errorf("ParseWindow(%q) = %d (%s), want %d (%s)", tt.in, got, got, tt.want, tt.label)
		}
	}
}

func TestParseWindowRejects(t *testing.T) {
	for _, in := range []string{
		"noop",
		"3",
		"6h",
		"30m",
		"0d",
		"5w",
		"31d",
		"99999999999999999999w",
		"4294967297d",
	} {
		if got, err := ParseWindow(in); err == nil {
			t.Errorf("ParseWindow(%q) = %d, want error", in, got)
		}
	}
}

func TestWindowDays(t *testing.T) {
	tests := []struct {
		in   Window
		want int
	}{
		{in: 7, want: 7},
		{in: 0, want: 1},
		{in: 45, want: 30},
	}
	for _, tt := range tests {
		if got := tt.in.Days(); got != tt.want {
			t.Errorf("Window(%d).Days() = %d, want %d", tt.in, got, tt.want)
		}
	}
}
