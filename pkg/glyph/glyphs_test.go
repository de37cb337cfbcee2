package glyph

import "testing"

func TestMarksIndexGlyphs(t *testing.T) {
	tests := []struct {
		mark Mark
		key  string
	}{
		{Asleep, "sleep"},
		{Missing, "missing"},
		{Skipped, "skipped"},
		{Tired, "tired"},
	}
	for _, tt := range tests {
		if got := tt.mark.Glyph().Key; got != tt.key {
			t.Fatalf("Mark(%d).Glyph().Key = %q, want %q", tt.mark, got, tt.key)
		}
	}
}

func TestForMood(t *testing.T) {
	for _, mood := range []string{"refreshed", "okay", "tired"} {
		m, ok := ForMood(mood)
		if !ok || m.Glyph().Key != mood || !m.Glyph().Mood {
			t.Fatalf("ForMood(%q) = %v, %v", mood, m, ok)
		}
	}
	if _, ok := ForMood("grumpy"); ok {
		t.Fatalf("unknown mood must not resolve")
	}
}
