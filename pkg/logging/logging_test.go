package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: " WARN ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "chatty", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{true, false} {
		l, err := New("debug", dev)
		if err != nil {
			t.Fatalf("New(dev=%v): %v", dev, err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("debug must be enabled")
		}
	}
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) must return a logger")
	}
}
