// Package glyph holds the symbols bedtime prints for moods and chart marks.
package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Mood    bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Mark identifies a printed symbol.
type Mark int

const (
	Asleep Mark = iota
	Awake
	Logged
	Missing
	Reminder
	Skipped
	Refreshed
	Okay
	Tired
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "sleep", Symbol: "☾", Meaning: "fell asleep"},
		{Key: "wake", Symbol: "☀", Meaning: "woke up"},
		{Key: "logged", Symbol: "█", Meaning: "one hour of logged sleep"},
		{Key: "missing", Symbol: "·", Meaning: "no night logged"},
		{Key: "reminder", Symbol: "⏰", Meaning: "bedtime reminder armed"},
		{Key: "skipped", Symbol: "⏸", Meaning: "reminder skipped for 15 min"},
		{Key: "refreshed", Symbol: "😊", Meaning: "woke up refreshed", Mood: true},
		{Key: "okay", Symbol: "😐", Meaning: "woke up okay", Mood: true},
		{Key: "tired", Symbol: "😴", Meaning: "woke up tired", Mood: true},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

func (m Mark) Glyph() Glyph {
	return DefaultGlyphs()[m]
}

func (m Mark) String() string {
	return m.Glyph().String()
}

// ForMood returns the mark for a mood key, and false for unknown moods.
func ForMood(mood string) (Mark, bool) {
	switch mood {
	case "refreshed":
		return Refreshed, true
	case "okay":
		return Okay, true
	case "tired":
		return Tired, true
	}
	return 0, false
}
