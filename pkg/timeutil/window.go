package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Window is a span of whole calendar days ending today.
type Window int

const (
	// DefaultWindow is what `log` shows without --window.
	DefaultWindow Window = 7
	// MaxWindow is how far back the sleep log keeps entries.
	MaxWindow Window = 30
)

var windowUnits = map[string]Window{
	"d":     1,
	"day":   1,
	"days":  1,
	"w":     7,
	"wk":    7,
	"week":  7,
	"weeks": 7,
}

// ParseWindow reads a count of days and weeks such as "3d", "2w" or "1w 3d".
// An empty input is the default week. The total must be between one day and
// MaxWindow.
func ParseWindow(input string) (Window, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		return DefaultWindow, nil
	}
	var total Window
	for rest != "" {
		digits := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
		switch digits {
		case 0:
			return 0, fmt.Errorf("timeutil: window %q: expected a number at %q", input, rest)
		case -1:
			return 0, fmt.Errorf("timeutil: window %q: %q needs a unit, d or w", input, rest)
		}
		n, err := strconv.Atoi(rest[:digits])
		if err != nil || n > int(MaxWindow) {
			return 0, fmt.Errorf("timeutil: window %q exceeds %s", input, MaxWindow)
		}
		rest = strings.TrimLeft(rest[digits:], " ")

		letters := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if letters == -1 {
			letters = len(rest)
		}
		per, ok := windowUnits[rest[:letters]]
		if !ok {
			return 0, fmt.Errorf("timeutil: window %q: unknown unit %q", input, rest[:letters])
		}
		rest = strings.TrimLeft(rest[letters:], " ")

		total += Window(n) * per
		if total > MaxWindow {
			return 0, fmt.Errorf("timeutil: window %q exceeds %s", input, MaxWindow)
		}
	}
	if total < 1 {
		return 0, fmt.Errorf("timeutil: window %q must cover at least one day", input)
	}
	return total, nil
}

// Days returns w as a day count, clamped to [1, MaxWindow].
func (w Window) Days() int {
	switch {
	case w < 1:
		return 1
	case w > MaxWindow:
		return int(MaxWindow)
	}
	return int(w)
}

// String renders w in weeks and days, e.g. "1w2d".
func (w Window) String() string {
	if w < 1 {
		return "0d"
	}
	weeks, days := w/7, w%7
	switch {
	case days == 0:
		return fmt.Sprintf("%dw", weeks)
	case weeks == 0:
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dw%dd", weeks, days)
}
