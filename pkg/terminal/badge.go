package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Badge mirrors the reminder badge into the terminal: the title goes to the
// window title and the text is printed as a colored status line whenever it
// changes.
type Badge struct {
	mu     sync.Mutex
	output *termenv.Output
	text   string
	color  string
	title  string
}

// NewBadge writes to w.
func NewBadge(w io.Writer) *Badge {
	return &Badge{output: termenv.NewOutput(w), color: "#5eead4"}
}

// SetText shows text; an empty text clears the badge.
func (b *Badge) SetText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if text == b.text {
		return nil
	}
	b.text = text
	if text == "" {
		return nil
	}
	style := b.output.String(fmt.Sprintf(" %s ", text)).Bold()
	if b.color != "" {
		style = style.Background(b.output.Color(b.color)).Foreground(b.output.Color("#000000"))
	}
	_, err := fmt.Fprintf(b.output, "%s %s\n", style, b.title)
	return err
}

// SetColor sets the badge background. Colors are CSS hex strings.
func (b *Badge) SetColor(hex string) error {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return fmt.Errorf("terminal: badge color %q: %w", hex, err)
	}
	b.mu.Lock()
	b.color = c.Hex()
	b.mu.Unlock()
	return nil
}

// SetTitle sets the hover text, shown here as the window title.
func (b *Badge) SetTitle(title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if title == b.title {
		return nil
	}
	b.title = title
	b.output.SetWindowTitle(title)
	return nil
}

// Text returns the current badge text.
func (b *Badge) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
