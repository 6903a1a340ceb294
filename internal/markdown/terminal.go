package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// TerminalRenderer renders Markdown as ANSI-styled text. glamour keeps render
// state inside the TermRenderer, so calls are serialized.
type TerminalRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
}

// NewTerminalRenderer takes a glamour standard style name ("dark", "light",
// "notty", "dracula", ...) and a word wrap width.
func NewTerminalRenderer(style string, width int) (*TerminalRenderer, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	return &TerminalRenderer{renderer: renderer}, nil
}

func (that *TerminalRenderer) Render(source string) (string, error) {
	that.mu.Lock()
	rendered, err := that.renderer.Render(source)
	that.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return strings.TrimRight(rendered, "\n"), nil
}
