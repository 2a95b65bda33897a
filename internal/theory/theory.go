// Package theory serves the built-in pharmacology study notes.
package theory

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed topics/*.md
var topicsFS embed.FS

// Topics returns the available topic names, sorted.
func Topics() []string {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// Source returns the raw markdown for a topic.
func Source(topic string) (string, error) {
	data, err := topicsFS.ReadFile("topics/" + strings.ToLower(strings.TrimSpace(topic)) + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q (available: %s)", topic, strings.Join(Topics(), ", "))
	}
	return string(data), nil
}

// Render returns a topic formatted for the terminal at the given width.
func Render(topic string, width int) (string, error) {
	src, err := Source(topic)
	if err != nil {
		return "", err
	}
	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	return r.Render(src)
}
