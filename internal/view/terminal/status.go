package terminal

import (
	"strings"

	"github.com/fatih/color"
	"github.com/linemk/medicines/internal/view"
)

var _ view.StatusArea = (*StatusLine)(nil)

// StatusLine печатает статус цветом по severity из CSS-класса
type StatusLine struct {
	console *Console
}

func NewStatusLine(console *Console) *StatusLine {
	return &StatusLine{console: console}
}

func (s *StatusLine) SetStatus(text, class string) {
	severity := view.Severity(strings.TrimSpace(strings.TrimPrefix(class, "message")))

	var c *color.Color
	switch severity {
	case view.SeveritySuccess:
		c = color.New(color.FgGreen)
	case view.SeverityError:
		c = color.New(color.FgRed, color.Bold)
	case view.SeverityInfo:
		c = color.New(color.FgCyan)
	default:
		c = color.New(color.Reset)
	}
	c.Fprintf(s.console.out, "[%s] %s\n", severity, text)
}
