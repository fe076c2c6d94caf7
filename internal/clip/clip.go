// Package clip puts calculator results on the system clipboard.
package clip

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/ncruces/zenity"
)

var ErrUnsupported = errors.New("no clipboard utility available (install wl-clipboard, xclip or xsel)")

var newlines = strings.NewReplacer("\r", "", "\n", "")

// Clean drops embedded newline characters.
func Clean(text string) string {
	return newlines.Replace(text)
}

// Clipboard copies text to the system clipboard and optionally pops a
// desktop notification afterwards.
type Clipboard struct {
	Notify bool

	write  func(string) error
	notify func(string) error
}

func New(notify bool) *Clipboard {
	return &Clipboard{
		Notify: notify,
		write:  writeSystem,
		notify: func(msg string) error {
			return zenity.Notify(msg, zenity.Title("Calculator"), zenity.InfoIcon)
		},
	}
}

func writeSystem(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Copy stores text without its newlines.
func (c *Clipboard) Copy(text string) error {
	text = Clean(text)
	if err := c.write(text); err != nil {
		return err
	}
	if c.Notify && c.notify != nil {
		// a missing notification daemon is not worth failing the copy
		_ = c.notify("Copied " + text)
	}
	return nil
}
