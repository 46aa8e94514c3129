// Package clip adapts the system clipboard to the handoff session.
package clip

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard backend exists on this
// system, for example a Linux session without xclip or xsel.
var ErrUnsupported = errors.New("clipboard unsupported on this system")

// System talks to the real OS clipboard.
type System struct{}

func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, ErrUnsupported
	}
	return &System{}, nil
}

func (*System) Read() (string, error) {
	return clipboard.ReadAll()
}

func (*System) Write(text string) error {
	return clipboard.WriteAll(text)
}
