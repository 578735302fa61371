// Package clipboard reads and writes the system clipboard and synthesizes
// the paste keystroke.
package clipboard

import (
	"fmt"
	"time"

	cb "github.com/atotto/clipboard"
)

func Read() (string, error) {
	return cb.ReadAll()
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

// CopyPaste puts text on the clipboard and pastes it into the focused window.
func CopyPaste(text string) error {
	if err := Copy(text); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	// Some clipboard managers take ownership asynchronously.
	time.Sleep(20 * time.Millisecond)
	if err := Paste(); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return nil
}
