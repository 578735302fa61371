//go:build !darwin

package clipboard

import (
	"runtime"
	"time"

	"github.com/micmonay/keybd_event"
)

const pasteLabel = "Ctrl+V"

// keybd_event backs linux with a fresh uinput device.
var deviceSettle = func() time.Duration {
	if runtime.GOOS == "linux" {
		return 2 * time.Second
	}
	return 0
}()

func setPasteModifier(kb *keybd_event.KeyBonding) {
	kb.HasCTRL(true)
}
