//go:build darwin

package clipboard

import (
	"time"

	"github.com/micmonay/keybd_event"
)

const (
	pasteLabel   = "Cmd+V"
	deviceSettle = time.Duration(0)
)

func setPasteModifier(kb *keybd_event.KeyBonding) {
	kb.HasSuper(true)
}
